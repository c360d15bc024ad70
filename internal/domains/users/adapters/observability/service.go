package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	usertypes "github.com/Apurer/go-gin-delivery-api/internal/domains/users/application/types"
	userdomain "github.com/Apurer/go-gin-delivery-api/internal/domains/users/domain"
	userports "github.com/Apurer/go-gin-delivery-api/internal/domains/users/ports"
	sharederrors "github.com/Apurer/go-gin-delivery-api/internal/shared/errors"
	"github.com/Apurer/go-gin-delivery-api/internal/shared/identity"
)

const tracerName = "github.com/Apurer/go-gin-delivery-api/internal/domains/users/adapters/observability/service"

// Service decorates the user service with tracing, logging, and metrics.
// Emails are never logged, only user IDs.
type Service struct {
	inner   userports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core user service.
func New(inner userports.Service, opts ...Option) userports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) Signup(ctx context.Context, input usertypes.SignupInput) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Signup", trace.WithAttributes(attribute.Bool("user.owner", input.Owner)))
	defer span.End()
	user, err := s.inner.Signup(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "signup rejected", slog.Bool("owner", input.Owner))
	}
	span.SetAttributes(attribute.Int64("user.id", user.ID))
	s.metrics.recordSignup(ctx, user.Role)
	s.logInfo(ctx, "user signed up", slog.Int64("user.id", user.ID), slog.String("role", string(user.Role)))
	return user, nil
}

func (s *Service) Login(ctx context.Context, input usertypes.LoginInput) (*usertypes.Session, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Login")
	defer span.End()
	session, err := s.inner.Login(ctx, input)
	if err != nil {
		s.metrics.recordLogin(ctx, false)
		return nil, s.handleError(ctx, span, err, "login failed")
	}
	span.SetAttributes(attribute.Int64("user.id", session.User.ID))
	s.metrics.recordLogin(ctx, true)
	s.logInfo(ctx, "user logged in", slog.Int64("user.id", session.User.ID))
	return session, nil
}

func (s *Service) Logout(ctx context.Context, userID int64) error {
	ctx, span := s.tracer.Start(ctx, "UserService.Logout", trace.WithAttributes(attribute.Int64("user.id", userID)))
	defer span.End()
	if err := s.inner.Logout(ctx, userID); err != nil {
		return s.handleError(ctx, span, err, "logout failed", slog.Int64("user.id", userID))
	}
	s.logInfo(ctx, "user logged out", slog.Int64("user.id", userID))
	return nil
}

// Authenticate runs on every protected request, so only failures are logged.
func (s *Service) Authenticate(ctx context.Context, token string) (identity.Principal, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Authenticate")
	defer span.End()
	principal, err := s.inner.Authenticate(ctx, token)
	if err != nil {
		return identity.Principal{}, s.handleError(ctx, span, err, "authentication failed")
	}
	span.SetAttributes(attribute.Int64("user.id", principal.ID), attribute.String("user.role", string(principal.Role)))
	return principal, nil
}

func (s *Service) ChangePassword(ctx context.Context, input usertypes.ChangePasswordInput) error {
	ctx, span := s.tracer.Start(ctx, "UserService.ChangePassword", trace.WithAttributes(attribute.Int64("user.id", input.UserID)))
	defer span.End()
	if err := s.inner.ChangePassword(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "password change rejected", slog.Int64("user.id", input.UserID))
	}
	s.logInfo(ctx, "password changed", slog.Int64("user.id", input.UserID))
	return nil
}

func (s *Service) Withdraw(ctx context.Context, input usertypes.WithdrawInput) error {
	ctx, span := s.tracer.Start(ctx, "UserService.Withdraw", trace.WithAttributes(attribute.Int64("user.id", input.UserID)))
	defer span.End()
	if err := s.inner.Withdraw(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "withdrawal rejected", slog.Int64("user.id", input.UserID))
	}
	s.metrics.recordWithdrawal(ctx, input.Requester.Role)
	s.logInfo(ctx, "account withdrawn", slog.Int64("user.id", input.UserID))
	return nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logFailure(ctx, msg, err, attrs...)
	return err
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logFailure(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	level := slog.LevelError
	if kind, ok := sharederrors.KindOf(err); ok {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error.kind", string(kind)))
	}
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, level, msg, attrs...)
}

type serviceMetrics struct {
	signups     metric.Int64Counter
	logins      metric.Int64Counter
	withdrawals metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	signups, _ := m.Int64Counter("users.service.signups", metric.WithDescription("Number of accounts created by role"))
	logins, _ := m.Int64Counter("users.service.logins", metric.WithDescription("Number of login attempts by outcome"))
	withdrawals, _ := m.Int64Counter("users.service.withdrawals", metric.WithDescription("Number of closed accounts by role"))
	return serviceMetrics{signups: signups, logins: logins, withdrawals: withdrawals}
}

func (m serviceMetrics) recordSignup(ctx context.Context, role identity.Role) {
	if m.signups != nil {
		m.signups.Add(ctx, 1, metric.WithAttributes(attribute.String("user.role", string(role))))
	}
}

func (m serviceMetrics) recordLogin(ctx context.Context, success bool) {
	if m.logins != nil {
		m.logins.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", success)))
	}
}

func (m serviceMetrics) recordWithdrawal(ctx context.Context, role identity.Role) {
	if m.withdrawals != nil {
		m.withdrawals.Add(ctx, 1, metric.WithAttributes(attribute.String("user.role", string(role))))
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ userports.Service = (*Service)(nil)
