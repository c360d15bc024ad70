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

	reviewtypes "github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/application/types"
	reviewdomain "github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/domain"
	reviewports "github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/ports"
	sharederrors "github.com/Apurer/go-gin-delivery-api/internal/shared/errors"
)

const tracerName = "github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/adapters/observability/service"

// Service decorates the reviews service with tracing, logging, and metrics.
type Service struct {
	inner    reviewports.Service
	tracer   trace.Tracer
	logger   *slog.Logger
	created  metric.Int64Counter
	rejected metric.Int64Counter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m == nil {
			return
		}
		s.created, _ = m.Int64Counter("reviews.service.reviews_created", metric.WithDescription("Number of reviews created"))
		s.rejected, _ = m.Int64Counter("reviews.service.rejections", metric.WithDescription("Number of rejected review operations by kind"))
	}
}

func New(inner reviewports.Service, opts ...Option) reviewports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateReview(ctx context.Context, input reviewtypes.CreateReviewInput) (*reviewdomain.Review, error) {
	ctx, span := s.tracer.Start(ctx, "ReviewService.CreateReview", trace.WithAttributes(
		attribute.Int64("order.id", input.OrderID),
		attribute.Int("review.rating", input.Rating),
	))
	defer span.End()

	review, err := s.inner.CreateReview(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, "create_review", err, slog.Int64("order.id", input.OrderID))
	}
	if s.created != nil {
		s.created.Add(ctx, 1, metric.WithAttributes(attribute.Int("review.rating", review.Rating)))
	}
	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "review created",
			slog.Int64("review.id", review.ID),
			slog.Int64("order.id", review.OrderID),
			slog.Int64("shop.id", review.ShopID),
			slog.Int("review.rating", review.Rating))
	}
	return review, nil
}

func (s *Service) ListShopReviews(ctx context.Context, input reviewtypes.ListShopReviewsInput) ([]*reviewdomain.Review, error) {
	ctx, span := s.tracer.Start(ctx, "ReviewService.ListShopReviews", trace.WithAttributes(attribute.Int64("shop.id", input.ShopID)))
	defer span.End()

	reviews, err := s.inner.ListShopReviews(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, "list_shop_reviews", err, slog.Int64("shop.id", input.ShopID))
	}
	span.SetAttributes(attribute.Int("review.count", len(reviews)))
	return reviews, nil
}

func (s *Service) fail(ctx context.Context, span trace.Span, operation string, err error, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	kind, classified := sharederrors.KindOf(err)
	if s.rejected != nil {
		label := string(kind)
		if !classified {
			label = "internal"
		}
		s.rejected.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("error.kind", label),
		))
	}
	if s.logger == nil {
		return err
	}
	level := slog.LevelError
	if classified {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error.kind", string(kind)))
	}
	attrs = append(attrs, slog.String("operation", operation), slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, level, "review operation failed", attrs...)
	return err
}

var _ reviewports.Service = (*Service)(nil)
