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

	ordertypes "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/application/types"
	orderdomain "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/ports"
	sharederrors "github.com/Apurer/go-gin-delivery-api/internal/shared/errors"
)

const tracerName = "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   orderports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner orderports.Service, opts ...Option) orderports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
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
	return s
}

func (s *Service) PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.PlaceOrder", trace.WithAttributes(
		attribute.Int64("user.id", input.Requester.ID),
		attribute.Int64("shop.id", input.ShopID),
		attribute.Int64("menu.id", input.MenuID),
		attribute.Bool("idempotent", input.IdempotencyKey != ""),
	))
	defer span.End()

	s.logInfo(ctx, "placing order",
		slog.Int64("user.id", input.Requester.ID),
		slog.Int64("shop.id", input.ShopID),
		slog.Int64("menu.id", input.MenuID))
	order, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		s.metrics.recordRejected(ctx, "place", err)
		return nil, s.handleError(ctx, span, err, "failed to place order",
			slog.Int64("user.id", input.Requester.ID), slog.Int64("shop.id", input.ShopID))
	}
	span.SetAttributes(attribute.Int64("order.id", order.ID))
	s.metrics.recordPlaced(ctx, order.ShopID)
	s.logInfo(ctx, "order placed",
		slog.Int64("order.id", order.ID),
		slog.Int64("shop.id", order.ShopID),
		slog.String("menu.price", order.Menu.Price().String()))
	return order, nil
}

func (s *Service) ChangeStatus(ctx context.Context, input ordertypes.ChangeStatusInput) (*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ChangeStatus", trace.WithAttributes(
		attribute.Int64("order.id", input.OrderID),
		attribute.Int64("actor.id", input.ActorID),
		attribute.String("order.status.requested", input.Status),
	))
	defer span.End()

	s.logInfo(ctx, "changing order status",
		slog.Int64("order.id", input.OrderID),
		slog.Int64("actor.id", input.ActorID),
		slog.String("status.requested", input.Status))
	order, err := s.inner.ChangeStatus(ctx, input)
	if err != nil {
		s.metrics.recordRejected(ctx, "change_status", err)
		return nil, s.handleError(ctx, span, err, "order status change rejected",
			slog.Int64("order.id", input.OrderID), slog.String("status.requested", input.Status))
	}
	s.metrics.recordTransition(ctx, order.Status)
	s.logInfo(ctx, "order status changed",
		slog.Int64("order.id", order.ID),
		slog.String("status", string(order.Status)))
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, input ordertypes.GetOrderInput) (*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder", trace.WithAttributes(attribute.Int64("order.id", input.OrderID)))
	defer span.End()

	order, err := s.inner.GetOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", input.OrderID))
	}
	return order, nil
}

func (s *Service) ListShopOrders(ctx context.Context, input ordertypes.ListShopOrdersInput) ([]*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListShopOrders", trace.WithAttributes(
		attribute.Int64("shop.id", input.ShopID),
		attribute.StringSlice("order.status.filter", input.Statuses),
	))
	defer span.End()

	orders, err := s.inner.ListShopOrders(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list shop orders", slog.Int64("shop.id", input.ShopID))
	}
	span.SetAttributes(attribute.Int("order.count", len(orders)))
	return orders, nil
}

func (s *Service) ListUserOrders(ctx context.Context, userID int64) ([]*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListUserOrders", trace.WithAttributes(attribute.Int64("user.id", userID)))
	defer span.End()

	orders, err := s.inner.ListUserOrders(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list user orders", slog.Int64("user.id", userID))
	}
	span.SetAttributes(attribute.Int("order.count", len(orders)))
	return orders, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

// logFailure logs expected business rejections at warn and everything else at error.
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

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logFailure(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersPlaced   metric.Int64Counter
	transitions    metric.Int64Counter
	ordersRejected metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("orders.service.orders_placed", metric.WithDescription("Number of orders placed"))
	transitions, _ := m.Int64Counter("orders.service.status_transitions", metric.WithDescription("Number of applied order status transitions"))
	ordersRejected, _ := m.Int64Counter("orders.service.rejections", metric.WithDescription("Number of rejected order operations by failure kind"))
	return serviceMetrics{ordersPlaced: ordersPlaced, transitions: transitions, ordersRejected: ordersRejected}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, shopID int64) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1, metric.WithAttributes(attribute.Int64("shop.id", shopID)))
	}
}

func (m serviceMetrics) recordTransition(ctx context.Context, status orderdomain.Status) {
	if m.transitions != nil {
		m.transitions.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context, operation string, err error) {
	if m.ordersRejected == nil {
		return
	}
	kind, ok := sharederrors.KindOf(err)
	if !ok {
		kind = "internal"
	}
	m.ordersRejected.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("error.kind", string(kind)),
	))
}

var _ orderports.Service = (*Service)(nil)
