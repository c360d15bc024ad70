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

	shoptypes "github.com/Apurer/go-gin-delivery-api/internal/domains/shops/application/types"
	shopdomain "github.com/Apurer/go-gin-delivery-api/internal/domains/shops/domain"
	shopports "github.com/Apurer/go-gin-delivery-api/internal/domains/shops/ports"
	sharederrors "github.com/Apurer/go-gin-delivery-api/internal/shared/errors"
)

const tracerName = "github.com/Apurer/go-gin-delivery-api/internal/domains/shops/adapters/observability/service"

// Service decorates the shops service with tracing, logging, and metrics.
type Service struct {
	inner   shopports.Service
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

func New(inner shopports.Service, opts ...Option) shopports.Service {
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

func (s *Service) CreateShop(ctx context.Context, input shoptypes.CreateShopInput) (*shopdomain.Shop, error) {
	ctx, span := s.tracer.Start(ctx, "ShopService.CreateShop", trace.WithAttributes(attribute.Int64("owner.id", input.Requester.ID)))
	defer span.End()

	shop, err := s.inner.CreateShop(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, "create_shop", err, slog.Int64("owner.id", input.Requester.ID))
	}
	span.SetAttributes(attribute.Int64("shop.id", shop.ID))
	s.metrics.record(ctx, s.metrics.shopsOpened, "create_shop")
	s.logInfo(ctx, "shop opened", slog.Int64("shop.id", shop.ID), slog.Int64("owner.id", shop.Owner))
	return shop, nil
}

func (s *Service) UpdateShop(ctx context.Context, input shoptypes.UpdateShopInput) (*shopdomain.Shop, error) {
	ctx, span := s.tracer.Start(ctx, "ShopService.UpdateShop", trace.WithAttributes(attribute.Int64("shop.id", input.ShopID)))
	defer span.End()

	shop, err := s.inner.UpdateShop(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, "update_shop", err, slog.Int64("shop.id", input.ShopID))
	}
	s.logInfo(ctx, "shop updated", slog.Int64("shop.id", shop.ID))
	return shop, nil
}

func (s *Service) CloseShop(ctx context.Context, shopID, actorID int64) (*shopdomain.Shop, error) {
	ctx, span := s.tracer.Start(ctx, "ShopService.CloseShop", trace.WithAttributes(attribute.Int64("shop.id", shopID)))
	defer span.End()

	shop, err := s.inner.CloseShop(ctx, shopID, actorID)
	if err != nil {
		return nil, s.fail(ctx, span, "close_shop", err, slog.Int64("shop.id", shopID))
	}
	s.metrics.record(ctx, s.metrics.shopsClosed, "close_shop")
	s.logInfo(ctx, "shop closed", slog.Int64("shop.id", shopID), slog.Int64("actor.id", actorID))
	return shop, nil
}

func (s *Service) GetShop(ctx context.Context, shopID int64) (*shoptypes.ShopDetails, error) {
	ctx, span := s.tracer.Start(ctx, "ShopService.GetShop", trace.WithAttributes(attribute.Int64("shop.id", shopID)))
	defer span.End()

	details, err := s.inner.GetShop(ctx, shopID)
	if err != nil {
		return nil, s.fail(ctx, span, "get_shop", err, slog.Int64("shop.id", shopID))
	}
	return details, nil
}

func (s *Service) SearchShops(ctx context.Context, name string) ([]*shopdomain.Shop, error) {
	ctx, span := s.tracer.Start(ctx, "ShopService.SearchShops")
	defer span.End()

	shops, err := s.inner.SearchShops(ctx, name)
	if err != nil {
		return nil, s.fail(ctx, span, "search_shops", err)
	}
	span.SetAttributes(attribute.Int("shop.count", len(shops)))
	return shops, nil
}

func (s *Service) CreateMenu(ctx context.Context, input shoptypes.CreateMenuInput) (*shopdomain.Menu, error) {
	ctx, span := s.tracer.Start(ctx, "ShopService.CreateMenu", trace.WithAttributes(attribute.Int64("shop.id", input.ShopID)))
	defer span.End()

	menu, err := s.inner.CreateMenu(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, "create_menu", err, slog.Int64("shop.id", input.ShopID))
	}
	s.logInfo(ctx, "menu created", slog.Int64("shop.id", menu.ShopID), slog.Int64("menu.id", menu.ID))
	return menu, nil
}

func (s *Service) UpdateMenu(ctx context.Context, input shoptypes.UpdateMenuInput) (*shopdomain.Menu, error) {
	ctx, span := s.tracer.Start(ctx, "ShopService.UpdateMenu", trace.WithAttributes(
		attribute.Int64("shop.id", input.ShopID),
		attribute.Int64("menu.id", input.MenuID),
	))
	defer span.End()

	menu, err := s.inner.UpdateMenu(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, "update_menu", err, slog.Int64("menu.id", input.MenuID))
	}
	s.logInfo(ctx, "menu updated", slog.Int64("menu.id", menu.ID), slog.String("menu.price", menu.Price.String()))
	return menu, nil
}

func (s *Service) DeleteMenu(ctx context.Context, input shoptypes.DeleteMenuInput) (*shopdomain.Menu, error) {
	ctx, span := s.tracer.Start(ctx, "ShopService.DeleteMenu", trace.WithAttributes(
		attribute.Int64("shop.id", input.ShopID),
		attribute.Int64("menu.id", input.MenuID),
	))
	defer span.End()

	menu, err := s.inner.DeleteMenu(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, "delete_menu", err, slog.Int64("menu.id", input.MenuID))
	}
	s.logInfo(ctx, "menu deleted", slog.Int64("menu.id", menu.ID))
	return menu, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) fail(ctx context.Context, span trace.Span, operation string, err error, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.metrics.recordFailure(ctx, operation, err)
	if s.logger == nil {
		return err
	}
	level := slog.LevelError
	if kind, ok := sharederrors.KindOf(err); ok {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error.kind", string(kind)))
	}
	attrs = append(attrs, slog.String("operation", operation), slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, level, "shop operation failed", attrs...)
	return err
}

type serviceMetrics struct {
	shopsOpened metric.Int64Counter
	shopsClosed metric.Int64Counter
	failures    metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	opened, _ := m.Int64Counter("shops.service.shops_opened", metric.WithDescription("Number of shops opened"))
	closed, _ := m.Int64Counter("shops.service.shops_closed", metric.WithDescription("Number of shops closed"))
	failures, _ := m.Int64Counter("shops.service.failures", metric.WithDescription("Number of failed shop operations by kind"))
	return serviceMetrics{shopsOpened: opened, shopsClosed: closed, failures: failures}
}

func (m serviceMetrics) record(ctx context.Context, counter metric.Int64Counter, operation string) {
	if counter != nil {
		counter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
	}
}

func (m serviceMetrics) recordFailure(ctx context.Context, operation string, err error) {
	if m.failures == nil {
		return
	}
	kind, ok := sharederrors.KindOf(err)
	if !ok {
		kind = "internal"
	}
	m.failures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("error.kind", string(kind)),
	))
}

var _ shopports.Service = (*Service)(nil)
