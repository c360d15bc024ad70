package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	ordertypes "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/orders/ports"
	orderworkflows "github.com/Apurer/go-gin-delivery-api/internal/platform/temporal/workflows/orders"
	sharederrors "github.com/Apurer/go-gin-delivery-api/internal/shared/errors"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineOrderWorkflows)(nil)
)

// TemporalOrderWorkflows places orders through a Temporal workflow and reads the result back
// through the orders service.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
	orders    ports.Service
}

func NewTemporalOrderWorkflows(c client.Client, orders ports.Service) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.OrderPlacementTaskQueue, orders: orders}
}

// PlaceOrder starts the placement workflow and waits for it. Requests that share an
// idempotency key map to the same workflow ID, so a retry joins the running execution.
func (o *TemporalOrderWorkflows) PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (*domain.Order, error) {
	if o == nil || o.client == nil || o.orders == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	traceID := workflowTraceID(ctx)
	workflowID := buildOrderPlacementWorkflowID(input)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderPlacementWorkflow,
		orderworkflows.OrderPlacementWorkflowInput{Command: input, TraceID: traceID},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) || strings.TrimSpace(input.IdempotencyKey) == "" {
			return nil, err
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var orderID int64
	if err := run.Get(ctx, &orderID); err != nil {
		return nil, unwrapWorkflowError(err)
	}
	return o.orders.GetOrder(ctx, ordertypes.GetOrderInput{OrderID: orderID, ActorID: input.Requester.ID})
}

// InlineOrderWorkflows calls the service directly when no Temporal cluster is reachable.
type InlineOrderWorkflows struct {
	service ports.Service
}

func NewInlineOrderWorkflows(service ports.Service) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service}
}

func (o *InlineOrderWorkflows) PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (*domain.Order, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	return o.service.PlaceOrder(ctx, input)
}

// unwrapWorkflowError restores the classified business error an activity reported, so the
// caller sees the same kind and message as with inline placement.
func unwrapWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) && appErr.Type() != "" {
		return sharederrors.New(sharederrors.Kind(appErr.Type()), appErr.Message())
	}
	return err
}

func buildOrderPlacementWorkflowID(input ordertypes.PlaceOrderInput) string {
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		return fmt.Sprintf("order-placement-idem-%s", hashIdempotencyKey(input.Requester.ID, key))
	}
	return fmt.Sprintf("order-placement-%s", uuid.NewString())
}

// hashIdempotencyKey scopes the key to the requester; 16 hex chars keep IDs readable.
func hashIdempotencyKey(userID int64, key string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d:%s", userID, key)))
	return hex.EncodeToString(sum[:8])
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
