package bootstrap

import (
	"errors"
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	platformobservability "github.com/Apurer/go-gin-delivery-api/internal/platform/observability"
)

// ErrTemporalDisabled is returned by DialTemporal when workflows are switched off.
var ErrTemporalDisabled = errors.New("temporal disabled via TEMPORAL_DISABLED")

// TemporalSettings locate the Temporal frontend.
type TemporalSettings struct {
	Address   string
	Namespace string
	Disabled  bool
}

// DialTemporal connects a client that traces through OpenTelemetry and logs through slog.
// tracerName distinguishes the API client from the worker in traces.
func DialTemporal(settings TemporalSettings, instruments *platformobservability.Instruments, tracerName string) (client.Client, error) {
	if settings.Disabled {
		return nil, ErrTemporalDisabled
	}
	address := settings.Address
	if address == "" {
		address = client.DefaultHostPort
	}
	namespace := settings.Namespace
	if namespace == "" {
		namespace = client.DefaultNamespace
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer(tracerName)
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  address,
		Namespace: namespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
