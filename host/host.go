package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/sghaida/ohost/config"
	"github.com/sghaida/ohost/di"
)

// HostedService is a long-lived component managed by the Host.
//
// Start should return quickly, kicking off background work; Stop should
// block until the work has wound down or ctx is done. Register
// implementations in the service collection like any other service; the
// Host discovers them by type.
type HostedService interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Host is a built application host.
//
// It owns the configuration snapshot and the service provider, and drives
// the lifecycle of registered HostedServices.
type Host struct {
	configuration *config.Configuration
	provider      *di.Provider
	logger        *slog.Logger

	mu      sync.Mutex
	running bool
	started []HostedService
}

// Configuration returns the snapshot built during the configuration phase.
func (h *Host) Configuration() *config.Configuration { return h.configuration }

// Services returns the service provider.
func (h *Host) Services() *di.Provider { return h.provider }

// Start resolves every registered HostedService and starts them in
// registration order.
//
// On failure, services already started are stopped in reverse order (best
// effort) and the start error is returned. Starting an already-started host
// is a no-op.
func (h *Host) Start(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		return nil
	}

	services, err := h.hostedServices()
	if err != nil {
		return err
	}
	for _, svc := range services {
		name := fmt.Sprintf("%T", svc)
		h.logger.Info("starting hosted service", slog.String("service", name))
		if err := svc.Start(ctx); err != nil {
			h.logger.Error("hosted service failed to start",
				slog.String("service", name),
				slog.String("err", err.Error()),
			)
			h.unwindLocked(ctx)
			return fmt.Errorf("host: starting %s: %w", name, err)
		}
		h.started = append(h.started, svc)
	}
	h.running = true
	h.logger.Info("host started", slog.Int("services", len(h.started)))
	return nil
}

// Stop stops started services in reverse order and joins their errors.
// Stopping a host that is not running is a no-op.
func (h *Host) Stop(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.running {
		return nil
	}
	err := h.unwindLocked(ctx)
	h.running = false
	h.logger.Info("host stopped")
	return err
}

// Run starts the host, blocks until ctx is cancelled, then stops it.
func (h *Host) Run(ctx context.Context) error {
	if err := h.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	h.logger.Info("host shutting down", slog.String("reason", ctx.Err().Error()))
	return h.Stop(context.Background())
}

// unwindLocked stops every started service in reverse order. Callers hold
// h.mu.
func (h *Host) unwindLocked(ctx context.Context) error {
	var errs []error
	for i := len(h.started) - 1; i >= 0; i-- {
		svc := h.started[i]
		name := fmt.Sprintf("%T", svc)
		h.logger.Info("stopping hosted service", slog.String("service", name))
		if err := svc.Stop(ctx); err != nil {
			h.logger.Error("hosted service failed to stop",
				slog.String("service", name),
				slog.String("err", err.Error()),
			)
			errs = append(errs, fmt.Errorf("host: stopping %s: %w", name, err))
		}
	}
	h.started = nil
	return errors.Join(errs...)
}

// hostedServices resolves, in registration order, every service whose
// registered type implements HostedService.
func (h *Host) hostedServices() ([]HostedService, error) {
	hostedType := reflect.TypeOf((*(HostedService))(nil)).Elem()
	var out []HostedService
	for _, t := range h.provider.Types() {
		if !t.Implements(hostedType) {
			continue
		}
		raw, err := h.provider.Resolve(t)
		if err != nil {
			return nil, err
		}
		svc, ok := raw.(HostedService)
		if !ok {
			// registered type claims the interface but the value does not;
			// only reachable through AddFor misuse
			continue
		}
		out = append(out, svc)
	}
	return out, nil
}
