package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bybitmcp/internal/bybit"
	"bybitmcp/internal/schema"
	"bybitmcp/internal/tools"
)

// Options controls which capabilities the registry exposes.
type Options struct {
	// TradingEnabled unlocks the tools that mutate orders, positions, and
	// margin. When false they are neither listed nor dispatchable.
	TradingEnabled bool
}

// Registry owns the tool catalog and executes calls against it.
type Registry struct {
	opts   Options
	deps   tools.ToolDependencies
	logger *slog.Logger

	defs   []tools.Definition
	byName map[string]tools.Definition
}

// NewRegistry builds a registry from the given definitions and verifies
// catalog consistency: unique names, healthy schemas, non-nil bindings.
// A broken catalog is a programming error, so it fails construction rather
// than surfacing later as a runtime INTERNAL.
func NewRegistry(defs []tools.Definition, deps tools.ToolDependencies, opts Options, logger *slog.Logger) (*Registry, error) {
	byName := make(map[string]tools.Definition, len(defs))
	for _, d := range defs {
		if d.Name == "" {
			return nil, errors.New("registry: tool with empty name")
		}
		if _, dup := byName[d.Name]; dup {
			return nil, fmt.Errorf("registry: duplicate tool %q", d.Name)
		}
		if d.Invoke == nil {
			return nil, fmt.Errorf("registry: tool %q has no binding", d.Name)
		}
		if problems := d.Schema.Problems(); len(problems) > 0 {
			return nil, fmt.Errorf("registry: tool %q schema: %v", d.Name, problems)
		}
		byName[d.Name] = d
	}
	return &Registry{
		opts:   opts,
		deps:   deps,
		logger: logger,
		defs:   defs,
		byName: byName,
	}, nil
}

// Visible returns the definitions this deployment exposes, in catalog order.
// Trading tools disappear entirely when trading is disabled.
func (r *Registry) Visible() []tools.Definition {
	out := make([]tools.Definition, 0, len(r.defs))
	for _, d := range r.defs {
		if d.Trading && !r.opts.TradingEnabled {
			continue
		}
		out = append(out, d)
	}
	return out
}

// DispatchAllowed reports whether the named tool may execute right now.
// It re-checks the trading gate even though hidden tools are unregistered,
// because a client can call by name without listing first.
func (r *Registry) DispatchAllowed(name string) bool {
	d, ok := r.byName[name]
	if !ok {
		return false
	}
	return !d.Trading || r.opts.TradingEnabled
}

// Dispatch runs one tool call end to end: gate, validate, invoke, classify.
// It never returns an error; every failure becomes a structured envelope.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) (result CallResult) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("tool call panicked", "tool", name, "panic", rec)
			result = errResult(ErrorDetail{
				Kind:    KindInternal,
				Message: "internal error while executing tool",
			})
		}
		r.emit(name, result)
	}()

	d, ok := r.byName[name]
	if !ok {
		// Registration and catalog are built from the same definitions, so
		// an unknown name here means they diverged.
		r.logger.Error("dispatch for unknown tool", "tool", name)
		return errResult(ErrorDetail{
			Kind:    KindInternal,
			Message: fmt.Sprintf("unknown tool %q", name),
		})
	}

	if d.Trading && !r.opts.TradingEnabled {
		return errResult(ErrorDetail{
			Kind:    KindDisabled,
			Message: fmt.Sprintf("%s requires trading to be enabled (set BYBIT_TRADING_ENABLED=true)", name),
		})
	}

	normalized, err := d.Schema.Validate(args)
	if err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			return errResult(ErrorDetail{
				Kind:    KindValidation,
				Message: verr.Error(),
				Fields:  verr.Fields(),
			})
		}
		r.logger.Error("validator failed", "tool", name, "error", err)
		return errResult(ErrorDetail{
			Kind:    KindInternal,
			Message: "internal error while validating arguments",
		})
	}

	payload, err := d.Invoke(ctx, r.deps, normalized)
	if err != nil {
		if errors.Is(err, tools.ErrBadBinding) {
			r.logger.Error("tool binding failed", "tool", name, "error", err)
			return errResult(ErrorDetail{
				Kind:    KindInternal,
				Message: "internal error while binding arguments",
			})
		}
		r.logger.Warn("upstream call failed", "tool", name, "error", err)
		return errResult(ErrorDetail{
			Kind:      KindUpstream,
			Message:   err.Error(),
			Retryable: bybit.Retryable(err),
		})
	}
	return okResult(payload)
}

func (r *Registry) emit(name string, result CallResult) {
	if r.deps.AnalyticsService == nil {
		return
	}
	outcome := result.Status
	if result.Err != nil {
		outcome = string(result.Err.Kind)
	}
	svc := r.deps.AnalyticsService
	svc.EmitEvent(svc.NewToolEvent(name, outcome))
}
