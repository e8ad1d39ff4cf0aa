// Package module wires the assigner worker service and exposes its ports
package module

import (
	"civicroute/internal/modkit"
	"civicroute/internal/modkit/httpkit"
	"civicroute/internal/services/assign/domain"
	"civicroute/internal/services/assign/engine"
	"civicroute/internal/services/assign/service"

	auditdom "civicroute/internal/services/audit/domain"
	authdom "civicroute/internal/services/authorities/domain"
	issuedom "civicroute/internal/services/issues/domain"
	notifydom "civicroute/internal/services/notify/domain"
)

// Ports exposed by the assign module
type Ports struct {
	Worker   domain.WorkerPort
	Resolver domain.ResolverPort
}

// Deps are the cross-module ports the assigner consumes
type Deps struct {
	Issues      issuedom.ReaderPort
	Assignments issuedom.AssignmentWriterPort
	Authorities authdom.ReaderPort
	Dispatcher  notifydom.DispatcherPort
	Audit       auditdom.RecorderPort
}

// Module defines the assigner worker module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the assigner module with its ports
func New(deps modkit.Deps, xdeps Deps, overrides Options) *Module {
	// Load defaults, then apply non-zero overrides
	opts := FromConfig(deps.Cfg)

	if overrides.Concurrency != 0 {
		opts.Concurrency = overrides.Concurrency
	}
	if overrides.QueueTakeBatch != 0 {
		opts.QueueTakeBatch = overrides.QueueTakeBatch
	}
	if overrides.LeaseFor != 0 {
		opts.LeaseFor = overrides.LeaseFor
	}
	if overrides.RetryBaseMs != 0 {
		opts.RetryBaseMs = overrides.RetryBaseMs
	}
	if overrides.MaxAttempts != 0 {
		opts.MaxAttempts = overrides.MaxAttempts
	}
	if overrides.MaxDistanceKm != 0 {
		opts.MaxDistanceKm = overrides.MaxDistanceKm
	}
	if overrides.LevelHint != "" {
		opts.LevelHint = overrides.LevelHint
	}

	resolver := engine.New(xdeps.Authorities, engine.Config{
		MaxDistanceKm: opts.MaxDistanceKm,
		LevelHint:     opts.LevelHint,
	})

	svc := service.New(deps, service.Ports{
		Resolver:    resolver,
		Issues:      xdeps.Issues,
		Assignments: xdeps.Assignments,
		Authorities: xdeps.Authorities,
		Dispatcher:  xdeps.Dispatcher,
		Audit:       xdeps.Audit,
	}, service.Config{
		Concurrency:    opts.Concurrency,
		QueueTakeBatch: opts.QueueTakeBatch,
		LeaseFor:       opts.LeaseFor,
		RetryBaseMs:    opts.RetryBaseMs,
		MaxAttempts:    opts.MaxAttempts,
	})

	m := &Module{deps: deps}
	m.ports = Ports{
		Worker:   svc,
		Resolver: resolver,
	}
	return m
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "assign" }

// Prefix returns the module config prefix (none for worker-only service)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
