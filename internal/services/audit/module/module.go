// Package module wires the audit recorder and exposes its port
package module

import (
	"civicroute/internal/modkit"
	"civicroute/internal/modkit/httpkit"
	"civicroute/internal/services/audit/domain"
	"civicroute/internal/services/audit/repo"
	"civicroute/internal/services/audit/service"
)

// Ports exposed by the audit module
type Ports struct {
	Recorder domain.RecorderPort
}

// Module implements the audit service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the audit module on the clickhouse seam
func New(deps modkit.Deps) *Module {
	svc := service.New(repo.NewCH(deps.CH))

	m := &Module{deps: deps}
	m.ports = Ports{Recorder: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "audit" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
