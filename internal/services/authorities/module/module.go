// Package module implements the authorities service module
package module

import (
	"civicroute/internal/modkit"
	"civicroute/internal/modkit/httpkit"
	"civicroute/internal/modkit/repokit"
	"civicroute/internal/services/authorities/domain"
	"civicroute/internal/services/authorities/repo"
	"civicroute/internal/services/authorities/service"
)

// Ports exposed by the authorities module
type Ports struct {
	Reader domain.ReaderPort
	Writer domain.WriterPort
}

// Module implements the authorities service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new authorities module
func New(deps modkit.Deps) *Module {
	svc := service.New(repokit.TxRunner(deps.PG), repo.NewPG())

	m := &Module{deps: deps}
	m.ports = Ports{
		Reader: svc,
		Writer: svc,
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "authorities" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
