// Package module implements the issues service module
package module

import (
	"civicroute/internal/modkit"
	"civicroute/internal/modkit/httpkit"
	"civicroute/internal/modkit/repokit"
	authdom "civicroute/internal/services/authorities/domain"
	"civicroute/internal/services/issues/domain"
	"civicroute/internal/services/issues/repo"
	"civicroute/internal/services/issues/service"
)

// Ports exposed by the issues module
type Ports struct {
	Reader     domain.ReaderPort
	Writer     domain.WriterPort
	Assignment domain.AssignmentWriterPort
}

// Deps are the cross-module ports the issues module consumes
type Deps struct {
	Authorities authdom.ReaderPort
}

// Module implements the issues service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new issues module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("issues")}, opts...)...)

	var authorities authdom.ReaderPort
	if d, ok := b.Ports.(Deps); ok {
		authorities = d.Authorities
	}
	svc := service.New(repokit.TxRunner(deps.PG), repo.NewPG(), authorities)

	m := &Module{deps: deps}
	m.ports = Ports{
		Reader:     svc,
		Writer:     svc,
		Assignment: svc,
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "issues" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
