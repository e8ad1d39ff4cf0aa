// Package module implements the notification dispatcher module
package module

import (
	"civicroute/internal/adapters/push"
	"civicroute/internal/modkit"
	"civicroute/internal/modkit/httpkit"
	authdom "civicroute/internal/services/authorities/domain"
	"civicroute/internal/services/notify/domain"
	"civicroute/internal/services/notify/service"
)

// Ports exposed by the notify module
type Ports struct {
	Dispatcher domain.DispatcherPort
}

// Deps are the cross-module ports the notify module consumes. Authorities
// is the writer used to prune dead endpoints after a dispatch
type Deps struct {
	Authorities authdom.WriterPort
	// Transport overrides the default push client when set (tests)
	Transport domain.TransportPort
}

// Module implements the notify service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new notify module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("notify")}, opts...)...)

	var xdeps Deps
	if d, ok := b.Ports.(Deps); ok {
		xdeps = d
	}
	if xdeps.Authorities == nil {
		panic("notify module requires the authorities Writer port")
	}

	transport := xdeps.Transport
	if transport == nil {
		transport = push.NewClient(FromConfig(deps.Cfg))
	}

	m := &Module{deps: deps}
	m.ports = Ports{Dispatcher: service.New(transport, xdeps.Authorities)}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "notify" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
