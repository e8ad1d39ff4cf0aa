// Package module wires the authorities API using modkit
package module

import (
	"net/http"

	modkit "civicroute/internal/modkit"
	"civicroute/internal/modkit/httpkit"
	perrs "civicroute/internal/platform/errors"

	ahttp "civicroute/internal/services/api/authorities/http"
	apiissues "civicroute/internal/services/api/issues/module"
	authdom "civicroute/internal/services/authorities/domain"
)

// Ports declares the required injected service port(s) for this API module
type Ports struct {
	Reader authdom.ReaderPort
	Writer authdom.WriterPort
}

// Module implements the authorities API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// New constructs the authorities API module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("authorities-api"),
		modkit.WithPrefix("/authorities"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Reader == nil || injected.Writer == nil {
		panic("authorities API module requires Reader and Writer ports (from services/authorities)")
	}

	// same admin token set as the issues API
	cfg := apiissues.FromConfig(deps.Cfg)
	auth := httpkit.NewPortFunc(func(token string) (string, string, error) {
		if admin, ok := cfg.AdminTokens[token]; ok {
			return admin, "", nil
		}
		return "", "", perrs.Unauthorizedf("unknown admin token")
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
	}
	m.ports = injected

	external := b.Register
	m.register = func(r httpkit.Router) {
		ahttp.Register(r, ahttp.Deps{
			Reader: injected.Reader,
			Writer: injected.Writer,
			Auth:   auth,
		})
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.prefix }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
