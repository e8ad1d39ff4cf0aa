// Package module wires the issues API using modkit
package module

import (
	"net/http"

	modkit "civicroute/internal/modkit"
	"civicroute/internal/modkit/httpkit"
	perrs "civicroute/internal/platform/errors"

	ihttp "civicroute/internal/services/api/issues/http"
	issuedom "civicroute/internal/services/issues/domain"
)

// Ports declares the required injected service port(s) for this API module
type Ports struct {
	Reader issuedom.ReaderPort
	Writer issuedom.WriterPort
}

// Module implements the issues API module
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

// New constructs the issues API module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("issues-api"),
		modkit.WithPrefix("/issues"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Reader == nil || injected.Writer == nil {
		panic("issues API module requires Reader and Writer ports (from services/issues)")
	}

	cfg := FromConfig(deps.Cfg)
	auth := httpkit.NewPortFunc(adminTokenFunc(cfg.AdminTokens))

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
		ihttp.Register(r, ihttp.Deps{
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

// adminTokenFunc resolves a bearer token to an admin id
func adminTokenFunc(tokens map[string]string) httpkit.TokenFunc {
	return func(token string) (string, string, error) {
		if admin, ok := tokens[token]; ok {
			return admin, "", nil
		}
		return "", "", perrs.Unauthorizedf("unknown admin token")
	}
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
