// Package api provides the HTTP API for the application
package api

import (
	"civicroute/internal/platform/config"
	"civicroute/internal/platform/logger"
	phttp "civicroute/internal/platform/net/http"
	"civicroute/internal/platform/store"

	"civicroute/internal/modkit"
	"civicroute/internal/modkit/httpkit"
	"civicroute/internal/modkit/module"
	"civicroute/internal/modkit/swaggerkit"

	apiauthorities "civicroute/internal/services/api/authorities/module"
	apiissues "civicroute/internal/services/api/issues/module"
	metamod "civicroute/internal/services/api/meta/module"

	// Headless service modules that own the domain ports
	authoritiesmod "civicroute/internal/services/authorities/module"
	issuesmod "civicroute/internal/services/issues/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	// Construct the headless service modules first and extract their ports
	authorities := authoritiesmod.New(deps)
	authPorts := module.MustPortsOf[authoritiesmod.Ports](authorities)

	issues := issuesmod.New(deps, modkit.WithPorts(issuesmod.Deps{
		Authorities: authPorts.Reader,
	}))
	issuePorts := module.MustPortsOf[issuesmod.Ports](issues)

	// Inject those ports into the transport-facing API modules
	issuesAPI := apiissues.New(deps, modkit.WithPorts(apiissues.Ports{
		Reader: issuePorts.Reader,
		Writer: issuePorts.Writer,
	}))
	authoritiesAPI := apiauthorities.New(deps, modkit.WithPorts(apiauthorities.Ports{
		Reader: authPorts.Reader,
		Writer: authPorts.Writer,
	}))

	mods := []module.Module{
		metamod.New(deps),
		authorities, // include headless modules so their ports are registered
		issues,
		authoritiesAPI,
		issuesAPI,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
