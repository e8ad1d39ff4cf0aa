package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"civicroute/internal/modkit"
	"civicroute/internal/modkit/module"
	"civicroute/internal/platform/config"
	"civicroute/internal/platform/logger"
	"civicroute/internal/platform/store"

	assignmod "civicroute/internal/services/assign/module"
	auditmod "civicroute/internal/services/audit/module"
	authoritiesmod "civicroute/internal/services/authorities/module"
	issuesmod "civicroute/internal/services/issues/module"
	notifymod "civicroute/internal/services/notify/module"
)

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
		CH: store.CHConfig{
			Enabled:    true,
			URL:        chCfg.MustString("DBURL"),
			ClientName: "civicroute",
			ClientTag:  "assigner",
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	var (
		fConc   = flag.Int("concurrency", 4, "worker concurrency")
		fBatch  = flag.Int("batch", 64, "DB lease batch size per poll")
		fRetry  = flag.Int("retry_base_ms", 500, "base backoff (ms) for transient failures")
		fMaxAtt = flag.Int("max_attempts", 10, "max attempts before giving up")
		fMaxKm  = flag.Float64("max_distance_km", 50, "nearest-center assignment cap in km")
	)
	flag.Parse()

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		CH:  st.CH,
		Log: *l,
	}

	// Export as env so the module can also read via FromConfig
	mustSetEnv("ASSIGNER_WORKER_CONCURRENCY", fmt.Sprintf("%d", *fConc))
	mustSetEnv("ASSIGNER_QUEUE_TAKE_BATCH", fmt.Sprintf("%d", *fBatch))
	mustSetEnv("ASSIGNER_RETRY_BASE", fmt.Sprintf("%dms", *fRetry))
	mustSetEnv("ASSIGNER_MAX_ATTEMPTS", fmt.Sprintf("%d", *fMaxAtt))
	mustSetEnv("ASSIGNER_MAX_DISTANCE_KM", fmt.Sprintf("%.1f", *fMaxKm))

	// Headless service modules the assigner consumes
	authorities := authoritiesmod.New(deps)
	authPorts := module.MustPortsOf[authoritiesmod.Ports](authorities)

	issues := issuesmod.New(deps, modkit.WithPorts(issuesmod.Deps{
		Authorities: authPorts.Reader,
	}))
	issuePorts := module.MustPortsOf[issuesmod.Ports](issues)

	notify := notifymod.New(deps, modkit.WithPorts(notifymod.Deps{
		Authorities: authPorts.Writer,
	}))
	notifyPorts := module.MustPortsOf[notifymod.Ports](notify)

	audit := auditmod.New(deps)
	auditPorts := module.MustPortsOf[auditmod.Ports](audit)

	mod := assignmod.New(deps, assignmod.Deps{
		Issues:      issuePorts.Reader,
		Assignments: issuePorts.Assignment,
		Authorities: authPorts.Reader,
		Dispatcher:  notifyPorts.Dispatcher,
		Audit:       auditPorts.Recorder,
	}, assignmod.Options{
		Concurrency:    *fConc,
		QueueTakeBatch: *fBatch,
		RetryBaseMs:    *fRetry,
		MaxAttempts:    *fMaxAtt,
		MaxDistanceKm:  *fMaxKm,
	})
	module.Register(mod.Name(), mod.Ports())

	ports := module.MustPortsOf[assignmod.Ports](mod)

	if err := ports.Worker.Run(context.Background()); err != nil {
		l.Fatal().Err(err).Msg("assigner worker failed")
	}
}
