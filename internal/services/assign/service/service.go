// Package service implements the assigner worker
package service

import (
	"time"

	"civicroute/internal/modkit"
	"civicroute/internal/modkit/repokit"

	dom "civicroute/internal/services/assign/domain"
	arepo "civicroute/internal/services/assign/repo"
	auditdom "civicroute/internal/services/audit/domain"
	authdom "civicroute/internal/services/authorities/domain"
	issuedom "civicroute/internal/services/issues/domain"
	notifydom "civicroute/internal/services/notify/domain"
)

// Config controls the worker
type Config struct {
	Concurrency    int
	QueueTakeBatch int
	LeaseFor       time.Duration
	RetryBaseMs    int
	MaxAttempts    int
}

// Ports are the cross-module surfaces the worker drives for each job:
// resolve, persist, notify, audit
type Ports struct {
	Resolver    dom.ResolverPort
	Issues      issuedom.ReaderPort
	Assignments issuedom.AssignmentWriterPort
	Authorities authdom.ReaderPort
	Dispatcher  notifydom.DispatcherPort
	Audit       auditdom.RecorderPort
}

// Svc implements the assigner worker
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[arepo.Repo]
	repo   arepo.Repo

	ports Ports
	cfg   Config
}

var _ dom.WorkerPort = (*Svc)(nil)

// New constructs the service
func New(deps modkit.Deps, ports Ports, cfg Config) *Svc {
	b := arepo.NewPG()
	return &Svc{
		db:     deps.PG,
		binder: b,
		repo:   b.Bind(deps.PG),
		ports:  ports,
		cfg:    cfg,
	}
}

func durationMs(ms int) time.Duration {
	if ms <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(ms) * time.Millisecond
}

func nextAfter(attempt int, baseMs int) time.Time {
	back := durationMs(baseMs)
	// simple exponential w/ cap ~30s
	ms := int64(back/time.Millisecond) << uint(attempt)
	if ms > int64(30*time.Second/time.Millisecond) {
		ms = int64(30 * time.Second / time.Millisecond)
	}
	return time.Now().UTC().Add(time.Duration(ms) * time.Millisecond)
}
