package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/drydockhq/drydock/pkg/backend"
	"github.com/drydockhq/drydock/pkg/config"
	"github.com/drydockhq/drydock/pkg/cron"
	"github.com/drydockhq/drydock/pkg/db"
	"github.com/drydockhq/drydock/pkg/i18n"
	"github.com/drydockhq/drydock/pkg/jobs"
	"github.com/drydockhq/drydock/pkg/stats"
	"github.com/drydockhq/drydock/pkg/store"
	"github.com/drydockhq/drydock/pkg/web"
	"github.com/drydockhq/drydock/pkg/webhook"
	"golang.org/x/sync/errgroup"
)

// Server is the Drydock server.
type Server struct {
	HTTPServer  *web.HTTPServer
	StatsServer *stats.StatsServer
	Cron        *cron.Scheduler
	Dispatcher  *webhook.Dispatcher
	Config      *config.Config
	Backend     *backend.Backend
	DB          *db.DB

	logger *log.Logger
	ctx    context.Context
}

// NewServer returns a new *Server configured to serve Drydock.
// It expects a context with *backend.Backend, *db.DB, store.Store,
// *log.Logger, and *config.Config attached.
func NewServer(ctx context.Context) (*Server, error) {
	cfg := config.FromContext(ctx)
	be := backend.FromContext(ctx)
	dbx := db.FromContext(ctx)
	datastore := store.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("server")
	srv := &Server{
		Config:  cfg,
		Backend: be,
		DB:      dbx,
		logger:  logger,
	}

	catalog, err := i18n.New()
	if err != nil {
		return nil, fmt.Errorf("load locales: %w", err)
	}

	client := webhook.NewClient(cfg, log.FromContext(ctx).WithPrefix("webhook"))
	srv.Dispatcher = webhook.NewDispatcher(ctx, cfg, dbx, datastore, client, catalog.Localizer(cfg.Locale))

	// The HTTP intake resolves the dispatcher through the context.
	ctx = webhook.WithContext(ctx, srv.Dispatcher)
	srv.ctx = ctx

	// Add cron jobs.
	sched := cron.NewScheduler(ctx)
	for n, j := range jobs.List() {
		spec := j.Runner.Spec(ctx)
		if spec == "" {
			logger.Debug("cron job disabled", "job", n)
			continue
		}

		id, err := sched.AddFunc(spec, j.Runner.Func(ctx))
		if err != nil {
			logger.Warn("error adding cron job", "job", n, "err", err)
		}

		j.ID = id
	}

	srv.Cron = sched

	srv.HTTPServer, err = web.NewHTTPServer(ctx)
	if err != nil {
		return nil, fmt.Errorf("create http server: %w", err)
	}

	srv.StatsServer, err = stats.NewStatsServer(ctx)
	if err != nil {
		return nil, fmt.Errorf("create stats server: %w", err)
	}

	return srv, nil
}

// Start starts the server.
func (s *Server) Start() error {
	errg, _ := errgroup.WithContext(s.ctx)

	// optionally start the HTTP server
	if s.Config.HTTP.Enabled {
		errg.Go(func() error {
			s.logger.Print("Starting HTTP server", "addr", s.Config.HTTP.ListenAddr)
			if err := s.HTTPServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	// optionally start the Stats server
	if s.Config.Stats.Enabled {
		errg.Go(func() error {
			s.logger.Print("Starting Stats server", "addr", s.Config.Stats.ListenAddr)
			if err := s.StatsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	errg.Go(func() error {
		s.Cron.Start()
		return nil
	})
	return errg.Wait()
}

// Shutdown lets the server gracefully shutdown. Queued webhook deliveries
// are drained after the intake stops accepting events.
func (s *Server) Shutdown(ctx context.Context) error {
	errg, ctx := errgroup.WithContext(ctx)
	errg.Go(func() error {
		return s.HTTPServer.Shutdown(ctx)
	})
	errg.Go(func() error {
		return s.StatsServer.Shutdown(ctx)
	})
	errg.Go(func() error {
		for _, j := range jobs.List() {
			s.Cron.Remove(j.ID)
		}
		s.Cron.Stop()
		return nil
	})
	err := errg.Wait()
	if cerr := s.Dispatcher.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// Close closes the server.
func (s *Server) Close() error {
	var errg errgroup.Group
	errg.Go(s.HTTPServer.Close)
	errg.Go(s.StatsServer.Close)
	errg.Go(func() error {
		s.Cron.Stop()
		return nil
	})
	errg.Go(s.Dispatcher.Close)
	return errg.Wait()
}
