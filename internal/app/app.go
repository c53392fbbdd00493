package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/shadownumbers/numrent/internal/config"
	"github.com/shadownumbers/numrent/internal/handlers"
	"github.com/shadownumbers/numrent/internal/oracle"
	"github.com/shadownumbers/numrent/internal/poller"
	"github.com/shadownumbers/numrent/internal/repo"
	"github.com/shadownumbers/numrent/internal/service"
	"github.com/shadownumbers/numrent/internal/storage"
	"github.com/shadownumbers/numrent/internal/sweeper"
	"github.com/shadownumbers/numrent/pkg/clients"
	"github.com/shadownumbers/numrent/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg  *config.Config
	api  *handlers.Handlers
	srv  *service.Services
	repo *repo.Repositories
	swp  *sweeper.Service
	poll *poller.Service

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	store := storage.New(cfg.StateFile)
	// Fail fast on an unreadable or corrupt state file: there is no safe
	// partial state to fall back to.
	if _, err := store.Load(ctx); err != nil {
		zap.L().Error("state load failed: ", zap.Error(err))
		return fmt.Errorf("can't load state: %w", err)
	}

	a.cfg = cfg
	a.repo = repo.New(store)
	orc := oracle.New(cfg, clients.NewHTTPClient())
	a.srv = service.New(a.repo, orc, cfg)
	a.api = handlers.New(a.srv)
	a.swp = sweeper.New(a.srv.RentalService, cfg.SweepInterval)
	a.poll = poller.New(cfg, a.srv.PaymentService)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.startBackground(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router, a.cfg)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startBackground(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.swp.Start(ctx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.poll.Start(ctx)
	}()
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
