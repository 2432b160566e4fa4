package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/bingo-server/internal/config"
	"github.com/vancomm/bingo-server/internal/database"
	"github.com/vancomm/bingo-server/internal/middleware"
)

const shutdownTimeout = time.Second * 30

type App struct {
	logger     *logrus.Logger
	router     *http.ServeMux
	db         *pgxpool.Pool
	cookies    *config.Cookies
	ws         *config.WebSocket
	migrations fs.FS
}

func New(logger *logrus.Logger, migrations fs.FS) *App {
	return &App{
		logger:     logger,
		router:     http.NewServeMux(),
		migrations: migrations,
	}
}

// Handler mounts the routes under APP_BASE_PATH and wraps them with the
// middleware chain.
func (a *App) Handler() http.Handler {
	var handler http.Handler = a.router
	if base := config.BasePath(); base != "" {
		mux := http.NewServeMux()
		mux.Handle(base+"/", http.StripPrefix(base, a.router))
		handler = mux
	}
	return middleware.Wrap(
		handler,
		middleware.Auth(a.logger, a.cookies),
		middleware.Cors(),
		middleware.Logging(a.logger),
	)
}

func (a *App) Start(ctx context.Context) error {
	db, migrator, err := database.ConnectAndMigrate(ctx, a.migrations)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	defer db.Close()
	if version, dirty, err := migrator.Version(); err == nil {
		a.logger.WithFields(logrus.Fields{
			"version": version,
			"dirty":   dirty,
		}).Info("database migrated")
	}
	migrator.Close()

	a.db = db

	jwt, err := config.NewJWT()
	if err != nil {
		return err
	}

	a.cookies, err = config.NewCookies(jwt)
	if err != nil {
		return err
	}

	a.ws = config.NewWebSocket()

	a.loadRoutes()

	addr := config.Port()
	server := &http.Server{
		Addr:         addr,
		Handler:      a.Handler(),
		ReadTimeout:  time.Second * 15,
		WriteTimeout: time.Second * 15,
		IdleTimeout:  time.Second * 60,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	a.logger.Infof("ready to serve @ %s", addr)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("unable to listen and serve: %w", err)
	})
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
