// Package server wires configuration, logging, the user store, the
// authentication service and both transports into a runnable application.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/auxillary/internal/filex"
	"github.com/dmitrijs2005/auxillary/internal/logging"
	"github.com/dmitrijs2005/auxillary/internal/server/config"
	"github.com/dmitrijs2005/auxillary/internal/server/httpapi"
	"github.com/dmitrijs2005/auxillary/internal/server/metrics"
	"github.com/dmitrijs2005/auxillary/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/auxillary/internal/server/services"

	gs "github.com/dmitrijs2005/auxillary/internal/server/grpc"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	grpcServer *gs.GRPCServer
	httpServer *httpapi.Server
}

// NewApp opens the database, applies migrations and builds the servers.
// Log output goes to w.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {

	logger, err := logging.New(c.LogFormat, c.LogLevel, w)
	if err != nil {
		return nil, err
	}

	rm, err := repomanager.New(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	if c.DatabaseDriver == config.DriverSQLite {
		if path, ok := filex.SQLiteFile(c.DatabaseDSN); ok {
			if _, err := filex.EnsureParentDir(path); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open(rm.DriverName(), c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if c.DatabaseDriver == config.DriverSQLite {
		// one writer at a time; also keeps in-memory databases alive
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	m := metrics.New()
	auth := services.NewAuthService(db, rm, logger)

	app := &App{config: c, logger: logger, db: db}
	if c.EndpointAddrGRPC != "" {
		app.grpcServer = gs.NewGRPCServer(c.EndpointAddrGRPC, logger, auth, m)
	}
	if c.EndpointAddrHTTP != "" {
		app.httpServer = httpapi.NewServer(c.EndpointAddrHTTP, logger, auth, m, c.ShutdownTimeout)
	}

	return app, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Received signal", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// runServer runs fn and cancels the whole app if it fails.
func (app *App) runServer(ctx context.Context, cancelFunc context.CancelFunc, name string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or a server fails,
// then waits for both servers to stop and closes the database.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "db_driver", app.config.DatabaseDriver)

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	if app.grpcServer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.runServer(ctx, cancelFunc, "grpc", app.grpcServer.Run)
		}()
	}

	if app.httpServer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.runServer(ctx, cancelFunc, "http", app.httpServer.Run)
		}()
	}

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close error", "error", err)
	}

	app.logger.Info(context.Background(), "App stopped")
}
