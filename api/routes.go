package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-server/internal/handlers/response"
	"github.com/carson-networks/expense-server/internal/handlers/v1/expense"
	"github.com/carson-networks/expense-server/internal/handlers/v1/status"
	"github.com/carson-networks/expense-server/internal/logging"
	"github.com/carson-networks/expense-server/internal/service"
)

const shutdownTimeout = 10 * time.Second

// Pinger reports whether the storage collaborator is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
	Storage Pinger
}

// Handler builds the root handler: /status plus the Huma expense API.
func (r *Rest) Handler() http.Handler {
	apiMux := http.NewServeMux()
	humaAPI := humago.New(apiMux, response.NewConfig("Expense API", "1.0.0"))
	expense.Register(humaAPI, r.Service.Expense)

	statusHandler := status.NewHandler(r.Storage)

	mux := http.NewServeMux()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))
	mux.Handle("/", logging.Middleware("API", r.Logger, apiMux))
	return mux
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
