package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vinledger/vinledger/internal/common/config"
	"github.com/vinledger/vinledger/internal/common/discovery"
	"github.com/vinledger/vinledger/internal/common/logger"
	"github.com/vinledger/vinledger/internal/common/middleware"
)

// RegisterFunc mounts application routes on the engine.
type RegisterFunc func(r *gin.Engine) error

// Ping is the liveness probe, also used by the Consul health check.
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ping": "pong"})
}

type RunHTTPOptions struct {
	ShutdownTimeout time.Duration
}

func defaultRunHTTPOptions() RunHTTPOptions {
	return RunHTTPOptions{
		ShutdownTimeout: 5 * time.Second,
	}
}

// RunHTTPServer is the shared HTTP service template:
//   - builds the gin engine with the standard middleware chain
//   - mounts application routes
//   - registers with Consul when one is configured (HTTP check on /ping)
//   - serves until SIGINT/SIGTERM, then shuts down gracefully
func RunHTTPServer(cfg *config.Config, log logger.Logger, register RegisterFunc, opts ...func(*RunHTTPOptions)) error {
	if cfg == nil {
		return fmt.Errorf("cfg is nil")
	}
	if log == nil {
		return fmt.Errorf("log is nil")
	}

	o := defaultRunHTTPOptions()
	for _, apply := range opts {
		if apply != nil {
			apply(&o)
		}
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	var limiter middleware.RateLimiter
	if cfg.RateLimit.Capacity > 0 {
		limiter = middleware.NewTokenBucket(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate)
	}

	engine.Use(
		Recovery(log),
		Tracing(cfg.Server.Name),
		AccessLog(log),
		RateLimit(limiter),
	)

	if register != nil {
		if err := register(engine); err != nil {
			return fmt.Errorf("failed to register routes: %w", err)
		}
	}

	// Consul is optional; a missing agent must not block startup.
	if cfg.Consul.Host != "" {
		consulClient, err := discovery.NewConsulClient(cfg.Consul.Host, cfg.Consul.Port)
		if err != nil {
			log.Warnf("failed to connect to Consul: %v", err)
		} else {
			serviceID := fmt.Sprintf("%s-%s", cfg.Server.Name, uuid.New().String())
			registry := discovery.NewServiceRegistry(
				consulClient,
				serviceID,
				cfg.Server.Name,
				cfg.Server.Host,
				cfg.Server.Port,
				"/ping",
				[]string{"http"},
			)
			if err := registry.Register(); err != nil {
				log.Warnf("failed to register service to Consul: %v", err)
			} else {
				log.Infof("Service registered to Consul: %s", serviceID)
				defer func() {
					if err := registry.Deregister(); err != nil {
						log.Warnf("failed to deregister service from Consul: %v", err)
					}
				}()
			}
		}
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Infof("%s starting on %s", cfg.Server.Name, srv.Addr)

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Infof("received signal %v, shutting down...", sig)
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http serve failed: %w", err)
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), o.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Warnf("http shutdown timeout, forcing close: %v", err)
		return srv.Close()
	}
	log.Info("http server stopped gracefully")
	return nil
}

// WithShutdownTimeout overrides how long graceful shutdown may take.
func WithShutdownTimeout(d time.Duration) func(*RunHTTPOptions) {
	return func(o *RunHTTPOptions) {
		if d > 0 {
			o.ShutdownTimeout = d
		}
	}
}
