package main

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/vinledger/vinledger/internal/common/config"
	"github.com/vinledger/vinledger/internal/common/db"
	"github.com/vinledger/vinledger/internal/common/logger"
	"github.com/vinledger/vinledger/internal/common/server"
	"github.com/vinledger/vinledger/internal/common/tracing"
	"github.com/vinledger/vinledger/internal/vehicle"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.Path)
	if err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}

	// Shared settings in Consul KV override the environment when configured.
	if cfg.Consul.Host != "" && cfg.Consul.KVKey != "" {
		if err := config.LoadFromConsulKV(cfg, cfg.Consul.Host, cfg.Consul.Port, cfg.Consul.KVKey); err != nil {
			log.Warnf("failed to load config from consul kv: %v", err)
		}
	}

	if cfg.Jaeger.Endpoint != "" {
		_, closer, err := tracing.InitTracer(cfg.Server.Name, cfg.Jaeger.Endpoint, cfg.Jaeger.Sampler)
		if err != nil {
			log.Warnf("failed to init tracer: %v", err)
		} else {
			defer closer.Close()
		}
	}

	gormDB, err := db.NewMySQL(
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Database,
		cfg.Database.MaxIdle,
		cfg.Database.MaxOpen,
	)
	if err != nil {
		log.Fatalf("failed to init mysql: %v", err)
	}
	if err := gormDB.AutoMigrate(&vehicle.Vehicle{}); err != nil {
		log.Fatalf("failed to migrate mysql schema: %v", err)
	}

	if err := server.RunHTTPServer(cfg, log, func(r *gin.Engine) error {
		r.GET("/ping", server.Ping)
		vehicle.NewHTTPServer(gormDB, log).RegisterRoutes(r)
		return nil
	}); err != nil {
		log.Fatalf("vehicle-service exited with error: %v", err)
	}
}
