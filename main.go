package main

import (
	"fmt"

	"github.com/Deji-py/eco-rider/configs"
	"github.com/Deji-py/eco-rider/internal/logger"
	"github.com/Deji-py/eco-rider/middlewares"
	"github.com/Deji-py/eco-rider/routes"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	envFile := pflag.String("env-file", ".env", "path to the env file")
	port := pflag.String("port", "", "override the listen port")
	pflag.Parse()

	cfg := configs.LoadConfig(*envFile)
	if *port != "" {
		cfg.Port = *port
	}

	log := logger.New(cfg.Debug)
	defer log.Sync()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	configs.SetupDatabase()
	if err := configs.SeedVehicleTypes(); err != nil {
		log.Fatal("seed vehicle types failed", zap.Error(err))
	}
	if cfg.SeedDemo {
		if err := configs.SeedDemo(); err != nil {
			log.Fatal("seed demo data failed", zap.Error(err))
		}
	}

	// HTTP
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())

	routes.RegisterRoutes(r, configs.DB(), cfg)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Info("server running", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
