// server 是在线推荐服务入口。
package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/rushteam/moviekit/config"
	"github.com/rushteam/moviekit/service"
)

func main() {
	configPath := flag.String("config", "", "config file path (yaml)")
	flag.Parse()

	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.WithError(err).Fatal("load config")
	}

	app, err := service.NewApp(context.Background(), cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("init app")
	}
	defer app.Close()

	logger.WithField("addr", cfg.Server.Addr).Info("server starting")
	if err := app.Router().Run(cfg.Server.Addr); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
