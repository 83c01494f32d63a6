package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/sharkgitz/eboxai/internal/config"
	"github.com/sharkgitz/eboxai/internal/mockapi"
	"github.com/sharkgitz/eboxai/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("EBOX_CONFIG"))
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Log.Level)
	defer log.Sync()

	store := mockapi.NewStore()
	store.Seed()
	log.Info("mock backend seeded", zap.Int("emails", store.EmailCount()))

	router := mockapi.NewRouter(store, log)

	log.Info("mock backend listening", zap.String("port", cfg.Mock.Port))
	if err := router.Run(cfg.Mock.Port); err != nil {
		log.Fatal("mock backend failed", zap.Error(err))
	}
}
