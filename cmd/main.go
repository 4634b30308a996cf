package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/DiosOne/library-api/internal/config"
	"github.com/DiosOne/library-api/internal/logger"
	"github.com/DiosOne/library-api/internal/server"
	"github.com/DiosOne/library-api/internal/storage"
)

func main() {
	cfg, err := config.ReadConfig()
	if err != nil {
		log.Fatal(err)
	}
	log := logger.Get(cfg.Debug)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
		<-c

		log.Debug().Msg("ctx cancel; catch os signal")
		cancel()
	}()

	log.Debug().Str("addr", cfg.Addr).Str("db_host", cfg.DBHost).Msg("config loaded")
	var stor server.Storage
	stor, err = storage.NewDB(ctx, cfg.DSN(), cfg.DBTimeout)
	if err != nil {
		log.Error().Err(err).Msg("connecting to data base failed, falling back to memory storage")
		stor = storage.New()
	}
	serv := server.New(*cfg, stor)
	group, gCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return serv.Run(gCtx)
	})
	group.Go(func() error {
		<-gCtx.Done()
		return serv.ShutdownServer()
	})

	if err = group.Wait(); err != nil {
		log.Info().Str("stopping reason", err.Error()).Msg("server stopped")
		return
	}
	log.Info().Msg("server stopped")
}
