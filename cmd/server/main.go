package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/benbeisheim/chessbot-backend/internal/service"
	"github.com/gofiber/fiber/v2/log"
)

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if cfg.debug {
		log.SetLevel(log.LevelDebug)
	} else {
		log.SetLevel(log.LevelInfo)
	}

	gameManager := service.NewGameManager(cfg.matchmakingInterval)
	defer gameManager.Close()
	gameService := service.NewGameService(gameManager)

	app := newApp(cfg, gameService)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	log.Infof("listening on %s (origins %v)", cfg.addr, cfg.originList())
	if err := app.Listen(cfg.addr); err != nil {
		log.Fatal(err)
	}
}
