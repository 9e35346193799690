package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"moviebot/internal/bot"
	"moviebot/internal/catalog"
	"moviebot/internal/favorites"
	"moviebot/internal/telegram"
	"moviebot/pkg/database"
	"moviebot/pkg/utils"
)

func main() {
	botCfg, err := utils.LoadBotConfig()
	if err != nil {
		log.Fatalf("bot config: %v", err)
	}

	dbCfg := database.DefaultConfig()
	db := database.MustOpen(dbCfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	client := telegram.NewClient(botCfg.Token)
	b := bot.New(client, catalog.NewRepo(db), favorites.NewRepo(db), log.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Printf("shutdown signal received: %s", sig)
		cancel()
	}()

	log.Printf("bot started (db: %s)", dbCfg.Path)
	if err := b.Run(ctx, client, botCfg.PollTimeout); err != nil && err != context.Canceled {
		log.Fatalf("bot stopped with error: %v", err)
	}
	log.Println("bot stopped")
}
