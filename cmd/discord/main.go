// cmd/discord/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/keshon/swolebro/internal/command/core"
	_ "github.com/keshon/swolebro/internal/command/jcfdiscord"

	"github.com/keshon/swolebro/internal/config"
	"github.com/keshon/swolebro/internal/discord"
	v "github.com/keshon/swolebro/internal/version"
)

func main() {
	log.SetOutput(os.Stdout)
	log.Printf("[INFO] Starting %v bot (%s)...", v.AppName, v.Version)

	cfg, err := config.New()
	if err != nil {
		log.Fatal("[ERR] ", err)
	}

	bot, err := discord.New(cfg)
	if err != nil {
		log.Fatal("[ERR] ", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		if err := bot.Run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...\n", s)
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] An error occurred while running the client:", err)
			cancel()
			os.Exit(1)
		}
	}

	log.Println("[INFO] Discord bot exited cleanly")
}
