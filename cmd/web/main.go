package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/peterkuimelis/inwo/internal/config"
	"github.com/peterkuimelis/inwo/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	addr := flag.String("addr", cfg.Addr, "HTTP address to listen on")
	tableCards := flag.String("table-cards", cfg.TableCardsDir, "path to table card scans directory")
	flag.Parse()
	cfg.TableCardsDir = *tableCards

	logger := cfg.Logger(os.Stderr)

	cat, err := cfg.Catalog()
	if err != nil {
		logger.Fatal().Err(err).Msg("load catalog")
	}
	st, err := cfg.OpenStore()
	if err != nil {
		logger.Fatal().Err(err).Msg("open store")
	}
	defer st.Close()

	srv := web.NewServer(web.Options{
		Catalog:       cat,
		Store:         st,
		TableCardsDir: cfg.TableCardsDir,
		Seed:          cfg.Seed,
		Logger:        logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.ListenAndServe(ctx, *addr); err != nil {
		logger.Error().Err(err).Msg("web server stopped")
		os.Exit(1)
	}
}
