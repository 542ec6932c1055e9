package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/inwo/internal/config"
	inwomcp "github.com/peterkuimelis/inwo/internal/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	storePath := flag.String("store", cfg.StorePath, "deck store path")
	storeDriver := flag.String("store-driver", cfg.StoreDriver, "deck store driver: memory, file or sqlite")
	seed := flag.Int64("seed", cfg.Seed, "shuffle seed (0 for random)")
	flag.Parse()
	cfg.StorePath, cfg.StoreDriver = *storePath, *storeDriver

	// stdout carries the protocol; logs go to stderr.
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

	inwomcp.SetCatalog(cat)
	inwomcp.SetStore(st)
	inwomcp.SetSeed(*seed)

	s := server.NewMCPServer("inwo", "1.0.0")
	inwomcp.RegisterTools(s)

	logger.Info().Int("cards", cat.Len()).Str("store", cfg.StoreDriver).Msg("mcp server ready")
	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
