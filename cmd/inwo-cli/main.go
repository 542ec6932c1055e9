package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"

	"github.com/peterkuimelis/inwo/internal/config"
	"github.com/peterkuimelis/inwo/internal/game"
	"github.com/peterkuimelis/inwo/internal/log"
	inwonet "github.com/peterkuimelis/inwo/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	args := os.Args[2:]
	switch os.Args[1] {
	case "validate":
		err = runValidate(ctx, cfg, args)
	case "save":
		err = runSave(ctx, cfg, args)
	case "code":
		err = runCode(ctx, cfg, args)
	case "decks":
		err = runDecks(cfg, args)
	case "play":
		err = runPlay(ctx, cfg, args)
	case "serve":
		err = runServe(ctx, cfg, args)
	case "join":
		err = runJoin(ctx, cfg, args)
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fail(err)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  inwo validate [--decks FILE --deck NAME]")
	fmt.Println("  inwo save     (--decks FILE [--deck NAME] | --prebuilt FACTION | --code CODE)")
	fmt.Println("  inwo code")
	fmt.Println("  inwo decks    [--export FILE]")
	fmt.Println("  inwo play     [--seed N] [--no-shuffle] [--log FILE]")
	fmt.Println("  inwo serve    [--addr ADDR] [--seed N]")
	fmt.Println("  inwo join     [--addr ADDR]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  validate  Check a deck from a YAML file, or the saved deck")
	fmt.Println("  save      Replace the saved deck")
	fmt.Println("  code      Print the share code of the saved deck")
	fmt.Println("  decks     List the prebuilt starter decks")
	fmt.Println("  play      Play a match in this terminal with the saved deck")
	fmt.Println("  serve     Host matches for remote terminals")
	fmt.Println("  join      Play a match on a remote server")
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func logger(cfg config.Config) zerolog.Logger {
	return cfg.Logger(os.Stderr)
}

func runValidate(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	decksFile := fs.String("decks", "", "path to decks YAML file (default: the saved deck)")
	deckName := fs.String("deck", "", "deck name in the decks file (default: the first)")
	fs.Parse(args)

	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}

	var saved game.SavedDeck
	if *decksFile != "" {
		entry, err := game.DeckByName(*decksFile, *deckName)
		if err != nil {
			return err
		}
		saved = entry.Saved()
	} else {
		st, err := cfg.OpenStore()
		if err != nil {
			return err
		}
		defer st.Close()
		var ok bool
		saved, ok, err = st.LoadDeck(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no saved deck in %s", cfg.StorePath)
		}
	}

	faction, ok := cat.Faction(saved.FactionID)
	if !ok {
		return fmt.Errorf("%w: faction %q", game.ErrUnknownCard, saved.FactionID)
	}
	cards, err := cat.ResolveStrict(saved.CardIDs)
	if err != nil {
		return err
	}
	res := game.ValidateDeck(faction, cards)

	fmt.Printf("%s: %d cards (%d groups, %d plots)\n", faction.Name, res.TotalCards, res.GroupCount, res.PlotCount)
	for _, m := range res.Messages {
		fmt.Println("  - " + m)
	}
	if !res.IsValid {
		return fmt.Errorf("deck is not valid")
	}
	fmt.Println("Deck is valid.")
	return nil
}

func runSave(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	decksFile := fs.String("decks", "", "path to decks YAML file")
	deckName := fs.String("deck", "", "deck name in the decks file (default: the first)")
	prebuilt := fs.String("prebuilt", "", "faction whose starter deck to save")
	code := fs.String("code", "", "deck share code")
	fs.Parse(args)

	var saved game.SavedDeck
	switch {
	case *decksFile != "":
		entry, err := game.DeckByName(*decksFile, *deckName)
		if err != nil {
			return err
		}
		saved = entry.Saved()
	case *prebuilt != "":
		ids := game.PrebuiltDeck(*prebuilt)
		if ids == nil {
			return fmt.Errorf("no prebuilt deck for %q", *prebuilt)
		}
		saved = game.SavedDeck{FactionID: *prebuilt, CardIDs: ids}
	case *code != "":
		var err error
		if saved, err = game.DecodeDeckCode(*code); err != nil {
			return err
		}
	default:
		return fmt.Errorf("one of --decks, --prebuilt or --code is required")
	}

	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}
	if _, ok := cat.Faction(saved.FactionID); !ok {
		return fmt.Errorf("%w: faction %q", game.ErrUnknownCard, saved.FactionID)
	}
	st, err := cfg.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.SaveDeck(ctx, saved.FactionID, saved.CardIDs); err != nil {
		return err
	}
	l := logger(cfg)
	l.Info().Str("faction", saved.FactionID).Int("cards", len(saved.CardIDs)).Str("store", cfg.StoreDriver).Msg("deck saved")
	return nil
}

func runCode(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("code", flag.ExitOnError)
	text := fs.Bool("text", false, "print the readable deck list instead of the code")
	fs.Parse(args)

	st, err := cfg.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()
	saved, ok, err := st.LoadDeck(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no saved deck in %s", cfg.StorePath)
	}
	if *text {
		fmt.Println(game.ExportDeckText(saved.FactionID, saved.CardIDs))
		return nil
	}
	fmt.Println(game.EncodeDeckCode(saved.FactionID, saved.CardIDs))
	return nil
}

func runDecks(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("decks", flag.ExitOnError)
	export := fs.String("export", "", "write every prebuilt deck to this YAML file")
	fs.Parse(args)

	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}
	var entries []game.DeckEntry
	for _, f := range cat.Factions() {
		ids := game.PrebuiltDeck(f.ID)
		if ids == nil {
			continue
		}
		res := game.ValidateDeck(f, cat.Resolve(ids))
		status := "valid"
		if !res.IsValid {
			status = strings.Join(res.Messages, "; ")
		}
		fmt.Printf("%-26s %2d groups %2d plots  %s\n", f.Name, res.GroupCount, res.PlotCount, status)
		entries = append(entries, game.DeckEntryFromIDs(f.Name+" Starter", f.ID, ids))
	}
	if *export != "" {
		if err := game.WriteDeckFile(*export, entries...); err != nil {
			return err
		}
		fmt.Printf("Wrote %d decks to %s\n", len(entries), *export)
	}
	return nil
}

func matchConfig(ctx context.Context, cfg config.Config, seed int64, noShuffle bool) (game.MatchConfig, error) {
	cat, err := cfg.Catalog()
	if err != nil {
		return game.MatchConfig{}, err
	}
	mc := game.MatchConfig{Catalog: cat, Seed: seed, NoShuffle: noShuffle}

	st, err := cfg.OpenStore()
	if err != nil {
		return game.MatchConfig{}, err
	}
	defer st.Close()
	saved, ok, err := st.LoadDeck(ctx)
	if err != nil {
		l := logger(cfg)
		l.Warn().Err(err).Msg("load saved deck; using the default faction")
	} else if ok {
		mc.Saved = &saved
	}
	return mc, nil
}

func runPlay(ctx context.Context, cfg config.Config, args []string) error {
	return play(ctx, cfg, args, os.Stdin, os.Stdout)
}

func play(ctx context.Context, cfg config.Config, args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	seed := fs.Int64("seed", cfg.Seed, "shuffle seed (0 for random)")
	noShuffle := fs.Bool("no-shuffle", false, "keep catalog order in the main deck")
	logFile := fs.String("log", "", "append a match transcript to this file")
	fs.Parse(args)

	mc, err := matchConfig(ctx, cfg, *seed, *noShuffle)
	if err != nil {
		return err
	}
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open transcript: %w", err)
		}
		defer f.Close()
		mc.Logger = log.NewTextLogger(f)
	}
	sess, err := inwonet.NewSession("local", mc)
	if err != nil {
		return err
	}
	return inwonet.PlayLocal(ctx, sess, in, out)
}

func runServe(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":9000", "TCP address to listen on")
	seed := fs.Int64("seed", cfg.Seed, "shuffle seed (0 for random)")
	fs.Parse(args)

	mc, err := matchConfig(ctx, cfg, *seed, false)
	if err != nil {
		return err
	}
	srv := &inwonet.Server{
		Addr:       *addr,
		NewSession: inwonet.NewSessionFactory(mc),
		Logger:     logger(cfg),
	}
	return srv.Run(ctx)
}

func runJoin(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	fs.Parse(args)

	return inwonet.Connect(ctx, *addr, os.Stdin, os.Stdout)
}
