package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/cxsxrrrr/PokeMart/internal/catalog"
	"github.com/cxsxrrrr/PokeMart/internal/logging"
	"github.com/cxsxrrrr/PokeMart/internal/storage"
	"github.com/cxsxrrrr/PokeMart/pkg/database"
	"github.com/cxsxrrrr/PokeMart/pkg/models"
	"github.com/cxsxrrrr/PokeMart/pkg/utils"
)

// app carries what every subcommand needs.
type app struct {
	cfg    utils.StoreConfig
	log    *zap.Logger
	dbPath string

	db *sql.DB
}

func main() {
	cfg, err := utils.LoadStoreConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	global := flag.NewFlagSet("pokemart", flag.ExitOnError)
	dbPath := global.String("db", database.DefaultConfig().Path, "local storage database")
	source := global.String("source", "", "catalog file or URL (defaults to the configured catalog)")
	level := global.String("log-level", cfg.LogLevel, "log level")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	logger, err := logging.New(*level)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if *source != "" {
		cfg.CatalogFile = *source
		cfg.DataURL = *source
	}

	a := &app{cfg: cfg, log: logger, dbPath: *dbPath}
	defer a.close()

	ctx := context.Background()
	cmd := args[0]
	sub := ""
	if len(args) > 1 {
		sub = args[1]
	}
	rest := []string{}
	if len(args) > 2 {
		rest = args[2:]
	}

	switch cmd {
	case "catalog":
		a.handleCatalog(ctx, sub, rest)
	case "merch":
		a.handleMerch(ctx, args[1:])
	case "cart":
		a.handleCart(ctx, sub, rest)
	case "theme":
		a.handleTheme(ctx, sub, rest)
	case "health":
		a.handleHealth(ctx, args[1:])
	case "register":
		a.handleRegister(args[1:])
	case "carousel":
		a.handleCarousel(ctx, args[1:])
	case "hero":
		a.handleHero(ctx, args[1:])
	default:
		printUsage()
		os.Exit(1)
	}
}

// kv opens the sqlite-backed local storage on first use.
func (a *app) kv() storage.KV {
	if a.db == nil {
		db := database.MustOpen(database.Config{Path: a.dbPath})
		if err := database.Migrate(db); err != nil {
			log.Fatalf("migrate storage: %v", err)
		}
		a.db = db
	}
	return storage.NewSQLite(a.db)
}

func (a *app) close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *app) catalogSource() catalog.Source {
	return sourceFor(a.cfg)
}

func sourceFor(cfg utils.StoreConfig) catalog.Source {
	return catalog.SelectSource(cfg.DataURL, cfg.APIBaseURL, cfg.CatalogFile)
}

func (a *app) loadCatalog(ctx context.Context) []models.NormalizedCard {
	cache := catalog.NewCache(a.catalogSource(), catalog.NewNormalizer(a.cfg.ImageRoot, a.cfg.Placeholder), a.log)
	cards, err := cache.Ensure(ctx)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}
	return cards
}

func printUsage() {
	fmt.Println("pokemart [-db path] [-source file|url] <command> [subcommand] [flags]")
	fmt.Println("commands:")
	fmt.Println("  catalog search|show|export")
	fmt.Println("  merch")
	fmt.Println("  cart list|add|inc|dec|remove|clear")
	fmt.Println("  theme get|set|toggle")
	fmt.Println("  health")
	fmt.Println("  register")
	fmt.Println("  carousel")
	fmt.Println("  hero")
}
