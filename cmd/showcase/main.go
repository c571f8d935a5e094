package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/cxsxrrrr/PokeMart/internal/audio"
	"github.com/cxsxrrrr/PokeMart/internal/logging"
	"github.com/cxsxrrrr/PokeMart/pkg/database"
	"github.com/cxsxrrrr/PokeMart/pkg/utils"
)

func main() {
	cfg, err := utils.LoadStoreConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("showcase", flag.ExitOnError)
	dbPath := fs.String("db", database.DefaultConfig().Path, "local storage database")
	logPath := fs.String("log", "", "write logs to this file (logs are discarded otherwise)")
	mute := fs.Bool("mute", false, "disable the roar sound")
	reduced := fs.Bool("reduced-motion", cfg.ReducedMotion, "disable hero animations")
	_ = fs.Parse(os.Args[1:])
	cfg.ReducedMotion = *reduced

	// the terminal owns stdout and stderr while the UI runs
	logger := zap.NewNop()
	if *logPath != "" {
		if logger, err = logging.New(cfg.LogLevel, *logPath); err != nil {
			fmt.Fprintf(os.Stderr, "logger: %v\n", err)
			os.Exit(1)
		}
	}
	defer func() { _ = logger.Sync() }()

	db := database.MustOpen(database.Config{Path: *dbPath})
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		fmt.Fprintf(os.Stderr, "migrate storage: %v\n", err)
		os.Exit(1)
	}

	var player *audio.Player
	if !*mute {
		player = audio.NewPlayer(logger)
		if err := player.Initialize(); err != nil {
			// non-fatal, the showcase runs silent
			logger.Warn("audio unavailable", zap.Error(err))
			player = nil
		} else {
			cue := filepath.Join(cfg.PublicDir, filepath.FromSlash(strings.TrimPrefix(cfg.AudioCue, "/")))
			if err := player.LoadMP3(cue); err != nil {
				logger.Info("roar cue not loaded, using synthesized growl", zap.Error(err))
			}
			defer player.Close()
		}
	}

	sc, err := newShowcase(cfg, db, logger, player)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer sc.cleanup()

	sc.run(context.Background())
}
