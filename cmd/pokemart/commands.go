package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/cxsxrrrr/PokeMart/internal/account"
	"github.com/cxsxrrrr/PokeMart/internal/carousel"
	"github.com/cxsxrrrr/PokeMart/internal/catalog"
	"github.com/cxsxrrrr/PokeMart/internal/health"
	"github.com/cxsxrrrr/PokeMart/internal/hero"
	"github.com/cxsxrrrr/PokeMart/internal/merch"
	"github.com/cxsxrrrr/PokeMart/internal/prefs"
	"github.com/cxsxrrrr/PokeMart/pkg/utils"
)

func (a *app) handleMerch(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("merch", flag.ExitOnError)
	query := fs.String("q", "", "search term")
	popular := fs.Int("popular", a.cfg.PopularCount, "popular row size")
	deals := fs.Int("deals", a.cfg.DealsCount, "deals row size")
	_ = fs.Parse(args)

	cache := catalog.NewCache(a.catalogSource(), catalog.NewNormalizer(a.cfg.ImageRoot, a.cfg.Placeholder), a.log)
	board := merch.NewBoard(cache, merch.WithCounts(*popular, *deals), merch.WithLogger(a.log))
	snap := board.Load(ctx, *query)

	if snap.State != merch.StateReady {
		fmt.Printf("[%s] %s\n", snap.State, snap.Message)
		return
	}

	fmt.Println("Populares")
	for _, o := range merch.PopularOffers(snap.Popular) {
		fmt.Printf("  %-14s %-28s %s\n", o.Card.ID, o.Card.Name, utils.FormatCurrency(o.Price))
	}
	fmt.Println("Ofertas")
	for _, o := range merch.DealOffers(snap.Deals) {
		if o.HasDiscount() {
			fmt.Printf("  %-14s %-28s %s (antes %s, -%.0f%%)\n",
				o.Card.ID, o.Card.Name, utils.FormatCurrency(o.Price), utils.FormatCurrency(o.BasePrice), o.DiscountRate*100)
			continue
		}
		fmt.Printf("  %-14s %-28s %s\n", o.Card.ID, o.Card.Name, utils.FormatCurrency(o.Price))
	}
}

func (a *app) handleTheme(ctx context.Context, sub string, args []string) {
	p := prefs.New(a.kv())
	switch sub {
	case "get", "":
		t, err := p.Theme(ctx)
		if err != nil {
			log.Fatalf("theme: %v", err)
		}
		fmt.Println(t)
	case "set":
		fs := flag.NewFlagSet("theme set", flag.ExitOnError)
		value := fs.String("value", "", "light or dark")
		_ = fs.Parse(args)
		t, err := prefs.ParseTheme(*value)
		if err != nil {
			log.Fatalf("theme: %v", err)
		}
		if err := p.SetTheme(ctx, t); err != nil {
			log.Fatalf("theme: %v", err)
		}
		fmt.Println(t)
	case "toggle":
		t, err := p.Theme(ctx)
		if err != nil {
			log.Fatalf("theme: %v", err)
		}
		if err := p.SetTheme(ctx, t.Toggle()); err != nil {
			log.Fatalf("theme: %v", err)
		}
		fmt.Println(t.Toggle())
	default:
		log.Fatal("usage: pokemart theme <get|set|toggle>")
	}
}

func (a *app) handleHealth(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("health", flag.ExitOnError)
	api := fs.String("api", a.cfg.APIBaseURL, "backend base URL")
	timeout := fs.Duration("timeout", 5*time.Second, "probe timeout")
	_ = fs.Parse(args)

	cfg := a.cfg
	cfg.APIBaseURL = *api
	probe := health.NewProbe(cfg.HealthURL(), a.log)

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()
	fmt.Println(probe.Run(ctx).Label())
}

func (a *app) handleRegister(args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	_ = fs.Parse(args)

	reg, err := account.Register(account.Request{
		FirstName: *first,
		LastName:  *last,
		Email:     *email,
		Password:  *password,
	}, a.log)
	if errors.Is(err, account.ErrInvalidEmail) {
		log.Fatalf("correo inválido: %q", *email)
	}
	if err != nil {
		log.Fatalf("register: %v", err)
	}
	fmt.Printf("✅ ¡Bienvenido, %s! (%s)\n", reg.Name, reg.ID)
}

func (a *app) handleCarousel(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("carousel", flag.ExitOnError)
	total := fs.Int("total", 0, "card count (defaults to the catalog size)")
	focus := fs.Int("focus", 0, "steps to advance before printing")
	maxVisible := fs.Int("max-visible", a.cfg.MaxVisible, "cards shown around the focus")
	compact := fs.Bool("compact", false, "narrow layout")
	_ = fs.Parse(args)

	n := *total
	if n <= 0 {
		n = len(a.loadCatalog(ctx))
	}
	c := carousel.New(n, carousel.WithMaxVisible(*maxVisible))
	c.Advance(*focus)
	c.SetCompact(*compact)

	for _, f := range c.Frames() {
		fmt.Printf("%3d %+3d %-7s z=%-3d o=%.2f %s\n",
			f.Index, f.Offset, f.Visibility(), f.ZIndex, f.Opacity, f.Transform.CSS())
	}
}

// handleHero replays one activation at 60fps and prints each rendered frame.
func (a *app) handleHero(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("hero", flag.ExitOnError)
	interval := fs.Duration("frame", hero.DefaultFrameInterval, "frame interval")
	_ = fs.Parse(args)

	theme, err := prefs.New(a.kv()).Theme(ctx)
	if err != nil {
		a.log.Warn("theme unavailable, using light")
	}
	art := hero.ArtFor(theme)
	fmt.Printf("%s (%s)\n", art.Alt, art.Front)

	sched := hero.NewManualScheduler(time.Time{})
	start := sched.Now()
	engine := hero.NewEngine(sched, hero.RendererFunc(func(v hero.Visual) {
		fmt.Printf("%6dms %s\n", sched.Now().Sub(start).Milliseconds(), v.CSS())
	}), hero.WithLogger(a.log), hero.WithReducedMotion(a.cfg.ReducedMotion), hero.WithCue(hero.CueFunc(func() error {
		fmt.Println("        ¡ROAR!")
		return nil
	})))
	defer engine.Close()

	engine.Activate()
	sched.Run(*interval, 5*time.Second)
}
