package main

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/cxsxrrrr/PokeMart/internal/audio"
	"github.com/cxsxrrrr/PokeMart/internal/carousel"
	"github.com/cxsxrrrr/PokeMart/internal/cart"
	"github.com/cxsxrrrr/PokeMart/internal/catalog"
	"github.com/cxsxrrrr/PokeMart/internal/health"
	"github.com/cxsxrrrr/PokeMart/internal/hero"
	"github.com/cxsxrrrr/PokeMart/internal/merch"
	"github.com/cxsxrrrr/PokeMart/internal/prefs"
	"github.com/cxsxrrrr/PokeMart/internal/storage"
	"github.com/cxsxrrrr/PokeMart/pkg/utils"
)

const addLabel = "Agregar al carrito"

type showcase struct {
	screen tcell.Screen
	cfg    utils.StoreConfig
	log    *zap.Logger

	board    *merch.Board
	car      *carousel.Carousel
	sched    *hero.TickerScheduler
	engine   *hero.Engine
	cart     *cart.Store
	feedback *cart.Feedback
	prefs    *prefs.Prefs
	probe    *health.Probe

	mu       sync.Mutex
	snap     merch.Snapshot
	popular  []merch.Offer
	deals    []merch.Offer
	visual   hero.Visual
	theme    prefs.Theme
	heroBox  box
	slots    []slot
	dealBox  []box
	overHero bool

	// onDeals moves the selection from the carousel to the deals row
	onDeals   bool
	dealFocus int
}

func newShowcase(cfg utils.StoreConfig, db *sql.DB, logger *zap.Logger, player *audio.Player) (*showcase, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	kv := storage.NewSQLite(db)
	src := catalog.SelectSource(cfg.DataURL, cfg.APIBaseURL, cfg.CatalogFile)
	cache := catalog.NewCache(src, catalog.NewNormalizer(cfg.ImageRoot, cfg.Placeholder), logger)

	sc := &showcase{
		screen: screen,
		cfg:    cfg,
		log:    logger,
		board:  merch.NewBoard(cache, merch.WithCounts(cfg.PopularCount, cfg.DealsCount), merch.WithLogger(logger)),
		car:    carousel.New(0, carousel.WithMaxVisible(cfg.MaxVisible)),
		sched:  hero.NewTickerScheduler(hero.DefaultFrameInterval),
		cart:   cart.NewStore(kv, logger, cfg.Placeholder),
		prefs:  prefs.New(kv),
		probe:  health.NewProbe(cfg.HealthURL(), logger),
		theme:  prefs.Light,
	}
	sc.feedback = cart.NewFeedback(func(bool) { sc.wake() })

	opts := []hero.Option{hero.WithLogger(logger), hero.WithReducedMotion(cfg.ReducedMotion)}
	if player != nil {
		opts = append(opts, hero.WithCue(player))
	}
	sc.engine = hero.NewEngine(sc.sched, hero.RendererFunc(sc.renderHero), opts...)

	sc.board.OnChange(sc.applySnapshot)
	return sc, nil
}

// applySnapshot prices both rows. Only the popular row feeds the carousel.
func (sc *showcase) applySnapshot(s merch.Snapshot) {
	sc.mu.Lock()
	sc.snap = s
	sc.popular = merch.PopularOffers(s.Popular)
	sc.deals = merch.DealOffers(s.Deals)
	sc.dealFocus = 0
	sc.onDeals = sc.onDeals && len(sc.deals) > 0
	sc.mu.Unlock()
	sc.car.Reset(len(s.Popular))
	sc.wake()
}

func (sc *showcase) renderHero(v hero.Visual) {
	sc.mu.Lock()
	sc.visual = v
	sc.mu.Unlock()
	sc.wake()
}

// wake asks the event loop for a redraw from any goroutine.
func (sc *showcase) wake() {
	_ = sc.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func (sc *showcase) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sc.cart.Load(ctx)
	if t, err := sc.prefs.Theme(ctx); err == nil {
		sc.theme = t
	}

	go func() {
		sc.probe.Run(ctx)
		sc.wake()
	}()
	go sc.board.Load(ctx, "")

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := sc.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !sc.handleEvent(ctx, ev) {
				return
			}
		case <-ticker.C:
		}
		sc.draw()
	}
}

func (sc *showcase) handleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return sc.handleKey(ctx, ev)
	case *tcell.EventMouse:
		sc.handleMouse(ev)
	case *tcell.EventResize:
		sc.screen.Sync()
		w, _ := sc.screen.Size()
		// narrow terminals get the flat layout
		sc.car.SetCompact(w < 80)
	}
	return true
}

func (sc *showcase) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		sc.move(-1)
	case tcell.KeyRight:
		sc.move(1)
	case tcell.KeyUp:
		sc.selectRow(false)
	case tcell.KeyDown:
		sc.selectRow(true)
	case tcell.KeyEnter:
		sc.engine.HandleKey("Enter")
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			sc.engine.HandleKey(" ")
		case 'a':
			sc.addFocused(ctx)
		case '+':
			sc.bumpFocused(ctx, 1)
		case '-':
			sc.bumpFocused(ctx, -1)
		case 'r':
			go sc.board.Load(ctx, "")
		case 't':
			sc.toggleTheme(ctx)
		}
	}
	return true
}

func (sc *showcase) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()

	sc.mu.Lock()
	hb := sc.heroBox
	slots := sc.slots
	deals := sc.dealBox
	wasOver := sc.overHero
	sc.overHero = hb.contains(x, y)
	over := sc.overHero
	sc.mu.Unlock()

	switch {
	case over:
		sc.engine.PointerMove(hero.PointerEvent{X: float64(x), Y: float64(y), Type: hero.Mouse}, hb.rect())
	case wasOver:
		sc.engine.PointerLeave()
	}

	if ev.Buttons()&tcell.Button1 == 0 {
		return
	}
	if over {
		sc.engine.Activate()
		return
	}
	if i, ok := boxAt(deals, x, y); ok {
		sc.mu.Lock()
		sc.onDeals = true
		sc.dealFocus = i
		sc.mu.Unlock()
		return
	}
	if s, ok := slotAt(slots, x, y); ok && sc.car.HitTest(s.Frame.Index) {
		sc.selectRow(false)
		sc.car.Advance(s.Frame.Offset)
	}
}

func (sc *showcase) selectRow(deals bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.onDeals = deals && len(sc.deals) > 0
}

// move steps the selection within the active row. The carousel wraps; the
// deals row stops at its ends.
func (sc *showcase) move(delta int) {
	sc.mu.Lock()
	if !sc.onDeals {
		sc.mu.Unlock()
		sc.car.Advance(delta)
		return
	}
	defer sc.mu.Unlock()
	sc.dealFocus = max(0, min(sc.dealFocus+delta, len(sc.deals)-1))
}

// focused returns the selected offer: the carousel focus or the highlighted
// deal.
func (sc *showcase) focused() (merch.Offer, bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.onDeals {
		if sc.dealFocus < 0 || sc.dealFocus >= len(sc.deals) {
			return merch.Offer{}, false
		}
		return sc.deals[sc.dealFocus], true
	}
	i := sc.car.Focus()
	if i < 0 || i >= len(sc.popular) {
		return merch.Offer{}, false
	}
	return sc.popular[i], true
}

func (sc *showcase) addFocused(ctx context.Context) {
	offer, ok := sc.focused()
	if !ok {
		return
	}
	if _, added := sc.cart.Add(ctx, offer.Card, offer.Price); added {
		sc.feedback.Trigger()
	}
}

func (sc *showcase) bumpFocused(ctx context.Context, delta int) {
	offer, ok := sc.focused()
	if !ok {
		return
	}
	sc.cart.SetQuantity(ctx, offer.Card.ID, delta)
}

func (sc *showcase) toggleTheme(ctx context.Context) {
	sc.mu.Lock()
	next := sc.theme.Toggle()
	sc.theme = next
	sc.mu.Unlock()
	if err := sc.prefs.SetTheme(ctx, next); err != nil {
		sc.log.Warn("theme not saved", zap.Error(err))
	}
}

func (sc *showcase) cleanup() {
	sc.engine.Close()
	sc.sched.Stop()
	sc.feedback.Close()
	sc.screen.Fini()
}

func (sc *showcase) styles() (base, accent, dim tcell.Style) {
	sc.mu.Lock()
	theme := sc.theme
	sc.mu.Unlock()

	if theme == prefs.Dark {
		base = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
		accent = base.Foreground(tcell.ColorOrange)
	} else {
		base = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
		accent = base.Foreground(tcell.ColorRed)
	}
	dim = base.Dim(true)
	return base, accent, dim
}

func (sc *showcase) draw() {
	s := sc.screen
	base, accent, dim := sc.styles()
	s.SetStyle(base)
	s.Clear()
	w, h := s.Size()

	sc.mu.Lock()
	theme := sc.theme
	visual := sc.visual
	snap := sc.snap
	popular := sc.popular
	deals := sc.deals
	onDeals := sc.onDeals
	dealFocus := sc.dealFocus
	sc.mu.Unlock()

	// status bar
	status := fmt.Sprintf(" PokeMart | backend: %s | tema: %s | carrito: %d (%s)",
		sc.probe.Status().Label(), theme, sc.cart.Count(), utils.FormatCurrency(sc.cart.Total()))
	drawText(s, 0, 0, w, accent.Reverse(true), padRight(status, w))

	// hero
	art := hero.ArtFor(theme)
	hb, back := heroFace(visual, w/2, 2+heroHeight/2+1)
	fill := '█'
	label := art.Alt
	if back {
		fill = '▒'
		label = ""
	}
	for y := hb.Y; y < hb.Y+hb.H; y++ {
		for x := hb.X; x < hb.X+hb.W; x++ {
			s.SetContent(x, y, fill, nil, accent)
		}
	}
	drawText(s, hb.X, hb.Y+hb.H/2, hb.W, accent.Reverse(true), truncate(label, hb.W))
	drawText(s, 2, 2, w-4, dim, "[enter/espacio/clic] rugir  [mouse] inclinar")
	drawText(s, 2, 3, w-4, dim, visual.CSS())

	// carousel
	rowY := 2 + heroHeight + 3
	frames := sc.car.Frames()
	slots := carouselSlots(frames, w/2, rowY, sc.car.Compact())
	for _, sl := range slots {
		if sl.Frame.Index >= len(popular) {
			continue
		}
		st := base
		switch {
		case sl.Frame.Center && !onDeals:
			st = accent.Reverse(true)
		case sl.Frame.Center:
			st = accent
		case sl.Frame.Opacity < 0.6:
			st = dim
		}
		drawOffer(s, sl.Box, st, popular[sl.Frame.Index])
	}

	// deals
	dealsY := rowY + slotHeight + 1
	drawText(s, 2, dealsY, w-4, dim, "Ofertas")
	dealBoxes := dealRow(len(deals), 2, dealsY+1, w-4)
	for i, b := range dealBoxes {
		st := base
		if onDeals && i == dealFocus {
			st = accent.Reverse(true)
		}
		drawOffer(s, b, st, deals[i])
	}

	// message or action line
	msgY := dealsY + slotHeight + 2
	switch snap.State {
	case merch.StateReady:
		if offer, ok := sc.focused(); ok {
			card := offer.Card
			line := fmt.Sprintf("%s %s  %s  [%s]  ←/→ navegar  ↑/↓ fila  +/- cantidad  t tema  r barajar  q salir",
				catalog.RaritySymbol(card.Rarity), card.Name, utils.FormatCurrency(offer.Price), sc.feedback.Label(addLabel))
			drawText(s, 2, msgY, w-4, base, line)
		}
	case merch.StateLoading:
		drawText(s, 2, msgY, w-4, dim, "Cargando catálogo...")
	default:
		drawText(s, 2, msgY, w-4, accent, snap.Message)
	}

	// cart lines
	for i, it := range sc.cart.Items() {
		y := msgY + 2 + i
		if y >= h {
			break
		}
		drawText(s, 2, y, w-4, base, fmt.Sprintf("%3d x %-28s %s", it.Quantity, truncate(it.Name, 28), utils.FormatCurrency(it.Subtotal())))
	}

	sc.mu.Lock()
	sc.heroBox = hb
	sc.slots = slots
	sc.dealBox = dealBoxes
	sc.mu.Unlock()

	s.Show()
}

func drawText(s tcell.Screen, x, y, maxW int, style tcell.Style, text string) {
	col := 0
	for _, r := range text {
		if col >= maxW {
			return
		}
		s.SetContent(x+col, y, r, nil, style)
		col++
	}
}

func drawOffer(s tcell.Screen, b box, style tcell.Style, o merch.Offer) {
	inner := b.W - 2
	price := utils.FormatCurrency(o.Price)
	if o.HasDiscount() {
		price = fmt.Sprintf("-%d%% %s", int(o.DiscountRate*100+0.5), price)
	}
	drawBox(s, b, style)
	drawText(s, b.X+1, b.Y+1, inner, style, truncate(o.Card.Name, inner))
	drawText(s, b.X+1, b.Y+2, inner, style, truncate(o.Card.Set.Name, inner))
	drawText(s, b.X+1, b.Y+3, inner, style, truncate(price, inner))
}

func drawBox(s tcell.Screen, b box, style tcell.Style) {
	for y := b.Y; y < b.Y+b.H; y++ {
		for x := b.X; x < b.X+b.W; x++ {
			r := ' '
			switch {
			case (y == b.Y || y == b.Y+b.H-1) && (x == b.X || x == b.X+b.W-1):
				r = '+'
			case y == b.Y || y == b.Y+b.H-1:
				r = '-'
			case x == b.X || x == b.X+b.W-1:
				r = '|'
			}
			s.SetContent(x, y, r, nil, style)
		}
	}
}

func padRight(s string, n int) string {
	for len([]rune(s)) < n {
		s += " "
	}
	return s
}
