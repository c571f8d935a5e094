// Package prefs stores the visitor's theme choice.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cxsxrrrr/PokeMart/internal/storage"
)

const ThemeKey = "pokemart-theme"

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

var ErrInvalidTheme = errors.New("theme must be light or dark")

func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
	}
}

// Toggle flips between light and dark.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Prefs reads and writes the theme in local storage.
type Prefs struct {
	KV storage.KV
}

func New(kv storage.KV) *Prefs {
	return &Prefs{KV: kv}
}

// Theme returns the stored theme. Anything other than a stored "light" or
// "dark" reads as light.
func (p *Prefs) Theme(ctx context.Context) (Theme, error) {
	raw, err := p.KV.Get(ctx, ThemeKey)
	if errors.Is(err, storage.ErrNotFound) {
		return Light, nil
	}
	if err != nil {
		return Light, fmt.Errorf("read theme: %w", err)
	}
	switch Theme(raw) {
	case Light, Dark:
		return Theme(raw), nil
	default:
		return Light, nil
	}
}

func (p *Prefs) SetTheme(ctx context.Context, t Theme) error {
	if t != Light && t != Dark {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, string(t))
	}
	if err := p.KV.Set(ctx, ThemeKey, string(t)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}
