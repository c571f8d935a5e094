package catalog

import (
	"strings"

	"github.com/cxsxrrrr/PokeMart/pkg/models"
)

// Filter keeps cards whose name or id contains term, ignoring case.
// A blank term keeps everything.
func Filter(cards []models.NormalizedCard, term string) []models.NormalizedCard {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return cards
	}

	out := make([]models.NormalizedCard, 0, len(cards))
	for _, c := range cards {
		if strings.Contains(strings.ToLower(c.Name), term) || strings.Contains(strings.ToLower(c.ID), term) {
			out = append(out, c)
		}
	}
	return out
}

// FindByID returns the card with the given id.
func FindByID(cards []models.NormalizedCard, id string) (models.NormalizedCard, bool) {
	for _, c := range cards {
		if c.ID == id {
			return c, true
		}
	}
	return models.NormalizedCard{}, false
}
