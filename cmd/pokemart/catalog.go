package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cxsxrrrr/PokeMart/internal/catalog"
	"github.com/cxsxrrrr/PokeMart/pkg/models"
	"github.com/cxsxrrrr/PokeMart/pkg/utils"
)

func (a *app) handleCatalog(ctx context.Context, sub string, args []string) {
	switch sub {
	case "search":
		fs := flag.NewFlagSet("catalog search", flag.ExitOnError)
		query := fs.String("q", "", "name or id fragment")
		limit := fs.Int("limit", 20, "max results")
		asJSON := fs.Bool("json", false, "print JSON")
		_ = fs.Parse(args)

		matches := catalog.Filter(a.loadCatalog(ctx), *query)
		if *limit > 0 && len(matches) > *limit {
			matches = matches[:*limit]
		}
		if *asJSON {
			printJSON(matches)
			return
		}
		for _, c := range matches {
			fmt.Println(cardLine(c))
		}
		fmt.Printf("%d card(s)\n", len(matches))
	case "show":
		fs := flag.NewFlagSet("catalog show", flag.ExitOnError)
		id := fs.String("id", "", "card id")
		_ = fs.Parse(args)
		if *id == "" {
			log.Fatal("card id is required")
		}
		card, ok := catalog.FindByID(a.loadCatalog(ctx), *id)
		if !ok {
			log.Fatalf("card %q not found", *id)
		}
		printJSON(card)
	case "export":
		format := "json"
		if len(args) > 0 {
			format, args = args[0], args[1:]
		}
		fs := flag.NewFlagSet("catalog export", flag.ExitOnError)
		out := fs.String("out", "data/cards."+format, "output path")
		_ = fs.Parse(args)

		cards := a.loadCatalog(ctx)
		var err error
		switch format {
		case "json":
			err = writeJSONFile(*out, cards)
		case "csv":
			err = writeCSVFile(*out, cards)
		default:
			log.Fatal("usage: pokemart catalog export <json|csv> [-out path]")
		}
		if err != nil {
			log.Fatalf("export %s failed: %v", format, err)
		}
		log.Printf("✅ exported %d cards to %s", len(cards), *out)
	default:
		log.Fatal("usage: pokemart catalog <search|show|export>")
	}
}

func cardLine(c models.NormalizedCard) string {
	return fmt.Sprintf("%-14s %-28s %-24s %s %s",
		c.ID, c.Name, c.Set.Name, catalog.RaritySymbol(c.Rarity), utils.FormatCurrency(c.Price))
}

func writeJSONFile(path string, cards []models.NormalizedCard) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cards, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func writeCSVFile(path string, cards []models.NormalizedCard) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeCSV(file, cards)
}

func writeCSV(w io.Writer, cards []models.NormalizedCard) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "name", "set", "rarity", "price", "image"}); err != nil {
		return err
	}
	for _, c := range cards {
		if err := writer.Write([]string{
			c.ID,
			c.Name,
			c.Set.Name,
			c.Rarity,
			strconv.FormatFloat(c.Price, 'f', 2, 64),
			c.PrimaryImage(),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("encode output: %v", err)
	}
	fmt.Println(string(b))
}
