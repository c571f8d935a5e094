package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cxsxrrrr/PokeMart/internal/cart"
	"github.com/cxsxrrrr/PokeMart/internal/catalog"
	"github.com/cxsxrrrr/PokeMart/pkg/utils"
)

func (a *app) handleCart(ctx context.Context, sub string, args []string) {
	store := cart.NewStore(a.kv(), a.log, a.cfg.Placeholder)
	store.Load(ctx)

	idFlag := func(name string) string {
		fs := flag.NewFlagSet("cart "+name, flag.ExitOnError)
		id := fs.String("id", "", "card id")
		_ = fs.Parse(args)
		if *id == "" {
			log.Fatal("card id is required")
		}
		return *id
	}

	switch sub {
	case "list", "":
		printCart(os.Stdout, store)
	case "add":
		fs := flag.NewFlagSet("cart add", flag.ExitOnError)
		id := fs.String("id", "", "card id")
		price := fs.Float64("price", 0, "unit price override")
		_ = fs.Parse(args)
		if *id == "" {
			log.Fatal("card id is required")
		}
		card, ok := catalog.FindByID(a.loadCatalog(ctx), *id)
		if !ok {
			log.Fatalf("card %q not found", *id)
		}
		unit := *price
		if unit <= 0 {
			unit = catalog.DisplayPrice(card)
		}
		item, _ := store.Add(ctx, card, unit)
		fmt.Printf("%s %s x%d\n", cart.AddedLabel, item.Name, item.Quantity)
	case "inc":
		store.SetQuantity(ctx, idFlag("inc"), 1)
		printCart(os.Stdout, store)
	case "dec":
		store.SetQuantity(ctx, idFlag("dec"), -1)
		printCart(os.Stdout, store)
	case "remove":
		store.Remove(ctx, idFlag("remove"))
		printCart(os.Stdout, store)
	case "clear":
		store.Clear(ctx)
		fmt.Println("cart cleared")
	default:
		log.Fatal("usage: pokemart cart <list|add|inc|dec|remove|clear>")
	}
}

func printCart(w io.Writer, store *cart.Store) {
	items := store.Items()
	if len(items) == 0 {
		fmt.Fprintln(w, cart.EmptyMessage)
		return
	}
	for _, it := range items {
		fmt.Fprintf(w, "%-14s %-28s %3d x %12s = %12s\n",
			it.ID, it.Name, it.Quantity, utils.FormatCurrency(it.Price), utils.FormatCurrency(it.Subtotal()))
	}
	fmt.Fprintf(w, "%d item(s), total %s\n", store.Count(), utils.FormatCurrency(store.Total()))
}
