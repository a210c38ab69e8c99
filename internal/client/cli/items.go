package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/packtrack/packtrack/internal/client/models"
)

// listItems prints the held collection immediately and kicks off a
// background refresh when the cache is stale. Staleness never blocks the
// read; the loading note is the only visible sign of the refresh.
func (a *App) listItems(ctx context.Context) {
	go a.items.Fetch(context.WithoutCancel(ctx), false)

	items := a.items.List()
	if a.items.Loading() {
		fmt.Println("(refreshing in background...)")
	}
	if len(items) == 0 {
		fmt.Println("No items.")
		return
	}
	for _, it := range items {
		fmt.Printf("%-12s %-24s qty=%-5d %.0fg  %.2f  %.0fx%.0fx%.0f\n",
			it.ID, it.ProductName, it.Quantity, it.Weight, it.Price,
			it.Dimensions.Length, it.Dimensions.Breadth, it.Dimensions.Height)
	}
}

func (a *App) addItem(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Product name", os.Stdout)
	if err != nil {
		return err
	}
	qty, err := GetInt(a.reader, "Quantity", os.Stdout)
	if err != nil {
		return err
	}
	weight, err := GetFloat(a.reader, "Weight (g)", os.Stdout)
	if err != nil {
		return err
	}
	price, err := GetFloat(a.reader, "Price", os.Stdout)
	if err != nil {
		return err
	}
	length, err := GetFloat(a.reader, "Length (cm)", os.Stdout)
	if err != nil {
		return err
	}
	breadth, err := GetFloat(a.reader, "Breadth (cm)", os.Stdout)
	if err != nil {
		return err
	}
	height, err := GetFloat(a.reader, "Height (cm)", os.Stdout)
	if err != nil {
		return err
	}

	item := models.NewItem{
		ProductName: name,
		Quantity:    qty,
		Weight:      weight,
		Price:       price,
		Dimensions:  models.Dimensions{Length: length, Breadth: breadth, Height: height},
	}
	if err := a.items.Create(ctx, item); err != nil {
		return err
	}
	fmt.Println("Item created.")
	return nil
}

func (a *App) deleteItem(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: delitem <id>")
	}
	if err := a.items.Remove(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("Item deleted.")
	return nil
}

func (a *App) showActivity() {
	act := a.items.Activity()
	labels := models.WeekdayLabels()
	fmt.Println("Day        Added  Sold")
	for i, label := range labels {
		fmt.Printf("%-10s %5d %5d\n", label, act.Added[i], act.Sold[i])
	}
}
