package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/packtrack/packtrack/internal/client/models"
)

func (a *App) listBoxes(ctx context.Context) {
	go a.boxes.Fetch(context.WithoutCancel(ctx), false)

	boxes := a.boxes.List()
	if a.boxes.Loading() {
		fmt.Println("(refreshing in background...)")
	}
	if len(boxes) == 0 {
		fmt.Println("No boxes.")
		return
	}
	for _, b := range boxes {
		fmt.Printf("%-12s %-20s %.0fx%.0fx%.0f  qty=%-5d max=%.1fkg\n",
			b.ID, b.BoxName, b.Length, b.Breadth, b.Height, b.Quantity, b.MaxWeight)
	}
}

func (a *App) addBox(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Box name", os.Stdout)
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
	qty, err := GetInt(a.reader, "Quantity", os.Stdout)
	if err != nil {
		return err
	}
	maxWeight, err := GetFloat(a.reader, "Max weight (kg)", os.Stdout)
	if err != nil {
		return err
	}

	box := models.NewBox{
		BoxName:   name,
		Length:    length,
		Breadth:   breadth,
		Height:    height,
		Quantity:  qty,
		MaxWeight: maxWeight,
	}
	if err := a.boxes.Create(ctx, box); err != nil {
		return err
	}
	fmt.Println("Box created.")
	return nil
}

func (a *App) boxQuantity(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: boxqty <name> <delta>")
	}
	delta, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid delta: %w", err)
	}
	if err := a.boxes.UpdateQuantity(ctx, args[0], delta); err != nil {
		return err
	}
	fmt.Println("Quantity updated.")
	return nil
}

func (a *App) deleteBox(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: delbox <id>")
	}
	if err := a.boxes.Remove(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("Box deleted.")
	return nil
}
