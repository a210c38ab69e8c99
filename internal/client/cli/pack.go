package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/packtrack/packtrack/internal/client/models"
)

func (a *App) pack(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: pack <productId> <quantity>")
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity: %w", err)
	}

	fmt.Println("Computing optimal packing, this can take a while...")
	result, err := a.packing.ComputeOptimalPacking(ctx, models.PackingRequest{ProductID: args[0], Quantity: qty})
	if err != nil {
		return err
	}

	fmt.Println(result.Message)
	if result.RemainingQuantity > 0 {
		fmt.Printf("Could not pack %d unit(s).\n", result.RemainingQuantity)
	}
	if len(result.Summary) > 0 {
		fmt.Printf("Summary: %s\n", result.Summary)
	}
	return nil
}

func (a *App) shipping(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: shipping <productId> <quantity> [destination]")
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity: %w", err)
	}
	req := models.ShippingRequest{ProductID: args[0], Quantity: qty}
	if len(args) > 2 {
		req.Destination = args[2]
	}

	est, err := a.packing.CalculateShipping(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("Estimated cost: %.2f %s", est.Cost, est.Currency)
	if est.Carrier != "" {
		fmt.Printf(" via %s", est.Carrier)
	}
	fmt.Println()
	return nil
}

func (a *App) cartons(ctx context.Context) error {
	cartons, err := a.packing.CartonSizes(ctx)
	if err != nil {
		return err
	}
	if len(cartons) == 0 {
		fmt.Println("No standard cartons available.")
		return nil
	}
	for _, c := range cartons {
		fmt.Printf("%-20s %.0fx%.0fx%.0f\n", c.Name, c.Length, c.Breadth, c.Height)
	}
	return nil
}

func (a *App) predict(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: predict <image-path>")
	}

	pred, err := a.vision.PredictDimensions(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Predicted dimensions: %.1fx%.1fx%.1f cm", pred.Dimensions.Length, pred.Dimensions.Breadth, pred.Dimensions.Height)
	if pred.Confidence > 0 {
		fmt.Printf(" (confidence %.0f%%)", pred.Confidence*100)
	}
	fmt.Println()
	return nil
}

func (a *App) predictionHistory(ctx context.Context) error {
	preds, err := a.vision.PredictionHistory(ctx)
	if err != nil {
		return err
	}
	if len(preds) == 0 {
		fmt.Println("No predictions yet.")
		return nil
	}
	for _, p := range preds {
		fmt.Printf("%-12s %.1fx%.1fx%.1f cm  %s\n", p.ID,
			p.Dimensions.Length, p.Dimensions.Breadth, p.Dimensions.Height, p.CreatedAt)
	}
	return nil
}
