package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packtrack/packtrack/internal/client/api"
	"github.com/packtrack/packtrack/internal/client/models"
	"github.com/packtrack/packtrack/internal/logging"
)

func TestPacking_ComputeOptimalPacking_RetainsResult(t *testing.T) {
	gw := &fakeGateway{handler: func(method, path string, body, out any) error {
		require.Equal(t, "POST /optimal-packing2", method+" "+path)
		req := body.(models.PackingRequest)
		assert.Equal(t, "p1", req.ProductID)
		assert.Equal(t, 40, req.Quantity)
		return respond(out, models.PackingResult{
			Success:           true,
			Message:           "packed",
			RemainingQuantity: 2,
		})
	}}
	s := NewPackingService(gw, logging.Nop())

	got, err := s.ComputeOptimalPacking(context.Background(), models.PackingRequest{ProductID: "p1", Quantity: 40})
	require.NoError(t, err)
	assert.Equal(t, 2, got.RemainingQuantity)

	// The same result stays readable until cleared.
	require.NotNil(t, s.Result())
	assert.Equal(t, "packed", s.Result().Message)
	assert.False(t, s.Loading())
}

func TestPacking_ComputeFailure_LeavesNoResult(t *testing.T) {
	gw := &fakeGateway{handler: func(method, path string, body, out any) error {
		return &api.StatusError{Code: 422, Message: "quantity must be positive"}
	}}
	s := NewPackingService(gw, logging.Nop())

	_, err := s.ComputeOptimalPacking(context.Background(), models.PackingRequest{ProductID: "p1"})
	require.EqualError(t, err, "quantity must be positive")
	assert.Nil(t, s.Result())
	assert.False(t, s.Loading())
}

func TestPacking_ClearResult(t *testing.T) {
	gw := &fakeGateway{handler: func(method, path string, body, out any) error {
		return respond(out, models.PackingResult{Success: true})
	}}
	s := NewPackingService(gw, logging.Nop())

	_, err := s.ComputeOptimalPacking(context.Background(), models.PackingRequest{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)
	require.NotNil(t, s.Result())

	s.ClearResult()
	assert.Nil(t, s.Result())
}

func TestPacking_CalculateShipping(t *testing.T) {
	gw := &fakeGateway{handler: func(method, path string, body, out any) error {
		require.Equal(t, "POST /calculate-shipping", method+" "+path)
		return respond(out, models.ShippingEstimate{Cost: 12.5, Currency: "USD", Carrier: "ups"})
	}}
	s := NewPackingService(gw, logging.Nop())

	est, err := s.CalculateShipping(context.Background(), models.ShippingRequest{ProductID: "p1", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 12.5, est.Cost)
	assert.Equal(t, "USD", est.Currency)
}

func TestPacking_CartonSizes(t *testing.T) {
	gw := &fakeGateway{handler: func(method, path string, body, out any) error {
		require.Equal(t, "GET /carton-sizes", method+" "+path)
		return respond(out, cartonSizesResponse{Cartons: []models.CartonSize{
			{Name: "small", Length: 20, Breadth: 15, Height: 10},
		}})
	}}
	s := NewPackingService(gw, logging.Nop())

	cartons, err := s.CartonSizes(context.Background())
	require.NoError(t, err)
	require.Len(t, cartons, 1)
	assert.Equal(t, "small", cartons[0].Name)
}

func TestVision_PredictDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "product.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpegdata"), 0o600))

	gw := &fakeGateway{handler: func(method, path string, body, out any) error {
		require.Equal(t, "UPLOAD /ai/predict-dimensions", method+" "+path)
		return respond(out, models.DimensionPrediction{
			Dimensions: models.Dimensions{Length: 10, Breadth: 5, Height: 2},
			Confidence: 0.93,
		})
	}}
	s := NewVisionService(gw, logging.Nop())

	pred, err := s.PredictDimensions(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 10.0, pred.Dimensions.Length)
	assert.Equal(t, 0.93, pred.Confidence)
}

func TestVision_PredictDimensions_MissingFile(t *testing.T) {
	s := NewVisionService(&fakeGateway{}, logging.Nop())

	_, err := s.PredictDimensions(context.Background(), filepath.Join(t.TempDir(), "nope.jpg"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open image")
}

func TestVision_PredictionHistory(t *testing.T) {
	gw := &fakeGateway{handler: func(method, path string, body, out any) error {
		require.Equal(t, "GET /ai/prediction-history", method+" "+path)
		return respond(out, predictionHistoryResponse{Predictions: []models.DimensionPrediction{
			{ID: "pr1"}, {ID: "pr2"},
		}})
	}}
	s := NewVisionService(gw, logging.Nop())

	preds, err := s.PredictionHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, preds, 2)
	assert.Equal(t, "pr1", preds[0].ID)
}
