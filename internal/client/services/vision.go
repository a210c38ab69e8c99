package services

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/packtrack/packtrack/internal/client/models"
	"github.com/packtrack/packtrack/internal/logging"
)

// VisionService talks to the dimension-inference endpoints. The remote
// model is an opaque collaborator; nothing is cached.
type VisionService struct {
	gw  Gateway
	log logging.Logger
}

// NewVisionService wires the vision client over the gateway.
func NewVisionService(gw Gateway, log logging.Logger) *VisionService {
	return &VisionService{gw: gw, log: log}
}

// PredictDimensions uploads a product photo and returns the inferred
// dimensions.
func (s *VisionService) PredictDimensions(ctx context.Context, imagePath string) (*models.DimensionPrediction, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	var pred models.DimensionPrediction
	err = s.gw.Upload(ctx, "/ai/predict-dimensions", "image", filepath.Base(imagePath), f, nil, &pred)
	if err != nil {
		return nil, err
	}
	return &pred, nil
}

type predictionHistoryResponse struct {
	Predictions []models.DimensionPrediction `json:"predictions"`
}

// PredictionHistory lists past predictions for the account.
func (s *VisionService) PredictionHistory(ctx context.Context) ([]models.DimensionPrediction, error) {
	var resp predictionHistoryResponse
	if err := s.gw.Call(ctx, http.MethodGet, "/ai/prediction-history", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Predictions, nil
}
