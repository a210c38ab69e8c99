package services

import (
	"context"
	"net/http"
	"sync"

	"github.com/packtrack/packtrack/internal/client/models"
	"github.com/packtrack/packtrack/internal/logging"
)

// PackingService is a thin pass-through to the server's packing engine.
// Results are one-shot computations tied to a single request: nothing is
// cached or persisted, and the held result is explicitly clearable.
type PackingService struct {
	gw  Gateway
	log logging.Logger

	mu      sync.Mutex
	loading bool
	result  *models.PackingResult
}

// NewPackingService wires the packing client over the gateway.
func NewPackingService(gw Gateway, log logging.Logger) *PackingService {
	return &PackingService{gw: gw, log: log}
}

// ComputeOptimalPacking runs the long-running packing computation. The
// result is both returned and retained until ClearResult. No client-side
// timeout is enforced beyond the gateway's transport settings.
func (s *PackingService) ComputeOptimalPacking(ctx context.Context, req models.PackingRequest) (*models.PackingResult, error) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	var result models.PackingResult
	err := s.gw.Call(ctx, http.MethodPost, "/optimal-packing2", req, &result)

	s.mu.Lock()
	s.loading = false
	if err == nil {
		s.result = &result
	}
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Loading reports whether a computation is in flight.
func (s *PackingService) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Result returns the last computed packing layout, nil when none is held.
func (s *PackingService) Result() *models.PackingResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// ClearResult drops the held result.
func (s *PackingService) ClearResult() {
	s.mu.Lock()
	s.result = nil
	s.mu.Unlock()
}

// CalculateShipping asks for a shipping cost estimate.
func (s *PackingService) CalculateShipping(ctx context.Context, req models.ShippingRequest) (*models.ShippingEstimate, error) {
	var est models.ShippingEstimate
	if err := s.gw.Call(ctx, http.MethodPost, "/calculate-shipping", req, &est); err != nil {
		return nil, err
	}
	return &est, nil
}

type cartonSizesResponse struct {
	Cartons []models.CartonSize `json:"cartons"`
}

// CartonSizes lists the standard cartons offered by the packing engine.
func (s *PackingService) CartonSizes(ctx context.Context) ([]models.CartonSize, error) {
	var resp cartonSizesResponse
	if err := s.gw.Call(ctx, http.MethodGet, "/carton-sizes", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Cartons, nil
}
