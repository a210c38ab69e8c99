package models

import "encoding/json"

// PackingRequest asks the server to compute an optimal packing layout
// for a quantity of one product.
type PackingRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// PackingResult is the server's answer to an optimal-packing computation.
// The nested sections are kept opaque: their shape is owned by the packing
// engine and the client only renders them.
type PackingResult struct {
	Success           bool              `json:"success"`
	Message           string            `json:"message"`
	ProductInfo       json.RawMessage   `json:"productInfo,omitempty"`
	UnpackedProducts  []json.RawMessage `json:"unpackedProducts,omitempty"`
	RemainingQuantity int               `json:"remainingQuantity"`
	Summary           json.RawMessage   `json:"summary,omitempty"`
	Analytics         json.RawMessage   `json:"analytics,omitempty"`
	Metadata          json.RawMessage   `json:"metadata,omitempty"`
}

// ShippingRequest asks for a shipping cost estimate.
type ShippingRequest struct {
	ProductID   string  `json:"productId"`
	Quantity    int     `json:"quantity"`
	Destination string  `json:"destination,omitempty"`
	Weight      float64 `json:"weight,omitempty"`
}

// ShippingEstimate is the computed shipping cost breakdown.
type ShippingEstimate struct {
	Cost      float64         `json:"cost"`
	Currency  string          `json:"currency"`
	Carrier   string          `json:"carrier,omitempty"`
	Breakdown json.RawMessage `json:"breakdown,omitempty"`
}

// CartonSize is a standard carton offered by the packing engine.
type CartonSize struct {
	Name    string  `json:"name"`
	Length  float64 `json:"length"`
	Breadth float64 `json:"breadth"`
	Height  float64 `json:"height"`
}

// DimensionPrediction is the result of running dimension inference
// over an uploaded product photo.
type DimensionPrediction struct {
	ID         string     `json:"id,omitempty"`
	Dimensions Dimensions `json:"dimensions"`
	Weight     float64    `json:"weight,omitempty"`
	Confidence float64    `json:"confidence,omitempty"`
	CreatedAt  string     `json:"createdAt,omitempty"`
}
