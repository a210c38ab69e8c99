package models

// Box is a shipping box type available to the account.
// Side lengths are in centimeters, MaxWeight in kilograms.
type Box struct {
	ID        string  `json:"id"`
	BoxName   string  `json:"boxName"`
	Length    float64 `json:"length"`
	Breadth   float64 `json:"breadth"`
	Height    float64 `json:"height"`
	Quantity  int     `json:"quantity"`
	MaxWeight float64 `json:"maxWeight"`
}

// NewBox carries the fields of a box that has not been assigned
// a server id yet. Used for create requests.
type NewBox struct {
	BoxName   string  `json:"boxName"`
	Length    float64 `json:"length"`
	Breadth   float64 `json:"breadth"`
	Height    float64 `json:"height"`
	Quantity  int     `json:"quantity"`
	MaxWeight float64 `json:"maxWeight"`
}
