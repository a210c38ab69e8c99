// Package models defines client-side data models used by the PackTrack CLI.
package models

// Dimensions describes the physical size of an item in centimeters.
type Dimensions struct {
	Length  float64 `json:"length"`
	Breadth float64 `json:"breadth"`
	Height  float64 `json:"height"`
}

// Item is a single inventory position as returned by the server.
// Weight is stored in grams, Price in the account currency.
type Item struct {
	ID          string     `json:"id"`
	ProductName string     `json:"productName"`
	Quantity    int        `json:"quantity"`
	Weight      float64    `json:"weight"`
	Price       float64    `json:"price"`
	Dimensions  Dimensions `json:"dimensions"`
	Category    string     `json:"category,omitempty"`
	Brand       string     `json:"brand,omitempty"`
}

// NewItem carries the fields of an item that has not been assigned
// a server id yet. Used for create requests.
type NewItem struct {
	ProductName string     `json:"productName"`
	Quantity    int        `json:"quantity"`
	Weight      float64    `json:"weight"`
	Price       float64    `json:"price"`
	Dimensions  Dimensions `json:"dimensions"`
	Category    string     `json:"category,omitempty"`
	Brand       string     `json:"brand,omitempty"`
}

// activityWeekLen is the number of buckets in a daily activity series,
// one per weekday starting from Monday.
const activityWeekLen = 7

// DailyActivity holds two parallel per-weekday series returned alongside
// the item collection: quantity added and quantity sold per day.
type DailyActivity struct {
	Added []int `json:"added"`
	Sold  []int `json:"sold"`
}

// Normalized returns a copy where each series is guaranteed to contain
// exactly seven buckets. A series of any other length is treated as absent
// and replaced with a zero-filled week.
func (d DailyActivity) Normalized() DailyActivity {
	out := DailyActivity{Added: d.Added, Sold: d.Sold}
	if len(out.Added) != activityWeekLen {
		out.Added = make([]int, activityWeekLen)
	}
	if len(out.Sold) != activityWeekLen {
		out.Sold = make([]int, activityWeekLen)
	}
	return out
}

// WeekdayLabels returns the labels matching DailyActivity bucket order.
func WeekdayLabels() []string {
	return []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
}
