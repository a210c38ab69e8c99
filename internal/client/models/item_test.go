package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDailyActivity_Normalized(t *testing.T) {
	tests := []struct {
		name     string
		in       DailyActivity
		wantZero bool
	}{
		{name: "full week kept", in: DailyActivity{
			Added: []int{1, 2, 3, 4, 5, 6, 7},
			Sold:  []int{7, 6, 5, 4, 3, 2, 1},
		}},
		{name: "short series replaced", in: DailyActivity{
			Added: []int{1, 2, 3},
			Sold:  []int{1, 2, 3},
		}, wantZero: true},
		{name: "long series replaced", in: DailyActivity{
			Added: []int{1, 2, 3, 4, 5, 6, 7, 8},
			Sold:  []int{1, 2, 3, 4, 5, 6, 7, 8},
		}, wantZero: true},
		{name: "nil series replaced", in: DailyActivity{}, wantZero: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalized()
			assert.Len(t, got.Added, 7)
			assert.Len(t, got.Sold, 7)
			if tt.wantZero {
				assert.Equal(t, make([]int, 7), got.Added)
				assert.Equal(t, make([]int, 7), got.Sold)
			} else {
				assert.Equal(t, tt.in.Added, got.Added)
				assert.Equal(t, tt.in.Sold, got.Sold)
			}
		})
	}
}

func TestDailyActivity_NormalizedMixedLengths(t *testing.T) {
	d := DailyActivity{
		Added: []int{1, 2, 3, 4, 5, 6, 7},
		Sold:  []int{1, 2},
	}

	got := d.Normalized()

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, got.Added)
	assert.Equal(t, make([]int, 7), got.Sold)
}

func TestWeekdayLabels_MatchBucketOrder(t *testing.T) {
	labels := WeekdayLabels()
	assert.Len(t, labels, 7)
	assert.Equal(t, "Monday", labels[0])
	assert.Equal(t, "Sunday", labels[6])
}
