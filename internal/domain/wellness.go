package domain

import "time"

// WellnessEntry is a per-user, per-day log of health metrics shared
// with the partner
type WellnessEntry struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	CoupleID string `json:"couple_id"`

	// EntryDate is a date-only value in the user's timezone,
	// stored as yyyy-mm-dd.
	EntryDate string `json:"entry_date"`

	Steps        int     `json:"steps"`
	SleepMinutes int     `json:"sleep_minutes"`
	WaterMl      int     `json:"water_ml"`
	Mood         string  `json:"mood,omitempty"`
	Calories     float64 `json:"calories"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FoodItem is a catalogue entry used for calorie logging
type FoodItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand,omitempty"`
	ServingSize string  `json:"serving_size,omitempty"`
	Calories    float64 `json:"calories"`
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatG        float64 `json:"fat_g"`
}
