package dto

import (
	"time"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
)

// UpsertWellnessRequest represents request to record a day's metrics
type UpsertWellnessRequest struct {
	EntryDate    string  `json:"entry_date" binding:"required"`
	Steps        int     `json:"steps" binding:"omitempty,min=0"`
	SleepMinutes int     `json:"sleep_minutes" binding:"omitempty,min=0,max=1440"`
	WaterMl      int     `json:"water_ml" binding:"omitempty,min=0"`
	Mood         string  `json:"mood,omitempty" binding:"omitempty,max=50"`
	Calories     float64 `json:"calories" binding:"omitempty,min=0"`
}

// WellnessEntryResponse represents a wellness entry in API responses
type WellnessEntryResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	EntryDate    string    `json:"entry_date"`
	Steps        int       `json:"steps"`
	SleepMinutes int       `json:"sleep_minutes"`
	WaterMl      int       `json:"water_ml"`
	Mood         string    `json:"mood,omitempty"`
	Calories     float64   `json:"calories"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FoodSearchRequest represents query parameters for food search
type FoodSearchRequest struct {
	Query string `form:"q" binding:"required,min=1,max=100"`
	Limit int    `form:"limit,omitempty" binding:"omitempty,min=1,max=50"`
}

// FoodItemResponse represents a food catalogue item
type FoodItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand,omitempty"`
	ServingSize string  `json:"serving_size,omitempty"`
	Calories    float64 `json:"calories"`
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatG        float64 `json:"fat_g"`
}

// WellnessEntryFromDomain converts domain WellnessEntry to response form
func WellnessEntryFromDomain(e *domain.WellnessEntry) *WellnessEntryResponse {
	return &WellnessEntryResponse{
		ID:           e.ID,
		UserID:       e.UserID,
		EntryDate:    e.EntryDate,
		Steps:        e.Steps,
		SleepMinutes: e.SleepMinutes,
		WaterMl:      e.WaterMl,
		Mood:         e.Mood,
		Calories:     e.Calories,
		UpdatedAt:    e.UpdatedAt,
	}
}

// FoodItemsFromDomain converts a slice of domain FoodItems
func FoodItemsFromDomain(items []domain.FoodItem) []*FoodItemResponse {
	out := make([]*FoodItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, &FoodItemResponse{
			ID:          it.ID,
			Name:        it.Name,
			Brand:       it.Brand,
			ServingSize: it.ServingSize,
			Calories:    it.Calories,
			ProteinG:    it.ProteinG,
			CarbsG:      it.CarbsG,
			FatG:        it.FatG,
		})
	}
	return out
}
