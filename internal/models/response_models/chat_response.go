package response_models

import "travelplanner/internal/models/trip_models"

type ChatResponse struct {
	Reply    string                    `json:"reply"`
	Profile  trip_models.TravelProfile `json:"profile"`
	NextSlot trip_models.Slot          `json:"next_slot"`
}

type HistoryResponse struct {
	Messages []trip_models.Message `json:"messages"`
}
