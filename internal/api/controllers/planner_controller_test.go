package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"travelplanner/internal/models/trip_models"
	"travelplanner/internal/services"
	"travelplanner/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubDialogue struct {
	turns     []string
	resets    int
	itinerary *trip_models.Itinerary
}

func (s *stubDialogue) HandleTurn(_ context.Context, utterance string) string {
	s.turns = append(s.turns, utterance)
	return "How many days will your trip be?"
}

func (s *stubDialogue) Reset() { s.resets++ }

func (s *stubDialogue) Profile() trip_models.TravelProfile {
	return trip_models.TravelProfile{Destination: "Paris"}
}

func (s *stubDialogue) History() []trip_models.Message {
	return []trip_models.Message{{Role: trip_models.RoleAssistant, Content: services.WelcomeMessage}}
}

func (s *stubDialogue) NextSlot() trip_models.Slot { return trip_models.SlotDuration }

func (s *stubDialogue) Itinerary() (*trip_models.Itinerary, error) {
	if s.itinerary == nil {
		return nil, utils.ErrNoItinerary
	}
	return s.itinerary, nil
}

func newTestRouter(dialogue services.DialogueServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	renderer := services.NewItineraryService(nil, nil, nil, logger)
	exporter := services.NewExportService(renderer, func() time.Time {
		return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	})
	pc := NewPlannerController(dialogue, exporter, logger)

	r := gin.New()
	r.POST("/api/chat", pc.ChatHandler)
	r.GET("/api/chat/history", pc.HistoryHandler)
	r.POST("/api/chat/reset", pc.ResetHandler)
	r.GET("/api/profile", pc.ProfileHandler)
	r.GET("/api/itinerary/export", pc.ExportHandler)
	return r
}

func serve(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChatHandler(t *testing.T) {
	dialogue := &stubDialogue{}
	r := newTestRouter(dialogue)

	w := serve(r, http.MethodPost, "/api/chat", `{"message":"I want to visit Paris"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Reply    string                    `json:"reply"`
			Profile  trip_models.TravelProfile `json:"profile"`
			NextSlot string                    `json:"next_slot"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "How many days will your trip be?", resp.Data.Reply)
	assert.Equal(t, "Paris", resp.Data.Profile.Destination)
	assert.Equal(t, "duration", resp.Data.NextSlot)
	assert.Equal(t, []string{"I want to visit Paris"}, dialogue.turns)
}

func TestChatHandlerRejectsBadInput(t *testing.T) {
	dialogue := &stubDialogue{}
	r := newTestRouter(dialogue)

	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodPost, "/api/chat", `{`).Code)

	w := serve(r, http.MethodPost, "/api/chat", `{"message":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please provide a valid travel request")
	assert.Empty(t, dialogue.turns)
}

func TestHistoryProfileAndReset(t *testing.T) {
	dialogue := &stubDialogue{}
	r := newTestRouter(dialogue)

	w := serve(r, http.MethodGet, "/api/chat/history", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome to your AI Travel Planner")

	w = serve(r, http.MethodGet, "/api/profile", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"destination":"Paris"`)

	w = serve(r, http.MethodPost, "/api/chat/reset", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, dialogue.resets)
}

func TestExportHandler(t *testing.T) {
	dialogue := &stubDialogue{}
	r := newTestRouter(dialogue)

	w := serve(r, http.MethodGet, "/api/itinerary/export", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	dialogue.itinerary = &trip_models.Itinerary{
		Destination: "Paris",
		Days:        1,
		Schedule: []trip_models.DayPlan{{
			Day: 1, Date: time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC),
			Morning: "Louvre", Afternoon: "Seine cruise", Evening: "Night walking tour",
		}},
	}

	w = serve(r, http.MethodGet, "/api/itinerary/export?format=ics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="paris_itinerary.ics"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, 3, strings.Count(w.Body.String(), "BEGIN:VEVENT"))

	w = serve(r, http.MethodGet, "/api/itinerary/export?format=txt", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "# ✈️ Paris 1-Day Itinerary")

	w = serve(r, http.MethodGet, "/api/itinerary/export?format=pdf", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
