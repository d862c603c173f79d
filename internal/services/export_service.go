package services

import (
	"fmt"
	"strings"
	"time"
	"travelplanner/internal/models/trip_models"
	"travelplanner/pkg/utils"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

const (
	FormatText     = "txt"
	FormatCalendar = "ics"

	eventDuration = 2 * time.Hour
)

// Export is a rendered itinerary ready to be downloaded.
type Export struct {
	Filename    string
	ContentType string
	Body        []byte
}

type ExportServiceInterface interface {
	Export(itinerary *trip_models.Itinerary, format string) (*Export, error)
}

type ExportService struct {
	renderer ItineraryServiceInterface
	now      Clock
}

func NewExportService(renderer ItineraryServiceInterface, clock Clock) ExportServiceInterface {
	if clock == nil {
		clock = SystemClock()
	}
	return &ExportService{renderer: renderer, now: clock}
}

func (e *ExportService) Export(itinerary *trip_models.Itinerary, format string) (*Export, error) {
	if itinerary == nil {
		return nil, utils.ErrNoItinerary
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return &Export{
			Filename:    exportFilename(itinerary.Destination, FormatText),
			ContentType: "text/plain; charset=utf-8",
			Body:        []byte(e.renderer.Render(itinerary)),
		}, nil
	case FormatCalendar:
		return &Export{
			Filename:    exportFilename(itinerary.Destination, FormatCalendar),
			ContentType: "text/calendar; charset=utf-8",
			Body:        []byte(e.calendar(itinerary).Serialize()),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", utils.ErrUnsupportedFormat, format)
	}
}

func exportFilename(destination, ext string) string {
	name := strings.ToLower(strings.TrimSpace(destination))
	if name == "" || name == "your destination" {
		name = "travel"
	}
	return fmt.Sprintf("%s_itinerary.%s", name, ext)
}

var slotStarts = []struct {
	label string
	hour  int
}{
	{"Morning", 9},
	{"Afternoon", 14},
	{"Evening", 19},
}

// calendar emits one event per schedule slot.
func (e *ExportService) calendar(itinerary *trip_models.Itinerary) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//travelplanner//itinerary//EN")
	cal.SetName(fmt.Sprintf("%s %d-Day Itinerary", itinerary.Destination, itinerary.Days))

	stamp := e.now().UTC()
	loc := utils.LoadZone(itinerary.TimeZone)
	for _, day := range itinerary.Schedule {
		picks := []string{day.Morning, day.Afternoon, day.Evening}
		for i, slot := range slotStarts {
			start := utils.AtLocalHour(day.Date, slot.hour, loc)

			event := cal.AddEvent(uuid.NewString())
			event.SetDtStampTime(stamp)
			event.SetStartAt(start)
			event.SetEndAt(start.Add(eventDuration))
			event.SetSummary(picks[i])
			event.SetLocation(itinerary.Destination)
			description := fmt.Sprintf("Day %d %s", day.Day, strings.ToLower(slot.label))
			if w := day.Weather; w != nil {
				description += fmt.Sprintf(" - %.0f°C, %s", w.Temp, w.Conditions)
			}
			event.SetDescription(description)
		}
	}
	return cal
}
