package export

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

// CalendarEvent is one recurring calendar entry.
type CalendarEvent struct {
	UID     string
	Summary string
	Start   time.Time
	End     time.Time
	RRule   string
}

// ICSExporter renders events into an iCalendar document.
type ICSExporter struct{}

// NewICSExporter constructs an ICS exporter.
func NewICSExporter() *ICSExporter {
	return &ICSExporter{}
}

// Render serialises the events as a VCALENDAR.
func (e *ICSExporter) Render(name string, events []CalendarEvent) ([]byte, error) {
	if len(events) == 0 {
		return nil, fmt.Errorf("ics requires at least one event")
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//studentools//timetable//EN")
	if name != "" {
		cal.SetName(name)
	}

	now := time.Now().UTC()
	for _, ev := range events {
		vevent := cal.AddEvent(ev.UID)
		vevent.SetCreatedTime(now)
		vevent.SetDtStampTime(now)
		vevent.SetStartAt(ev.Start)
		vevent.SetEndAt(ev.End)
		vevent.SetSummary(ev.Summary)
		if ev.RRule != "" {
			vevent.AddRrule(ev.RRule)
		}
	}

	return []byte(cal.Serialize()), nil
}
