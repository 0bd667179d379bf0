package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/studentools/studentools-api/internal/dto"
	appErrors "github.com/studentools/studentools-api/pkg/errors"
)

func sampleProposal() Proposal {
	return Proposal{
		ID:          "11111111-2222-3333-4444-555555555555",
		CreatedAt:   time.Now().UTC(),
		Days:        []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		SlotMinutes: 60,
		WindowStart: 8 * 60,
		WindowEnd:   14 * 60,
		Entries: []dto.TimetableEntry{
			{CourseName: "Math", Day: "Monday", StartTime: "08:00", EndTime: "10:00", Color: "#3b82f6"},
			{CourseName: "Physics", Day: "Tuesday", StartTime: "09:00", EndTime: "11:00", Color: "#ef4444"},
		},
		Stats: dto.TimetableStats{Score: 8, Backtracks: 1},
	}
}

func TestExportRenderCSV(t *testing.T) {
	svc := NewExportService(nil, nil, nil, nil, nil)

	file, err := svc.Render(sampleProposal(), FormatCSV)
	require.NoError(t, err)
	require.Equal(t, "text/csv", file.ContentType)
	require.Equal(t, "timetable_11111111.csv", file.Filename)

	content := string(file.Content)
	require.Contains(t, content, "Day,Course,Start,End")
	require.Contains(t, content, "Monday,Math,08:00,10:00")
	require.Contains(t, content, "Tuesday,Physics,09:00,11:00")
}

func TestExportRenderPDF(t *testing.T) {
	svc := NewExportService(nil, nil, nil, nil, nil)

	file, err := svc.Render(sampleProposal(), FormatPDF)
	require.NoError(t, err)
	require.Equal(t, "application/pdf", file.ContentType)
	require.True(t, len(file.Content) > 4)
	require.Equal(t, "%PDF", string(file.Content[:4]))
}

func TestExportRenderICS(t *testing.T) {
	svc := NewExportService(nil, nil, nil, nil, nil)
	// Pin "now" so anchoring is reproducible: a Wednesday.
	svc.now = func() time.Time {
		return time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
	}

	file, err := svc.Render(sampleProposal(), FormatICS)
	require.NoError(t, err)
	require.Equal(t, "text/calendar", file.ContentType)

	content := string(file.Content)
	require.Contains(t, content, "BEGIN:VCALENDAR")
	require.Contains(t, content, "SUMMARY:Math")
	require.Contains(t, content, "SUMMARY:Physics")
	require.Contains(t, content, "RRULE:FREQ=WEEKLY;COUNT=16")
	// Monday 08:00 after Wednesday Jan 10 is Jan 15.
	require.Contains(t, content, "20240115T080000Z")
}

func TestExportRenderPNG(t *testing.T) {
	svc := NewExportService(nil, nil, nil, nil, nil)

	file, err := svc.Render(sampleProposal(), FormatPNG)
	require.NoError(t, err)
	require.Equal(t, "image/png", file.ContentType)
	require.True(t, len(file.Content) > 8)
	require.Equal(t, "\x89PNG", string(file.Content[:4]))
}

func TestExportRenderUnsupportedFormat(t *testing.T) {
	svc := NewExportService(nil, nil, nil, nil, nil)

	_, err := svc.Render(sampleProposal(), "docx")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestNextOccurrence(t *testing.T) {
	// Wednesday noon.
	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

	monday := nextOccurrence(now, time.Monday, 8*60)
	require.Equal(t, time.Monday, monday.Weekday())
	require.Equal(t, 15, monday.Day())

	// Same day, earlier clock rolls over a week.
	wednesdayEarly := nextOccurrence(now, time.Wednesday, 8*60)
	require.Equal(t, 17, wednesdayEarly.Day())

	// Same day, later clock stays today.
	wednesdayLate := nextOccurrence(now, time.Wednesday, 15*60)
	require.Equal(t, 10, wednesdayLate.Day())
}
