package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studentools/studentools-api/pkg/export"
	appErrors "github.com/studentools/studentools-api/pkg/errors"
)

const (
	// FormatCSV and friends are the accepted export formats.
	FormatCSV = "csv"
	FormatPDF = "pdf"
	FormatICS = "ics"
	FormatPNG = "png"
)

// icsRecurrence repeats each session weekly for one semester.
const icsRecurrence = "FREQ=WEEKLY;COUNT=16"

var weekdayNames = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title, subtitle string) ([]byte, error)
}

type icsRenderer interface {
	Render(name string, events []export.CalendarEvent) ([]byte, error)
}

type pngRenderer interface {
	Render(grid export.Grid) ([]byte, error)
}

// ExportFile is a rendered proposal ready for download.
type ExportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders stored timetable proposals into downloadable files.
type ExportService struct {
	csv    csvRenderer
	pdf    pdfRenderer
	ics    icsRenderer
	png    pngRenderer
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(logger *zap.Logger, csv csvRenderer, pdf pdfRenderer, ics icsRenderer, png pngRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if ics == nil {
		ics = export.NewICSExporter()
	}
	if png == nil {
		png = export.NewPNGExporter()
	}
	return &ExportService{
		csv:    csv,
		pdf:    pdf,
		ics:    ics,
		png:    png,
		logger: logger,
		now:    time.Now,
	}
}

// Render produces the proposal in the requested format.
func (s *ExportService) Render(proposal Proposal, format string) (*ExportFile, error) {
	var (
		payload     []byte
		contentType string
		err         error
	)

	switch format {
	case FormatCSV:
		payload, err = s.csv.Render(buildDataset(proposal))
		contentType = "text/csv"
	case FormatPDF:
		subtitle := fmt.Sprintf("Score %.1f, %d backtracks", proposal.Stats.Score, proposal.Stats.Backtracks)
		payload, err = s.pdf.Render(buildDataset(proposal), "Weekly Timetable", subtitle)
		contentType = "application/pdf"
	case FormatICS:
		payload, err = s.renderICS(proposal)
		contentType = "text/calendar"
	case FormatPNG:
		payload, err = s.renderPNG(proposal)
		contentType = "image/png"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	shortID := proposal.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	return &ExportFile{
		Content:     payload,
		ContentType: contentType,
		Filename:    fmt.Sprintf("timetable_%s.%s", shortID, format),
	}, nil
}

func buildDataset(proposal Proposal) export.Dataset {
	rows := make([]map[string]string, 0, len(proposal.Entries))
	for _, entry := range proposal.Entries {
		rows = append(rows, map[string]string{
			"Day":    entry.Day,
			"Course": entry.CourseName,
			"Start":  entry.StartTime,
			"End":    entry.EndTime,
		})
	}
	return export.Dataset{
		Headers: []string{"Day", "Course", "Start", "End"},
		Rows:    rows,
	}
}

// renderICS emits one weekly recurring event per session, anchored to the
// next future occurrence of its weekday.
func (s *ExportService) renderICS(proposal Proposal) ([]byte, error) {
	now := s.now()
	events := make([]export.CalendarEvent, 0, len(proposal.Entries))
	for _, entry := range proposal.Entries {
		weekday, ok := weekdayNames[entry.Day]
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("day %q cannot be mapped to a calendar weekday", entry.Day))
		}
		startMin, err := parseClock(entry.StartTime)
		if err != nil {
			return nil, err
		}
		endMin, err := parseClock(entry.EndTime)
		if err != nil {
			return nil, err
		}

		start := nextOccurrence(now, weekday, startMin)
		end := start.Add(time.Duration(endMin-startMin) * time.Minute)
		events = append(events, export.CalendarEvent{
			UID:     uuid.NewString() + "@studentools",
			Summary: entry.CourseName,
			Start:   start,
			End:     end,
			RRule:   icsRecurrence,
		})
	}
	return s.ics.Render("Weekly Timetable", events)
}

func (s *ExportService) renderPNG(proposal Proposal) ([]byte, error) {
	if proposal.SlotMinutes <= 0 || proposal.WindowEnd <= proposal.WindowStart {
		return nil, fmt.Errorf("proposal has no renderable window")
	}

	rowCount := (proposal.WindowEnd - proposal.WindowStart) / proposal.SlotMinutes
	labels := make([]string, rowCount)
	for i := 0; i < rowCount; i++ {
		minutes := proposal.WindowStart + i*proposal.SlotMinutes
		labels[i] = fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
	}

	cells := make([]export.GridCell, 0, len(proposal.Entries))
	for _, entry := range proposal.Entries {
		startMin, err := parseClock(entry.StartTime)
		if err != nil {
			return nil, err
		}
		endMin, err := parseClock(entry.EndTime)
		if err != nil {
			return nil, err
		}
		cells = append(cells, export.GridCell{
			Day:      entry.Day,
			Row:      (startMin - proposal.WindowStart) / proposal.SlotMinutes,
			RowSpan:  (endMin - startMin) / proposal.SlotMinutes,
			Label:    entry.CourseName,
			Sublabel: fmt.Sprintf("%s-%s", entry.StartTime, entry.EndTime),
			Color:    entry.Color,
		})
	}

	return s.png.Render(export.Grid{
		Title:     "Weekly Timetable",
		Days:      proposal.Days,
		RowLabels: labels,
		Cells:     cells,
	})
}

// nextOccurrence finds the first occurrence of weekday at the given clock
// time that is not in the past.
func nextOccurrence(now time.Time, weekday time.Weekday, minutes int) time.Time {
	day := now
	for day.Weekday() != weekday {
		day = day.AddDate(0, 0, 1)
	}
	at := time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, now.Location())
	if at.Before(now) {
		at = at.AddDate(0, 0, 7)
	}
	return at
}
