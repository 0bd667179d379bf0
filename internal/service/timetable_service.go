package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studentools/studentools-api/internal/dto"
	"github.com/studentools/studentools-api/internal/timetable"
	"github.com/studentools/studentools-api/pkg/config"
	appErrors "github.com/studentools/studentools-api/pkg/errors"
)

// coursePalette colors placed courses in placement order. Fixed events get
// the reserved gray so they read as immovable.
var coursePalette = [...]string{
	"#3b82f6", "#ef4444", "#10b981", "#f59e0b", "#8b5cf6",
	"#ec4899", "#06b6d4", "#84cc16", "#f97316", "#6366f1",
}

const fixedEventColor = "#6b7280"

// TimetableService runs the constraint solver over HTTP payloads and keeps
// the resulting proposals for export.
type TimetableService struct {
	cfg       config.SchedulerConfig
	store     ProposalStore
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewTimetableService wires scheduler dependencies.
func NewTimetableService(cfg config.SchedulerConfig, store ProposalStore, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = NewMemoryProposalStore(30 * time.Minute)
	}
	if cfg.SlotMinutes <= 0 {
		cfg.SlotMinutes = 60
	}
	if len(cfg.Days) == 0 {
		cfg.Days = append([]string(nil), timetable.DefaultDays...)
	}
	return &TimetableService{
		cfg:       cfg,
		store:     store,
		validator: validate,
		logger:    logger,
		metrics:   metrics,
	}
}

// Generate validates the request, solves the placement problem and stores
// the proposal for later export.
func (s *TimetableService) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable generation payload")
	}

	windowStart, err := s.parseAligned("constraints.startTime", req.Constraints.StartTime)
	if err != nil {
		return nil, err
	}
	windowEnd, err := s.parseAligned("constraints.endTime", req.Constraints.EndTime)
	if err != nil {
		return nil, err
	}
	if windowStart >= windowEnd {
		return nil, appErrors.Clone(appErrors.ErrValidation, "constraints.startTime must be before constraints.endTime")
	}
	window := timetable.Window{Start: windowStart, End: windowEnd}

	fixed, err := s.parseFixedEvents(req.FixedEvents)
	if err != nil {
		return nil, err
	}
	free, err := s.parseFreePeriods(req.Constraints.FreePeriods)
	if err != nil {
		return nil, err
	}

	courses := make([]timetable.Course, len(req.Courses))
	for i, c := range req.Courses {
		courses[i] = timetable.Course{
			Name:          c.Name,
			Duration:      c.Duration,
			PreferredDays: c.PreferredDays,
		}
	}

	prefs := timetable.Preferences{
		CompactSchedule:    req.Preferences.CompactSchedule,
		PreferredDays:      req.Preferences.PreferredDays,
		MaxHoursPerDay:     req.Preferences.MaxHoursPerDay,
		MinBreakDuration:   req.Preferences.MinBreakDuration,
		MaxSessionDuration: req.Preferences.MaxSessionDuration,
	}

	coreCfg := timetable.Config{
		Days:              s.cfg.Days,
		SlotMinutes:       s.cfg.SlotMinutes,
		PreferredDaysHard: s.cfg.PreferredDaysHard,
		MaxHoursHard:      s.cfg.MaxHoursHard,
		StepBudget:        s.cfg.StepBudget,
	}

	placement, err := timetable.Schedule(courses, window, fixed, free, prefs, coreCfg)
	if err != nil {
		var inputErr *timetable.InputError
		var infeasible *timetable.InfeasibleError
		var budget *timetable.BudgetError
		switch {
		case errors.As(err, &inputErr):
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s: %s", inputErr.Field, inputErr.Reason))
		case errors.As(err, &infeasible):
			s.recordRun(false, 0)
			s.logger.Info("timetable generation infeasible",
				zap.Strings("courses", infeasible.Courses),
				zap.Int("requested", len(req.Courses)),
			)
			return &dto.GenerateTimetableResponse{
				Success:     false,
				Timetable:   []dto.TimetableEntry{},
				Unplaceable: infeasible.Courses,
				Message:     fmt.Sprintf("could not place: %s", strings.Join(infeasible.Courses, ", ")),
			}, nil
		case errors.As(err, &budget):
			s.recordRun(false, 0)
			return nil, appErrors.Wrap(err, appErrors.ErrBudgetExceeded.Code, appErrors.ErrBudgetExceeded.Status, appErrors.ErrBudgetExceeded.Message)
		default:
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "timetable generation failed")
		}
	}

	entries := s.buildEntries(placement, req.FixedEvents)
	stats := dto.TimetableStats{
		Backtracks:   placement.Backtracks,
		Improvements: placement.Improvements,
		Score:        placement.Score,
	}

	proposal := Proposal{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		Days:        s.cfg.Days,
		SlotMinutes: s.cfg.SlotMinutes,
		WindowStart: windowStart * s.cfg.SlotMinutes,
		WindowEnd:   windowEnd * s.cfg.SlotMinutes,
		Entries:     entries,
		Stats:       stats,
	}
	if err := s.store.Save(ctx, proposal); err != nil {
		// Export is best-effort; the placement itself is still returned.
		s.logger.Warn("failed to store proposal", zap.Error(err))
		proposal.ID = ""
	}

	s.recordRun(true, placement.Backtracks)
	s.logger.Info("timetable generated",
		zap.String("proposal_id", proposal.ID),
		zap.Int("sessions", len(placement.Sessions)),
		zap.Int("backtracks", placement.Backtracks),
		zap.Float64("score", placement.Score),
	)

	return &dto.GenerateTimetableResponse{
		ProposalID: proposal.ID,
		Success:    true,
		Timetable:  entries,
		Message:    "timetable generated",
		Stats:      &stats,
	}, nil
}

// CheckConflicts reports pairwise overlaps among manually entered courses.
func (s *TimetableService) CheckConflicts(_ context.Context, req dto.ConflictCheckRequest) (*dto.ConflictCheckResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid conflict check payload")
	}

	manual := make([]timetable.ManualCourse, len(req.Courses))
	for i, c := range req.Courses {
		start, err := parseClock(c.StartTime)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("courses[%d].startTime: %v", i, err))
		}
		end, err := parseClock(c.EndTime)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("courses[%d].endTime: %v", i, err))
		}
		if start >= end {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("courses[%d]: startTime must be before endTime", i))
		}
		manual[i] = timetable.ManualCourse{
			Name:  c.Name,
			Days:  c.Days,
			Start: start,
			End:   end,
		}
	}

	conflicts := timetable.FindConflicts(manual)
	pairs := make([]dto.ConflictPair, len(conflicts))
	for i, conflict := range conflicts {
		pairs[i] = dto.ConflictPair{
			Courses: conflict.Courses[:],
			Days:    conflict.Days,
			Message: fmt.Sprintf("%s and %s overlap on %s", conflict.Courses[0], conflict.Courses[1], strings.Join(conflict.Days, ", ")),
		}
	}
	return &dto.ConflictCheckResponse{Conflicts: pairs}, nil
}

// Proposal loads a stored proposal by ID.
func (s *TimetableService) Proposal(ctx context.Context, id string) (Proposal, error) {
	proposal, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return Proposal{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load proposal")
	}
	if s.metrics != nil {
		s.metrics.RecordProposalLookup(ok)
	}
	if !ok {
		return Proposal{}, appErrors.Clone(appErrors.ErrNotFound, "proposal not found or expired")
	}
	return proposal, nil
}

func (s *TimetableService) buildEntries(placement *timetable.Placement, fixedEvents []dto.FixedEventRequest) []dto.TimetableEntry {
	colors := make(map[string]string)
	next := 0
	colorFor := func(course string) string {
		if c, ok := colors[course]; ok {
			return c
		}
		c := coursePalette[next%len(coursePalette)]
		next++
		colors[course] = c
		return c
	}

	entries := make([]dto.TimetableEntry, 0, len(placement.Sessions)+len(fixedEvents))
	for _, session := range placement.Sessions {
		name := session.Course
		if session.Units > 1 {
			name = fmt.Sprintf("%s (%d/%d)", session.Course, session.Unit, session.Units)
		}
		entries = append(entries, dto.TimetableEntry{
			CourseName: name,
			Day:        session.Day,
			StartTime:  s.formatSlot(session.Start),
			EndTime:    s.formatSlot(session.End),
			Color:      colorFor(session.Course),
		})
	}
	for _, event := range fixedEvents {
		entries = append(entries, dto.TimetableEntry{
			CourseName: event.Name,
			Day:        event.Day,
			StartTime:  event.StartTime,
			EndTime:    event.EndTime,
			Color:      fixedEventColor,
		})
	}

	dayRank := make(map[string]int, len(s.cfg.Days))
	for i, day := range s.cfg.Days {
		dayRank[day] = i
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if dayRank[entries[i].Day] != dayRank[entries[j].Day] {
			return dayRank[entries[i].Day] < dayRank[entries[j].Day]
		}
		return entries[i].StartTime < entries[j].StartTime
	})
	return entries
}

func (s *TimetableService) parseFixedEvents(events []dto.FixedEventRequest) ([]timetable.FixedEvent, error) {
	fixed := make([]timetable.FixedEvent, len(events))
	for i, event := range events {
		if err := s.ensureKnownDay(fmt.Sprintf("fixedEvents[%d].day", i), event.Day); err != nil {
			return nil, err
		}
		start, err := s.parseAligned(fmt.Sprintf("fixedEvents[%d].startTime", i), event.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := s.parseAligned(fmt.Sprintf("fixedEvents[%d].endTime", i), event.EndTime)
		if err != nil {
			return nil, err
		}
		if start >= end {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("fixedEvents[%d]: startTime must be before endTime", i))
		}
		fixed[i] = timetable.FixedEvent{Name: event.Name, Day: event.Day, Start: start, End: end}
	}
	return fixed, nil
}

func (s *TimetableService) parseFreePeriods(periods []dto.FreePeriodRequest) ([]timetable.FreePeriod, error) {
	free := make([]timetable.FreePeriod, len(periods))
	for i, period := range periods {
		if err := s.ensureKnownDay(fmt.Sprintf("constraints.freePeriods[%d].day", i), period.Day); err != nil {
			return nil, err
		}
		start, err := s.parseAligned(fmt.Sprintf("constraints.freePeriods[%d].startTime", i), period.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := s.parseAligned(fmt.Sprintf("constraints.freePeriods[%d].endTime", i), period.EndTime)
		if err != nil {
			return nil, err
		}
		if start >= end {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("constraints.freePeriods[%d]: startTime must be before endTime", i))
		}
		free[i] = timetable.FreePeriod{Day: period.Day, Start: start, End: end}
	}
	return free, nil
}

func (s *TimetableService) ensureKnownDay(field, day string) error {
	for _, known := range s.cfg.Days {
		if known == day {
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s: unknown day %q", field, day))
}

// parseAligned converts an HH:MM clock to a slot index on the configured
// grid, rejecting times that fall between slot boundaries.
func (s *TimetableService) parseAligned(field, clock string) (int, error) {
	minutes, err := parseClock(clock)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s: %v", field, err))
	}
	if minutes%s.cfg.SlotMinutes != 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s: %s does not align to the %d-minute grid", field, clock, s.cfg.SlotMinutes))
	}
	return minutes / s.cfg.SlotMinutes, nil
}

func (s *TimetableService) formatSlot(slot int) string {
	minutes := slot * s.cfg.SlotMinutes
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func (s *TimetableService) recordRun(success bool, backtracks int) {
	if s.metrics != nil {
		s.metrics.RecordSchedulerRun(success, backtracks)
	}
}

func parseClock(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("expected HH:MM, got %q", clock)
	}
	return t.Hour()*60 + t.Minute(), nil
}
