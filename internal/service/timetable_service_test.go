package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/studentools/studentools-api/internal/dto"
	"github.com/studentools/studentools-api/pkg/config"
	appErrors "github.com/studentools/studentools-api/pkg/errors"
)

func newTestTimetableService(t *testing.T) (*TimetableService, ProposalStore) {
	t.Helper()
	store := NewMemoryProposalStore(time.Minute)
	cfg := config.SchedulerConfig{
		Days:              []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		SlotMinutes:       60,
		PreferredDaysHard: true,
	}
	return NewTimetableService(cfg, store, nil, nil, nil), store
}

func TestTimetableGenerateStoresProposal(t *testing.T) {
	svc, store := newTestTimetableService(t)

	resp, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{
		Courses: []dto.CourseRequest{{Name: "Math", Duration: 2}},
		Constraints: dto.TimeConstraintsRequest{
			StartTime: "08:00",
			EndTime:   "12:00",
		},
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.ProposalID)
	require.Len(t, resp.Timetable, 1)

	entry := resp.Timetable[0]
	require.Equal(t, "Math", entry.CourseName)
	require.Equal(t, "Monday", entry.Day)
	require.Equal(t, "08:00", entry.StartTime)
	require.Equal(t, "10:00", entry.EndTime)
	require.Equal(t, coursePalette[0], entry.Color)

	stored, ok, err := store.Get(context.Background(), resp.ProposalID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, resp.Timetable, stored.Entries)
	require.Equal(t, 60, stored.SlotMinutes)
	require.Equal(t, 8*60, stored.WindowStart)
	require.Equal(t, 12*60, stored.WindowEnd)
}

func TestTimetableGenerateEchoesFixedEvents(t *testing.T) {
	svc, _ := newTestTimetableService(t)

	resp, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{
		Courses: []dto.CourseRequest{{Name: "Math", Duration: 1}},
		Constraints: dto.TimeConstraintsRequest{
			StartTime: "08:00",
			EndTime:   "12:00",
		},
		FixedEvents: []dto.FixedEventRequest{
			{Name: "Chess Club", Day: "Monday", StartTime: "08:00", EndTime: "09:00"},
		},
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Len(t, resp.Timetable, 2)

	var fixed *dto.TimetableEntry
	for i := range resp.Timetable {
		if resp.Timetable[i].CourseName == "Chess Club" {
			fixed = &resp.Timetable[i]
		} else {
			// Placed course must avoid the fixed slot.
			require.False(t, resp.Timetable[i].Day == "Monday" && resp.Timetable[i].StartTime == "08:00")
		}
	}
	require.NotNil(t, fixed)
	require.Equal(t, fixedEventColor, fixed.Color)
}

func TestTimetableGenerateRejectsMisalignedTimes(t *testing.T) {
	svc, _ := newTestTimetableService(t)

	_, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{
		Courses: []dto.CourseRequest{{Name: "Math", Duration: 1}},
		Constraints: dto.TimeConstraintsRequest{
			StartTime: "08:30",
			EndTime:   "12:00",
		},
	})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTimetableGenerateRejectsUnknownDay(t *testing.T) {
	svc, _ := newTestTimetableService(t)

	_, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{
		Courses: []dto.CourseRequest{{Name: "Math", Duration: 1}},
		Constraints: dto.TimeConstraintsRequest{
			StartTime: "08:00",
			EndTime:   "12:00",
		},
		FixedEvents: []dto.FixedEventRequest{
			{Name: "Club", Day: "Funday", StartTime: "08:00", EndTime: "09:00"},
		},
	})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTimetableGenerateReportsUnplaceable(t *testing.T) {
	svc, _ := newTestTimetableService(t)

	resp, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{
		Courses: []dto.CourseRequest{{Name: "Marathon", Duration: 10}},
		Constraints: dto.TimeConstraintsRequest{
			StartTime: "08:00",
			EndTime:   "12:00",
		},
	})
	require.NoError(t, err)
	require.False(t, resp.Success)
	require.Empty(t, resp.ProposalID)
	require.Equal(t, []string{"Marathon"}, resp.Unplaceable)
	require.Contains(t, resp.Message, "Marathon")
}

func TestTimetableGenerateAssignsDistinctColors(t *testing.T) {
	svc, _ := newTestTimetableService(t)

	resp, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{
		Courses: []dto.CourseRequest{
			{Name: "Math", Duration: 1},
			{Name: "Physics", Duration: 1},
			{Name: "Biology", Duration: 1},
		},
		Constraints: dto.TimeConstraintsRequest{
			StartTime: "08:00",
			EndTime:   "12:00",
		},
	})
	require.NoError(t, err)
	require.True(t, resp.Success)

	colors := make(map[string]string)
	for _, entry := range resp.Timetable {
		colors[entry.CourseName] = entry.Color
	}
	require.Len(t, colors, 3)
	seen := make(map[string]bool)
	for _, color := range colors {
		require.False(t, seen[color])
		seen[color] = true
	}
}

func TestTimetableCheckConflicts(t *testing.T) {
	svc, _ := newTestTimetableService(t)

	resp, err := svc.CheckConflicts(context.Background(), dto.ConflictCheckRequest{
		Courses: []dto.ManualCourseRequest{
			{Name: "Math", Days: []string{"Monday", "Wednesday"}, StartTime: "09:00", EndTime: "11:00"},
			{Name: "Physics", Days: []string{"Monday"}, StartTime: "10:00", EndTime: "12:00"},
			{Name: "Art", Days: []string{"Friday"}, StartTime: "09:00", EndTime: "10:00"},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Conflicts, 1)

	conflict := resp.Conflicts[0]
	require.ElementsMatch(t, []string{"Math", "Physics"}, conflict.Courses)
	require.Equal(t, []string{"Monday"}, conflict.Days)
	require.Contains(t, conflict.Message, "overlap on Monday")
}

func TestTimetableCheckConflictsRejectsBadClock(t *testing.T) {
	svc, _ := newTestTimetableService(t)

	_, err := svc.CheckConflicts(context.Background(), dto.ConflictCheckRequest{
		Courses: []dto.ManualCourseRequest{
			{Name: "Math", Days: []string{"Monday"}, StartTime: "9am", EndTime: "11:00"},
		},
	})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTimetableProposalExpiry(t *testing.T) {
	store := NewMemoryProposalStore(time.Millisecond)
	cfg := config.SchedulerConfig{SlotMinutes: 60}
	svc := NewTimetableService(cfg, store, nil, nil, nil)

	resp, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{
		Courses: []dto.CourseRequest{{Name: "Math", Duration: 1}},
		Constraints: dto.TimeConstraintsRequest{
			StartTime: "08:00",
			EndTime:   "10:00",
		},
	})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	_, err = svc.Proposal(context.Background(), resp.ProposalID)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
