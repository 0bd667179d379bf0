package timetable

import "sort"

// Scoring weights. The exact values are tuning constants; the contract is
// monotonicity: fewer violations of a kind never score worse than more.
const (
	gapWeight        = 2.0
	overCapWeight    = 5.0
	shortBreakWeight = 3.0
	coursePrefReward = 3.0
	globalPrefReward = 1.0
)

// scorePlacement ranks an already-valid placement against the soft
// preferences. It never rejects: a low score is still a success.
// coursePrefs maps a course name to its own preferred-day list, which
// outranks the global ranking when both match.
func scorePlacement(sessions []Session, fixed []FixedEvent, free []FreePeriod, prefs Preferences, days []string, coursePrefs map[string][]string) float64 {
	byDay := make(map[string][]Session)
	for _, s := range sessions {
		byDay[s.Day] = append(byDay[s.Day], s)
	}

	globalPref := make(map[string]bool, len(prefs.PreferredDays))
	for _, d := range prefs.PreferredDays {
		globalPref[d] = true
	}

	var score float64
	for _, s := range sessions {
		if containsDay(coursePrefs[s.Course], s.Day) {
			score += coursePrefReward
		} else if globalPref[s.Day] {
			score += globalPrefReward
		}
	}

	for _, day := range days {
		daySessions := byDay[day]
		if len(daySessions) == 0 {
			continue
		}
		sort.Slice(daySessions, func(a, b int) bool {
			return daySessions[a].Start < daySessions[b].Start
		})

		if prefs.CompactSchedule {
			score -= gapWeight * float64(idleSlots(daySessions, fixed, free, day))
		}

		if prefs.MaxHoursPerDay > 0 {
			total := 0
			for _, s := range daySessions {
				total += s.End - s.Start
			}
			if total > prefs.MaxHoursPerDay {
				score -= overCapWeight * float64(total-prefs.MaxHoursPerDay)
			}
		}

		if prefs.MinBreakDuration > 0 {
			for i := 0; i+1 < len(daySessions); i++ {
				gap := daySessions[i+1].Start - daySessions[i].End
				if gap >= 0 && gap < prefs.MinBreakDuration {
					score -= shortBreakWeight
				}
			}
		}
	}
	return score
}

// idleSlots counts unoccupied slots strictly between the first and last
// session of the day. Slots covered by fixed events or free periods are not
// idle.
func idleSlots(daySessions []Session, fixed []FixedEvent, free []FreePeriod, day string) int {
	first := daySessions[0].Start
	last := first
	for _, s := range daySessions {
		if s.End > last {
			last = s.End
		}
	}
	if last <= first {
		return 0
	}
	covered := make([]bool, last-first)
	mark := func(start, end int) {
		for s := max(start, first); s < min(end, last); s++ {
			covered[s-first] = true
		}
	}
	for _, s := range daySessions {
		mark(s.Start, s.End)
	}
	for _, fe := range fixed {
		if fe.Day == day {
			mark(fe.Start, fe.End)
		}
	}
	for _, fp := range free {
		if fp.Day == day {
			mark(fp.Start, fp.End)
		}
	}
	idle := 0
	for _, c := range covered {
		if !c {
			idle++
		}
	}
	return idle
}

func containsDay(days []string, day string) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
