package timetable

import "sort"

const (
	defaultStepBudget = 200_000
	improvementPasses = 16
)

// Schedule places every course onto the weekly grid, or explains why it
// cannot. It is deterministic: identical input yields an identical
// placement.
func Schedule(courses []Course, window Window, fixed []FixedEvent, free []FreePeriod, prefs Preferences, cfg Config) (*Placement, error) {
	cfg = cfg.withDefaults()
	if window.Start >= window.End {
		return nil, &InputError{Field: "constraints.startTime", Reason: "working window must start before it ends"}
	}
	units, err := buildUnits(courses, prefs.MaxSessionDuration)
	if err != nil {
		return nil, err
	}
	orderUnits(units)

	coursePrefs := make(map[string][]string, len(courses))
	for _, c := range courses {
		if len(c.PreferredDays) > 0 {
			coursePrefs[c.Name] = c.PreferredDays
		}
	}
	s := &solver{
		cfg:         cfg,
		window:      window,
		fixed:       fixed,
		free:        free,
		prefs:       prefs,
		coursePrefs: coursePrefs,
	}

	// Solve, dropping any course that exhausts its candidates and retrying
	// with the remainder, so failure names every unplaceable course rather
	// than only the first.
	var unplaceable []string
	active := units
	for {
		placement, stuck, err := s.solve(active)
		if err != nil {
			return nil, err
		}
		if stuck == "" {
			if len(unplaceable) > 0 {
				return nil, &InfeasibleError{Courses: unplaceable}
			}
			return placement, nil
		}
		unplaceable = append(unplaceable, stuck)
		next := active[:0:0]
		for _, u := range active {
			if u.name != stuck {
				next = append(next, u)
			}
		}
		active = next
	}
}

type candidate struct {
	day   int
	start int
}

type solver struct {
	cfg    Config
	window Window
	fixed  []FixedEvent
	free   []FreePeriod
	prefs  Preferences

	coursePrefs map[string][]string
	steps       int
	backtracks  int
}

// solve attempts a full placement of the given units. It returns the name
// of the first course that exhausted its candidates, or a placement when
// every unit fits.
func (s *solver) solve(units []sessionUnit) (*Placement, string, error) {
	g := newGrid(s.cfg.Days, s.window)
	for _, fe := range s.fixed {
		g.block(fe.Day, fe.Start, fe.End)
	}
	for _, fp := range s.free {
		g.block(fp.Day, fp.Start, fp.End)
	}

	n := len(units)
	cands := make([][]candidate, n)
	for i, u := range units {
		cands[i] = s.candidatesFor(g, u)
	}

	cursors := make([]int, n)
	chosen := make([]candidate, n)
	courseDays := make(map[int]map[int]bool)
	maxBacktracks := n * n
	solveBacktracks := 0

	place := func(i int, c candidate) {
		g.place(c.day, c.start, units[i].duration)
		if courseDays[units[i].course] == nil {
			courseDays[units[i].course] = make(map[int]bool)
		}
		courseDays[units[i].course][c.day] = true
		chosen[i] = c
	}
	unplace := func(i int) {
		c := chosen[i]
		g.unplace(c.day, c.start, units[i].duration)
		delete(courseDays[units[i].course], c.day)
	}

	i := 0
	for i < n {
		placed := false
		for c := cursors[i]; c < len(cands[i]); c++ {
			s.steps++
			if s.steps > s.cfg.StepBudget {
				return nil, "", &BudgetError{Steps: s.steps - 1}
			}
			if s.feasible(g, units[i], cands[i][c], courseDays) {
				place(i, cands[i][c])
				cursors[i] = c + 1
				placed = true
				break
			}
		}
		if placed {
			i++
			continue
		}

		// Exhausted: undo the most recent placement belonging to a
		// different course and retry its next candidate. Placements above
		// it (same-course units) are re-attempted from scratch.
		cursors[i] = 0
		j := i - 1
		for j >= 0 && units[j].course == units[i].course {
			j--
		}
		if j < 0 || solveBacktracks >= maxBacktracks {
			return nil, units[i].name, nil
		}
		for k := i - 1; k > j; k-- {
			unplace(k)
			cursors[k] = 0
		}
		unplace(j)
		solveBacktracks++
		s.backtracks++
		i = j
	}

	sessions := make([]Session, n)
	for i, u := range units {
		sessions[i] = Session{
			Course: u.name,
			Day:    g.days[chosen[i].day],
			Start:  chosen[i].start,
			End:    chosen[i].start + u.duration,
			Unit:   u.unit,
			Units:  u.units,
		}
	}

	improvements := 0
	if s.prefs.CompactSchedule {
		improvements = s.compact(g, units, chosen, sessions)
	}

	return &Placement{
		Sessions:     sessions,
		Score:        scorePlacement(sessions, s.fixed, s.free, s.prefs, s.cfg.Days, s.coursePrefs),
		Improvements: improvements,
		Backtracks:   s.backtracks,
	}, "", nil
}

// candidatesFor enumerates (day, start) pairs in deterministic preference
// order: the course's own preferred days, then the global ranking, then the
// remaining grid days; within a day, earliest start first.
func (s *solver) candidatesFor(g *grid, u sessionUnit) []candidate {
	seen := make([]bool, len(g.days))
	var dayOrder []int
	appendDay := func(name string) {
		if d, ok := g.dayIndex[name]; ok && !seen[d] {
			seen[d] = true
			dayOrder = append(dayOrder, d)
		}
	}
	for _, name := range u.preferredDays {
		appendDay(name)
	}
	restricted := s.cfg.PreferredDaysHard && len(u.preferredDays) > 0
	if !restricted {
		for _, name := range s.prefs.PreferredDays {
			appendDay(name)
		}
		for _, name := range g.days {
			appendDay(name)
		}
	}

	var out []candidate
	for _, d := range dayOrder {
		for start := s.window.Start; start+u.duration <= s.window.End; start++ {
			out = append(out, candidate{day: d, start: start})
		}
	}
	return out
}

func (s *solver) feasible(g *grid, u sessionUnit, c candidate, courseDays map[int]map[int]bool) bool {
	if !g.fits(c.day, c.start, u.duration) {
		return false
	}
	if u.split && courseDays[u.course][c.day] {
		return false
	}
	if s.cfg.MaxHoursHard && s.prefs.MaxHoursPerDay > 0 &&
		g.courseSlots[c.day]+u.duration > s.prefs.MaxHoursPerDay {
		return false
	}
	return true
}

// compact runs bounded shift-left passes: move a session to the earliest
// feasible start on its day when the move strictly improves the score.
func (s *solver) compact(g *grid, units []sessionUnit, chosen []candidate, sessions []Session) int {
	moves := 0
	order := make([]int, len(sessions))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if chosen[order[a]].day != chosen[order[b]].day {
			return chosen[order[a]].day < chosen[order[b]].day
		}
		return chosen[order[a]].start < chosen[order[b]].start
	})

	for pass := 0; pass < improvementPasses; pass++ {
		moved := false
		for _, i := range order {
			cur := chosen[i]
			g.unplace(cur.day, cur.start, units[i].duration)
			target := -1
			for start := s.window.Start; start < cur.start; start++ {
				if g.fits(cur.day, start, units[i].duration) {
					target = start
					break
				}
			}
			if target < 0 {
				g.place(cur.day, cur.start, units[i].duration)
				continue
			}
			before := scorePlacement(sessions, s.fixed, s.free, s.prefs, s.cfg.Days, s.coursePrefs)
			sessions[i].Start = target
			sessions[i].End = target + units[i].duration
			after := scorePlacement(sessions, s.fixed, s.free, s.prefs, s.cfg.Days, s.coursePrefs)
			if after > before {
				g.place(cur.day, target, units[i].duration)
				chosen[i] = candidate{day: cur.day, start: target}
				moves++
				moved = true
			} else {
				sessions[i].Start = cur.start
				sessions[i].End = cur.start + units[i].duration
				g.place(cur.day, cur.start, units[i].duration)
			}
		}
		if !moved {
			break
		}
	}
	return moves
}

// orderUnits applies the constraint-ordering heuristic: day-restricted
// courses first, longer sessions first, input order as the final tie-break.
func orderUnits(units []sessionUnit) {
	sort.SliceStable(units, func(a, b int) bool {
		ap := len(units[a].preferredDays) > 0
		bp := len(units[b].preferredDays) > 0
		if ap != bp {
			return ap
		}
		return units[a].duration > units[b].duration
	})
}
