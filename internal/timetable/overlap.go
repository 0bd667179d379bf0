package timetable

// ManualCourse is a manually-entered course: it carries its own day set and
// one interval, with no duration splitting.
type ManualCourse struct {
	Name  string
	Days  []string
	Start int
	End   int
}

// Conflict is a pair of manual courses whose intervals intersect on at
// least one shared day.
type Conflict struct {
	Courses [2]string
	Days    []string
}

// FindConflicts runs the pairwise interval-intersection check used by the
// manual editor: two courses conflict iff they share a day and their
// half-open intervals overlap.
func FindConflicts(courses []ManualCourse) []Conflict {
	var conflicts []Conflict
	for i := 0; i < len(courses); i++ {
		for j := i + 1; j < len(courses); j++ {
			a, b := courses[i], courses[j]
			var common []string
			for _, d := range a.Days {
				if containsDay(b.Days, d) {
					common = append(common, d)
				}
			}
			if len(common) == 0 {
				continue
			}
			if a.Start < b.End && b.Start < a.End {
				conflicts = append(conflicts, Conflict{
					Courses: [2]string{a.Name, b.Name},
					Days:    common,
				})
			}
		}
	}
	return conflicts
}
