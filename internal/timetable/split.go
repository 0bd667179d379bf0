package timetable

// sessionUnit is one schedulable chunk of a course after splitting.
type sessionUnit struct {
	course   int // index into the input course slice
	name     string
	duration int
	unit     int
	units    int
	preferredDays []string
	// split marks courses divided under MaxSessionDuration; their units
	// must land on distinct days.
	split bool
}

// splitDurations divides total into the minimum number of chunks of size at
// most maxSession, as equal as possible, summing exactly to total.
// 5 with max 2 yields 2+2+1.
func splitDurations(total, maxSession int) []int {
	if maxSession <= 0 || total <= maxSession {
		return []int{total}
	}
	n := (total + maxSession - 1) / maxSession
	base := total / n
	rem := total % n
	out := make([]int, n)
	for i := range out {
		out[i] = base
		if i < rem {
			out[i]++
		}
	}
	return out
}

// buildUnits validates course durations and expands each course into its
// session units. The splitting decision is made once, up front.
func buildUnits(courses []Course, maxSession int) ([]sessionUnit, error) {
	units := make([]sessionUnit, 0, len(courses))
	for i, c := range courses {
		if c.Duration <= 0 {
			return nil, &InputError{
				Field:  "courses[" + c.Name + "].duration",
				Reason: "duration must be a positive number of slots",
			}
		}
		chunks := splitDurations(c.Duration, maxSession)
		for j, d := range chunks {
			units = append(units, sessionUnit{
				course:        i,
				name:          c.Name,
				duration:      d,
				unit:          j + 1,
				units:         len(chunks),
				preferredDays: c.PreferredDays,
				split:         len(chunks) > 1,
			})
		}
	}
	return units, nil
}
