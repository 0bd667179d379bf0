package timetable

// grid is the per-run occupancy bitmap. Column 0 corresponds to the first
// slot of the working window; intervals are half-open.
type grid struct {
	days     []string
	dayIndex map[string]int
	window   Window
	width    int
	occupied [][]bool
	// courseSlots counts placed course slots per day, excluding fixed
	// events and free periods, for the max-hours-per-day checks.
	courseSlots []int
}

func newGrid(days []string, window Window) *grid {
	width := window.End - window.Start
	g := &grid{
		days:        days,
		dayIndex:    make(map[string]int, len(days)),
		window:      window,
		width:       width,
		occupied:    make([][]bool, len(days)),
		courseSlots: make([]int, len(days)),
	}
	for i, d := range days {
		g.dayIndex[d] = i
		g.occupied[i] = make([]bool, width)
	}
	return g
}

// block marks [start, end) occupied on the given day, clipped to the
// window. Unknown days are ignored, matching the reference behavior for
// fixed events outside the grid.
func (g *grid) block(day string, start, end int) {
	d, ok := g.dayIndex[day]
	if !ok {
		return
	}
	for s := max(start, g.window.Start); s < min(end, g.window.End); s++ {
		g.occupied[d][s-g.window.Start] = true
	}
}

func (g *grid) fits(day, start, duration int) bool {
	if start < g.window.Start || start+duration > g.window.End {
		return false
	}
	off := start - g.window.Start
	for i := 0; i < duration; i++ {
		if g.occupied[day][off+i] {
			return false
		}
	}
	return true
}

func (g *grid) place(day, start, duration int) {
	off := start - g.window.Start
	for i := 0; i < duration; i++ {
		g.occupied[day][off+i] = true
	}
	g.courseSlots[day] += duration
}

func (g *grid) unplace(day, start, duration int) {
	off := start - g.window.Start
	for i := 0; i < duration; i++ {
		g.occupied[day][off+i] = false
	}
	g.courseSlots[day] -= duration
}
