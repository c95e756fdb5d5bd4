package series

import "time"

// GroupByWeek splits ascending points into consecutive calendar weeks that
// start on Sunday at midnight in each point's own location.
func GroupByWeek(points []Point) [][]Point {
	var out [][]Point
	var cur []Point
	var curStart time.Time
	for _, p := range points {
		start := weekStart(p.X)
		if cur != nil && !start.Equal(curStart) {
			out = append(out, cur)
			cur = nil
		}
		if cur == nil {
			curStart = start
		}
		cur = append(cur, p)
	}
	if cur != nil {
		out = append(out, cur)
	}
	return out
}

func weekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}
