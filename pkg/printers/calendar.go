package printers

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/symptoms/pkg/entry"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Month prints a calendar for the month containing then. Days with a
// symptom are tinted by the worst severity logged that day, days with only
// intake entries are bold.
func (pp *PrettyPrint) Month(then time.Time, entries []entry.Entry) {
	pp.MonthSeverity(then, worstByDay(then, entries))
}

// worstByDay returns, per day of the month, -1 when nothing was logged, 0 for
// intake only, or the highest symptom severity.
func worstByDay(then time.Time, entries []entry.Entry) []int {
	then = then.Local()
	days := DaysIn(then)
	worst := make([]int, days)
	for i := range worst {
		worst[i] = -1
	}
	for _, e := range entries {
		at := e.Timestamp.Local()
		if at.Year() != then.Year() || at.Month() != then.Month() {
			continue
		}
		d := at.Day() - 1
		if worst[d] < 0 {
			worst[d] = 0
		}
		if s, ok := e.Severity(); ok && int(s) > worst[d] {
			worst[d] = int(s)
		}
	}
	return worst
}

func (pp *PrettyPrint) MonthSeverity(then time.Time, worst []int) {
	p := pp.palette()
	d := StartDay(then)

	tf := p.style(faintItalic...)
	m := then.Month().String()
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(pp.Out, "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(pp.Out, "   ")
	}

	l1 := p.style(faint...)
	l2 := p.style(boldUnderline[0])

	days := DaysIn(then)
	for i := 0; i < days; i++ {
		day := fmt.Sprintf("%2d", i+1)
		switch {
		case i >= len(worst) || worst[i] < 0:
			_, _ = l1.Fprint(pp.Out, day)
		case worst[i] == 0:
			_, _ = l2.Fprint(pp.Out, day)
		default:
			_, _ = fmt.Fprint(pp.Out, p.hex(day, SeverityColor(entry.Severity(worst[i])).Hex()))
		}
		_, _ = fmt.Fprint(pp.Out, " ")

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(pp.Out, "\n")
		}
	}
	_, _ = fmt.Fprint(pp.Out, "\n\n")
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 1, 0, 0, 0, then.Location())
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
