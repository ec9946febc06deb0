package app

import (
	"time"

	"github.com/nibzard/tasks-go/internal/todo"
)

// Groups partitions tasks by due date relative to a day.
type Groups struct {
	Overdue  []todo.Task
	Today    []todo.Task
	Tomorrow []todo.Task
	Upcoming []todo.Task
	NoDate   []todo.Task
}

// Section is a titled, non-empty group.
type Section struct {
	Title string
	Tasks []todo.Task
}

// GroupByDate sorts tasks into groups by comparing their due date with the
// calendar day of now. Order within a group follows the input. Malformed
// dates count as no date.
func GroupByDate(tasks []todo.Task, now time.Time) Groups {
	today := startOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)

	var g Groups
	for _, t := range tasks {
		due, ok := t.Due(now.Location())
		switch {
		case !ok:
			g.NoDate = append(g.NoDate, t)
		case due.Before(today):
			g.Overdue = append(g.Overdue, t)
		case due.Equal(today):
			g.Today = append(g.Today, t)
		case due.Equal(tomorrow):
			g.Tomorrow = append(g.Tomorrow, t)
		default:
			g.Upcoming = append(g.Upcoming, t)
		}
	}
	return g
}

// Sections returns the non-empty groups in display order.
func (g Groups) Sections() []Section {
	all := []Section{
		{Title: "Overdue", Tasks: g.Overdue},
		{Title: "Today", Tasks: g.Today},
		{Title: "Tomorrow", Tasks: g.Tomorrow},
		{Title: "Upcoming", Tasks: g.Upcoming},
		{Title: "No Due Date", Tasks: g.NoDate},
	}
	out := make([]Section, 0, len(all))
	for _, s := range all {
		if len(s.Tasks) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
