package core

type (
	// MonthGroup holds the records of one calendar month and its week layout.
	MonthGroup struct {
		Name    string
		Month   int
		Year    int
		Records []Record
		Weeks   WeekGrid
	}

	// Months is keyed by month name but iterates in first-seen order.
	Months struct {
		order  []string
		groups map[string]*MonthGroup
	}
)

// GroupByMonth folds date-sorted records into month groups, keeping the
// order in which months first appear, and lays out each month's weeks.
func GroupByMonth(records []Record) *Months {
	m := &Months{groups: make(map[string]*MonthGroup)}
	for _, r := range records {
		name := r.Date.Time.Month().String()
		g, ok := m.groups[name]
		if !ok {
			g = &MonthGroup{Name: name, Month: r.Date.Month(), Year: r.Date.Year()}
			m.groups[name] = g
			m.order = append(m.order, name)
		}
		g.Records = append(g.Records, r)
	}

	for _, name := range m.order {
		g := m.groups[name]
		byDay := make(map[int]*Record, len(g.Records))
		for i := range g.Records {
			byDay[g.Records[i].Date.Day()] = &g.Records[i]
		}
		g.Weeks = BuildWeekGrid(g.Year, g.Month, byDay)
	}
	return m
}

// Names returns month names in first-seen order.
func (m *Months) Names() []string {
	return append([]string(nil), m.order...)
}

// Get returns the group for a month name.
func (m *Months) Get(name string) (*MonthGroup, bool) {
	g, ok := m.groups[name]
	return g, ok
}

// All returns the groups in first-seen order.
func (m *Months) All() []*MonthGroup {
	out := make([]*MonthGroup, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.groups[name])
	}
	return out
}

func (m *Months) Len() int {
	return len(m.order)
}
