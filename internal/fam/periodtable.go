package fam

// PeriodTable is the ordered list of periods with an id->index map,
// supporting relative-offset resolution (spec.md §4.3).
type PeriodTable struct {
	periods []Period
	index   map[PeriodId]int
}

// NewPeriodTable builds an empty table.
func NewPeriodTable() *PeriodTable {
	return &PeriodTable{index: make(map[PeriodId]int)}
}

// Set replaces the stored period order wholesale.
func (t *PeriodTable) Set(periods []Period) {
	t.periods = append([]Period(nil), periods...)
	t.index = make(map[PeriodId]int, len(periods))
	for i, p := range t.periods {
		t.index[p.ID] = i
	}
}

// Append adds one period to the end of the table, updating the index.
func (t *PeriodTable) Append(p Period) {
	t.index[p.ID] = len(t.periods)
	t.periods = append(t.periods, p)
}

// Len returns the number of periods in the table.
func (t *PeriodTable) Len() int { return len(t.periods) }

// All returns a copy of the period slice in order.
func (t *PeriodTable) All() []Period {
	return append([]Period(nil), t.periods...)
}

// Latest returns the last period in the table, and false if the table
// is empty.
func (t *PeriodTable) Latest() (Period, bool) {
	if len(t.periods) == 0 {
		return Period{}, false
	}
	return t.periods[len(t.periods)-1], true
}

// IndexOf returns the table index of pid.
func (t *PeriodTable) IndexOf(pid PeriodId) (int, error) {
	idx, ok := t.index[pid]
	if !ok {
		return 0, &UnknownPeriodError{Period: pid}
	}
	return idx, nil
}

// Resolve computes periods[index_of(base)+offset], erroring if the
// result is outside [0, len).
func (t *PeriodTable) Resolve(base PeriodId, offset int) (PeriodId, error) {
	idx, err := t.IndexOf(base)
	if err != nil {
		return "", err
	}
	target := idx + offset
	if target < 0 || target >= len(t.periods) {
		return "", &PeriodOutOfRangeError{Base: base, Offset: offset}
	}
	return t.periods[target].ID, nil
}

// Get returns the period with id pid.
func (t *PeriodTable) Get(pid PeriodId) (Period, error) {
	idx, err := t.IndexOf(pid)
	if err != nil {
		return Period{}, err
	}
	return t.periods[idx], nil
}
