package homework

// SeenState maps a homework id to the last status we notified about.
type SeenState map[string]Status

// Clone returns an independent copy; a nil receiver yields an empty map.
func (s SeenState) Clone() SeenState {
	out := make(SeenState, len(s))
	for id, status := range s {
		out[id] = status
	}
	return out
}

// Diff compares a batch against seen and returns the updated state along with
// one event per id whose status changed. seen is never modified. Entries for
// the same id are applied in batch order, so a batch reporting
// reviewing→approved yields two events.
func Diff(seen SeenState, batch []Homework) (SeenState, []ChangeEvent) {
	next := seen.Clone()
	var events []ChangeEvent
	for _, hw := range batch {
		prev, ok := next[hw.ID]
		if ok && prev == hw.Status {
			continue
		}
		next[hw.ID] = hw.Status
		events = append(events, ChangeEvent{
			ID:   hw.ID,
			Name: hw.Name,
			Old:  prev,
			New:  hw.Status,
			At:   hw.UpdatedAt,
		})
	}
	return next, events
}
