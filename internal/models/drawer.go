package models

// DrawerSnapshot holds the count of every denomination currently in the drawer.
// It is built once from operator input and never modified afterwards.
type DrawerSnapshot struct {
	counts map[string]int64
}

// NewDrawerSnapshot copies counts into a new snapshot. Validation of the
// counts (non-negative, known keys) is the caller's job; see till.FromRawCounts.
func NewDrawerSnapshot(counts map[string]int64) DrawerSnapshot {
	copied := make(map[string]int64, len(counts))
	for k, v := range counts {
		copied[k] = v
	}
	return DrawerSnapshot{counts: copied}
}

// Count returns the number of pieces for a denomination key, 0 when absent
func (s DrawerSnapshot) Count(key string) int64 {
	return s.counts[key]
}

// Counts returns a copy of the underlying mapping
func (s DrawerSnapshot) Counts() map[string]int64 {
	copied := make(map[string]int64, len(s.counts))
	for k, v := range s.counts {
		copied[k] = v
	}
	return copied
}

// Breakdown lists a count for every catalog key, zeros included, which is the
// shape stored in drawer records.
func (s DrawerSnapshot) Breakdown(c Catalog) map[string]int64 {
	breakdown := make(map[string]int64, c.Len())
	for _, key := range c.Keys() {
		breakdown[key] = s.counts[key]
	}
	return breakdown
}
