package models

// Priority orders items for allocation. Critical is placed first.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Rank returns the sort rank for a priority (critical=0 ... low=3).
// Unknown values rank below low so malformed data never jumps the queue.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	return p.Rank() < 4
}
