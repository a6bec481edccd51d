package planner

// Interval is a half-open [Start,End) range in minutes from midnight.
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Valid reports whether the interval is well-formed and within a single day.
func (i Interval) Valid() bool {
	return i.Start < i.End && i.Start >= 0 && i.End <= 24*60
}

// Overlaps reports whether two half-open intervals intersect.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

// intersect clips i to o. The result may be empty (Start >= End).
func intersect(i, o Interval) Interval {
	out := i
	if o.Start > out.Start {
		out.Start = o.Start
	}
	if o.End < out.End {
		out.End = o.End
	}
	return out
}

// intervalSet is the mutable occupied-interval arena used during a single
// allocation pass. Item counts are tens per day, so a flat list scanned
// linearly is plenty.
type intervalSet struct {
	list []Interval
}

func (s *intervalSet) conflicts(iv Interval) bool {
	for _, o := range s.list {
		if iv.Overlaps(o) {
			return true
		}
	}
	return false
}

func (s *intervalSet) add(iv Interval) {
	s.list = append(s.list, iv)
}
