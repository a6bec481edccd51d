package planner

import "testing"

func TestIntervalOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"disjoint", Interval{0, 60}, Interval{120, 180}, false},
		{"adjacent", Interval{0, 60}, Interval{60, 120}, false},
		{"partial", Interval{0, 60}, Interval{30, 90}, true},
		{"contained", Interval{0, 120}, Interval{30, 60}, true},
		{"identical", Interval{30, 60}, Interval{30, 60}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.want {
				t.Errorf("%v.Overlaps(%v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.want {
				t.Errorf("overlap is not symmetric for %v and %v", tc.a, tc.b)
			}
		})
	}
}

func TestIntervalSetConflicts(t *testing.T) {
	set := &intervalSet{}
	set.add(Interval{Start: 540, End: 600})
	set.add(Interval{Start: 720, End: 765})

	if !set.conflicts(Interval{Start: 550, End: 570}) {
		t.Error("expected conflict inside an occupied interval")
	}
	if set.conflicts(Interval{Start: 600, End: 720}) {
		t.Error("gap between occupied intervals should be free")
	}
	if set.conflicts(Interval{Start: 765, End: 800}) {
		t.Error("interval after the last occupied block should be free")
	}
}

func TestIntersect(t *testing.T) {
	got := intersect(Interval{Start: 420, End: 540}, Interval{Start: 480, End: 1320})
	want := Interval{Start: 480, End: 540}
	if got != want {
		t.Errorf("intersect = %v, want %v", got, want)
	}

	// Disjoint windows intersect to an invalid interval.
	empty := intersect(Interval{Start: 420, End: 480}, Interval{Start: 600, End: 660})
	if empty.Valid() {
		t.Errorf("disjoint intersection should be invalid, got %v", empty)
	}
}
