package models

import (
	"encoding/json"
	"fmt"
)

// UnmarshalJSON is the single normalization point for routine constraints.
// Two legacy shapes survive in exported data and older databases: a bare
// number for duration (minutes) and a {"startTime","endTime"} window. Both
// collapse into the canonical struct here so nothing downstream ever
// branches on shape again.
func (c *Constraints) UnmarshalJSON(data []byte) error {
	var raw struct {
		Window      json.RawMessage `json:"window"`
		Target      *TargetValue    `json:"target"`
		DurationMin json.RawMessage `json:"duration_min"`
		Duration    json.RawMessage `json:"duration"` // legacy key
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = Constraints{Target: raw.Target}

	if len(raw.Window) > 0 && string(raw.Window) != "null" {
		w, err := normalizeWindow(raw.Window)
		if err != nil {
			return err
		}
		c.Window = w
	}

	dur := raw.DurationMin
	if len(dur) == 0 {
		dur = raw.Duration
	}
	if len(dur) > 0 && string(dur) != "null" {
		d, err := normalizeDuration(dur)
		if err != nil {
			return err
		}
		c.DurationMin = d
	}

	return nil
}

func normalizeWindow(raw json.RawMessage) (*TimeWindow, error) {
	var w struct {
		Start     string `json:"start"`
		End       string `json:"end"`
		StartTime string `json:"startTime"` // legacy key
		EndTime   string `json:"endTime"`   // legacy key
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("invalid time window: %w", err)
	}
	out := &TimeWindow{Start: w.Start, End: w.End}
	if out.Start == "" {
		out.Start = w.StartTime
	}
	if out.End == "" {
		out.End = w.EndTime
	}
	if out.Start == "" || out.End == "" {
		return nil, fmt.Errorf("time window missing start or end: %s", string(raw))
	}
	return out, nil
}

func normalizeDuration(raw json.RawMessage) (int, error) {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var obj struct {
		Minutes int `json:"minutes"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Minutes > 0 {
		return obj.Minutes, nil
	}
	return 0, fmt.Errorf("invalid duration: %s", string(raw))
}
