package models

type PlannerMode string

const (
	PlannerBuiltin   PlannerMode = "builtin"
	PlannerAugmented PlannerMode = "augmented"
)

// Settings represents application-wide scheduling preferences
type Settings struct {
	DayStart          string      `json:"day_start"`                     // the time the day starts, e.g. "07:00"
	DayEnd            string      `json:"day_end"`                       // the time the day ends, e.g. "22:00"
	LunchStart        string      `json:"lunch_start,omitempty"`         // start of the reserved lunch break, empty to disable
	LunchDurationMin  int         `json:"lunch_duration_min,omitempty"`  // lunch length in minutes, 0 to disable
	Timezone          string      `json:"timezone"`                      // IANA timezone name, or "Local" for system timezone
	PlannerMode       PlannerMode `json:"planner_mode"`                  // builtin or augmented
	AugmentURL        string      `json:"augment_url,omitempty"`         // external scheduling service endpoint
	AugmentTimeoutSec int         `json:"augment_timeout_sec,omitempty"` // timeout applied to augmentation calls
}
