package constants

const (
	AppName            = "planweave"
	Version            = "v0.3.0"
	DefaultConfigPath  = "~/.config/planweave/planweave.db"
	DefaultKeyringUser = "database-connection"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Scheduling defaults
	DefaultDayStart    = "07:00"
	DefaultDayEnd      = "22:00"
	DefaultDurationMin = 30

	// SlotStepMin is the allocation scan resolution. It is a fixed
	// resolution/performance trade-off, not a tunable setting.
	SlotStepMin = 15

	// Augmentation defaults
	DefaultAugmentTimeoutSec = 10

	// Lockfile constants
	LockfileSuffix = ".lock"

	// Unscheduled reasons. These strings are part of the allocator's
	// output contract and must not be reworded casually.
	ReasonNoSlotInWindow = "no slot in preferred window"
	ReasonDayFullyBooked = "day fully booked"
)
