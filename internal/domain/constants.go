package domain

// Default booking parameters
const (
	// DefaultLockTTLMinutes is how long a reservation lock stays valid
	// before it is treated as expired
	DefaultLockTTLMinutes = 15

	// DefaultSweepWindowDays bounds how far back the settlement sweep looks
	DefaultSweepWindowDays = 7

	// DefaultSweepIntervalMinutes is the period of the background sweep
	DefaultSweepIntervalMinutes = 30

	// DefaultCapacity is the default seat capacity of a time band
	DefaultCapacity = 10
)

// Business validation constants
const (
	MinSlotCapacity = 0
	MaxSlotCapacity = 100

	MaxTempNameLength = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
