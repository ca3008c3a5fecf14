package request

// DelayedOption controls how the delivery service spreads out a scheduled
// notification across the audience.
type DelayedOption string

const (
	// DelayedLastActive delivers at each user's most recent active time.
	DelayedLastActive DelayedOption = "last-active"
	// DelayedTimeZone delivers at the same local time in every time zone;
	// pair it with DeliveryTimeOfDay.
	DelayedTimeZone DelayedOption = "timezone"
)
