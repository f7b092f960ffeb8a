package constants

// Session / context keys
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
)

// Auth limits
const (
	MinPasswordLength = 8
)

// Provisioning code sizes (bytes of entropy before encoding)
const (
	CustomLinkBytes    = 8
	DeveloperCodeBytes = 4
)

// Event channel used by the Redis notification sink
const EventChannel = "devboard.events"
