package constants

import "time"

// Request handling
const (
	DefaultRequestTimeout = 30 * time.Second
	DefaultTimeout        = 10 * time.Second
)

// Database pool settings
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Schedule defaults. The operating window and snapping granularity are
// configurable; these are the fallbacks when the config omits them.
const (
	DefaultDayStartHour        = 8
	DefaultDayEndHour          = 19
	DefaultGapThresholdMinutes = 30
	DefaultSnapMinutes         = 5
	DefaultPixelsPerHour       = 60.0
	DefaultDragClickPx         = 5.0

	// MinDurationMinutes is the smallest schedulable unit.
	MinDurationMinutes = 5
)

// Reconciliation
const (
	DefaultReconcileDebounce = 300 * time.Millisecond
)

// Maintenance
const (
	DefaultRetentionDays = 90

	TaskCleanup   = "maintenance:cleanup"
	TaskKeepAlive = "maintenance:keepalive"
)

// Context keys
const (
	ContextRequestID = "request_id"
)
