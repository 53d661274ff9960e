package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "habitlit"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/habitlit/habitlit.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// StorageKey names the blob holding the serialized habit collection.
	StorageKey = "habits_v3"

	// StreakWindowDays caps how far back a streak is counted, today included.
	StreakWindowDays = 365

	// Environment variables
	EnvConfig       = "HABITLIT_CONFIG"
	EnvDebug        = "HABITLIT_DEBUG"
	EnvDBConnection = "HABITLIT_DB_CONNECTION"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitlit-"
	BackupFileSuffix = ".json"

	// Lock constants
	LockfileSuffix = ".lock"

	// Redis constants
	RedisKeyPrefix   = "habitlit:"
	RedisPingTimeout = 5 * time.Second
)

// Session States
const (
	StateToday SessionState = iota
	StateMonth
	StateAddHabit
	StateConfirmDelete
)
