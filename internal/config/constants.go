package config

import "time"

// Database connection pool settings
const (
	DBMaxOpenConns    = 10
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 5 * time.Minute
)

// HTTP server timeouts
const (
	ServerRequestTimeout  = 30 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerWriteTimeout    = 30 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Database ping timeout for health checks
const DBPingTimeout = 5 * time.Second

// Migration timeout at startup
const DBMigrateTimeout = 30 * time.Second

// Background job intervals
const CleanupJobInterval = time.Hour

// Session lifetime for the admin token and its cookie
const SessionTTL = 24 * time.Hour

// Request body limits
const (
	MaxJSONBodySize   = 1 << 20  // 1MB
	MaxUploadBodySize = 10 << 20 // 10MB
)
