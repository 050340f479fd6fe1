// Package constants provides shared constants used throughout the bankrot codebase.
// This includes timeouts, retry parameters, paging limits, file permissions and
// placeholder values that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the overall timeout for a single upstream request
	DefaultHTTPTimeout = 45 * time.Second

	// DialTimeout is the timeout for establishing network connections
	DialTimeout = 15 * time.Second

	// KeepAliveInterval is the interval between keep-alive probes
	KeepAliveInterval = 30 * time.Second

	// ShutdownTimeout bounds the cleanup work after a failed command
	ShutdownTimeout = 5 * time.Second
)

// Retry constants define the resilient fetch policy
const (
	// MaxAttempts is the number of attempts made for a blocked or transient request
	MaxAttempts = 5

	// RetryBackoff is the initial wait before the second attempt
	RetryBackoff = 1200 * time.Millisecond

	// BackoffFactor is the multiplicative growth of the wait between attempts
	BackoffFactor = 1.8

	// MaxRetryBackoff is the ceiling for the wait between attempts
	MaxRetryBackoff = 15 * time.Second

	// BodyHeadLength is how much of a response body is kept for diagnostics
	BodyHeadLength = 200
)

// Paging constants define the batch driver defaults
const (
	// DefaultPageSize is the number of list items requested per page
	DefaultPageSize = 15

	// DefaultTarget is the default number of records harvested per entity kind
	DefaultTarget = 300

	// DefaultRequestDelay is the minimum spacing between upstream requests
	DefaultRequestDelay = 200 * time.Millisecond

	// AuxiliaryPageSize is the page size used when only a count is needed
	AuxiliaryPageSize = 1
)

// Cache constants
const (
	// CacheTTL is the default time-to-live for cached response bodies
	CacheTTL = 10 * time.Minute

	// CacheCleanupInterval is how often expired cache entries are removed
	CacheCleanupInterval = 5 * time.Minute
)

// Search constants
const (
	// MaxSearchDepth bounds recursion in deep payload search
	MaxSearchDepth = 64
)

// Placeholder values written into records when data is unavailable
const (
	// NotAvailable marks an unknown count or date
	NotAvailable = "н/д"

	// StatusActive is the case status for an open proceeding
	StatusActive = "Активно"

	// StatusFinished is the case status for a closed proceeding
	StatusFinished = "Завершено"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Format constants
const (
	// DisplayDateFormat is the layout of every date written into a record
	DisplayDateFormat = "02.01.2006"

	// ISODateFormat is the layout of upstream calendar dates
	ISODateFormat = "2006-01-02"

	// OutputFilePrefix is the prefix of generated workbook names
	OutputFilePrefix = "fedresurs_debtors_"
)
