package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "clinicbook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultDefaultTimezone = "America/Los_Angeles"

	DefaultBookingLockTTL = 10 * time.Second

	// Upper bound on existing bookings fetched per overlap check. A single
	// therapist cannot plausibly have more concurrent-day bookings.
	DefaultOverlapScanLimit = 50

	// Longest date range a single availability query may resolve.
	DefaultMaxRangeDays = 62

	DefaultKafkaBookingTopic = "clinic.booking.events"

	DefaultPaginationLimit = 100
)
