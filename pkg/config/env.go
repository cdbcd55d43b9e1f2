package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvDefaultTimezone     = "DEFAULT_TIMEZONE"
	EnvSingleTherapistMode = "SINGLE_THERAPIST_MODE"
	EnvDefaultTherapistID  = "DEFAULT_THERAPIST_ID"

	EnvBookingLockTTL   = "BOOKING_LOCK_TTL"
	EnvOverlapScanLimit = "OVERLAP_SCAN_LIMIT"
	EnvMaxRangeDays     = "MAX_RANGE_DAYS"

	EnvKafkaBrokers      = "KAFKA_BROKERS"
	EnvKafkaBookingTopic = "KAFKA_BOOKING_TOPIC"
	EnvEventsEnabled     = "EVENTS_ENABLED"
)
