package kafka_config

import "time"

const (
	DefaultKafkaBrokers = "localhost:9092"

	DefaultBookingsTopic    = "roombook.bookings"
	DefaultBookingsDLQTopic = "roombook.bookings.dlq"

	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerWriteTimeout = 5 * time.Second
	DefaultProducerRequireAcks  = -1
	DefaultProducerCompression  = "snappy"
	// Events are keyed by room id, so hashing keeps one room's lifecycle in order.
	DefaultProducerBalancer = BalancerHash
	DefaultProducerAsync    = false

	DefaultLogMessages = true
)

const (
	BalancerHash       = "hash"
	BalancerRoundRobin = "round_robin"
	BalancerLeastBytes = "least_bytes"
)
