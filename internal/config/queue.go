package config

import (
	"fmt"
	"os"
	"time"
)

// QueueConfig holds the RabbitMQ connection settings shared by the
// bookings-service publisher and the reviews-service consumer.  Both sides
// must declare the booking_created queue with identical flags, so the queue
// name itself is fixed in the queue package rather than configured here.
type QueueConfig struct {
	URL            string        // full AMQP URL
	ConnectTimeout time.Duration // bound on dial + publish round trips
}

// LoadQueueConfig builds the broker URL from the environment.  RABBITMQ_URL
// wins when set; otherwise the URL is assembled from RABBITMQ_HOST, which
// defaults to "rabbitmq" (the usual compose service name), on the standard
// port with default credentials.
func LoadQueueConfig() QueueConfig {
	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		url = os.Getenv("AMQP_URL")
	}
	if url == "" {
		host := getenv("RABBITMQ_HOST", "rabbitmq")
		url = fmt.Sprintf("amqp://guest:guest@%s:5672/", host)
	}
	return QueueConfig{
		URL:            url,
		ConnectTimeout: parseDur(getenv("RABBITMQ_CONNECT_TIMEOUT", "5s")),
	}
}
