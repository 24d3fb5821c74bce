package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.DispatchTimeout)

	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Kafka.Enabled())

	assert.Equal(t, int64(100), cfg.RateLimiter.Post)
	assert.Equal(t, int64(100), cfg.RateLimiter.Aggress)
	assert.Equal(t, time.Second, cfg.RateLimiter.Window)
}

func TestKafkaBrokerList(t *testing.T) {
	tests := []struct {
		name     string
		brokers  string
		expected []string
	}{
		{
			name:     "empty",
			brokers:  "",
			expected: nil,
		},
		{
			name:     "single broker",
			brokers:  "localhost:9092",
			expected: []string{"localhost:9092"},
		},
		{
			name:     "spaces around commas are trimmed",
			brokers:  "kafka-1:9092, kafka-2:9092 ,kafka-3:9092",
			expected: []string{"kafka-1:9092", "kafka-2:9092", "kafka-3:9092"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := KafkaConfig{Brokers: test.brokers}
			assert.Equal(t, test.expected, cfg.BrokerList())
		})
	}
}
