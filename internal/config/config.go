package config

import (
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Address         string        `env:"MARKET_ADDRESS" env-default:":8080"`
	LogLevel        string        `env:"MARKET_LOG_LEVEL" env-default:"info"`
	LogFormat       string        `env:"MARKET_LOG_FORMAT" env-default:"console"`
	DispatchTimeout time.Duration `env:"MARKET_DISPATCH_TIMEOUT" env-default:"3s"`

	Redis       RedisConfig
	RateLimiter RateLimiterConfig
	Kafka       KafkaConfig
}

type RedisConfig struct {
	Address           string        `env:"MARKET_REDIS_ADDRESS" env-default:""`
	DB                int           `env:"MARKET_REDIS_DB" env-default:"0"`
	ConnectionTimeout time.Duration `env:"MARKET_REDIS_TIMEOUT" env-default:"2s"`
}

// Enabled reports whether the shared redis limiter should be used; with no
// address the registry falls back to the in-process limiter.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

type RateLimiterConfig struct {
	Post    int64         `env:"MARKET_RATE_POST" env-default:"100"`
	Aggress int64         `env:"MARKET_RATE_AGGRESS" env-default:"100"`
	Window  time.Duration `env:"MARKET_RATE_WINDOW" env-default:"1s"`
}

type KafkaConfig struct {
	Brokers string `env:"MARKET_KAFKA_BROKERS" env-default:""`
	Topic   string `env:"MARKET_KAFKA_TOPIC" env-default:"market.order-events"`
}

func (k KafkaConfig) Enabled() bool {
	return k.Brokers != ""
}

func (k KafkaConfig) BrokerList() []string {
	if k.Brokers == "" {
		return nil
	}

	brokers := strings.Split(k.Brokers, ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
	}

	return brokers
}

// Load reads configuration from path when given, otherwise from the
// environment alone.
func Load(path string) (*Config, error) {
	config := &Config{}

	if path != "" {
		if err := cleanenv.ReadConfig(path, config); err != nil {
			return nil, err
		}
		return config, nil
	}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, err
	}

	return config, nil
}
