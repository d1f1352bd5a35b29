package connectors

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Brokers           []string      `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	ClientID          string        `envconfig:"KAFKA_CLIENT_ID" default:"fault-producer"`
	Version           string        `envconfig:"KAFKA_VERSION" default:"2.8.0"`
	RequiredAcks      string        `envconfig:"KAFKA_REQUIRED_ACKS" default:"local"` // none | local | all
	RetryMax          int           `envconfig:"KAFKA_RETRY_MAX" default:"3"`
	RetryBackoff      time.Duration `envconfig:"KAFKA_RETRY_BACKOFF" default:"100ms"`
	Compression       string        `envconfig:"KAFKA_COMPRESSION" default:"none"` // none | gzip | snappy | lz4 | zstd
	FlushFrequency    time.Duration `envconfig:"KAFKA_FLUSH_FREQUENCY" default:"0s"`
	ChannelBufferSize int           `envconfig:"KAFKA_CHANNEL_BUFFER_SIZE" default:"256"`
	MaxMessageBytes   int           `envconfig:"KAFKA_MAX_MESSAGE_BYTES" default:"1000000"`

	SASLEnable   bool   `envconfig:"KAFKA_SASL_ENABLE" default:"false"`
	SASLUser     string `envconfig:"KAFKA_SASL_USER"`
	SASLPassword string `envconfig:"KAFKA_SASL_PASSWORD"`

	TLSEnable             bool `envconfig:"KAFKA_TLS_ENABLE" default:"false"`
	TLSInsecureSkipVerify bool `envconfig:"KAFKA_TLS_INSECURE_SKIP_VERIFY" default:"false"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
