package connectors

import (
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	"github.com/IBM/sarama"
	logger "github.com/sirupsen/logrus"
)

var (
	ErrNoBrokers             = errors.New("no kafka brokers configured")
	ErrUnsupportedAcks       = errors.New("unsupported required acks value")
	ErrUnsupportedCodec      = errors.New("unsupported compression codec")
	ErrMissingSASLCredential = errors.New("sasl enabled without user or password")
)

// BrokerList trims the configured bootstrap servers and rejects empty entries.
func BrokerList(raw []string) ([]string, error) {
	brokers := make([]string, 0, len(raw))
	for _, b := range raw {
		b = strings.TrimSpace(b)
		if b == "" {
			return nil, fmt.Errorf("%w: empty entry in KAFKA_BROKERS", ErrNoBrokers)
		}
		brokers = append(brokers, b)
	}
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}
	return brokers, nil
}

func parseRequiredAcks(v string) (sarama.RequiredAcks, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "none", "0":
		return sarama.NoResponse, nil
	case "local", "leader", "1":
		return sarama.WaitForLocal, nil
	case "all", "-1":
		return sarama.WaitForAll, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedAcks, v)
	}
}

func parseCompression(v string) (sarama.CompressionCodec, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "none":
		return sarama.CompressionNone, nil
	case "gzip":
		return sarama.CompressionGZIP, nil
	case "snappy":
		return sarama.CompressionSnappy, nil
	case "lz4":
		return sarama.CompressionLZ4, nil
	case "zstd":
		return sarama.CompressionZSTD, nil
	default:
		return sarama.CompressionNone, fmt.Errorf("%w: %q", ErrUnsupportedCodec, v)
	}
}

// NewSaramaConfig translates the environment settings into a producer configuration.
// Successes and errors are both returned so every message settles on exactly one channel.
func NewSaramaConfig(cfg Config) (*sarama.Config, error) {
	conf := sarama.NewConfig()
	conf.ClientID = cfg.ClientID

	version, err := sarama.ParseKafkaVersion(cfg.Version)
	if err != nil {
		return nil, fmt.Errorf("invalid KAFKA_VERSION: %w", err)
	}
	conf.Version = version

	acks, err := parseRequiredAcks(cfg.RequiredAcks)
	if err != nil {
		return nil, err
	}
	conf.Producer.RequiredAcks = acks

	codec, err := parseCompression(cfg.Compression)
	if err != nil {
		return nil, err
	}
	conf.Producer.Compression = codec

	conf.Producer.Retry.Max = cfg.RetryMax
	conf.Producer.Retry.Backoff = cfg.RetryBackoff
	conf.Producer.Flush.Frequency = cfg.FlushFrequency
	conf.Producer.Return.Successes = true
	conf.Producer.Return.Errors = true
	if cfg.MaxMessageBytes > 0 {
		conf.Producer.MaxMessageBytes = cfg.MaxMessageBytes
	}
	if cfg.ChannelBufferSize > 0 {
		conf.ChannelBufferSize = cfg.ChannelBufferSize
	}

	if cfg.SASLEnable {
		if cfg.SASLUser == "" || cfg.SASLPassword == "" {
			return nil, ErrMissingSASLCredential
		}
		conf.Net.SASL.Enable = true
		conf.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		conf.Net.SASL.User = cfg.SASLUser
		conf.Net.SASL.Password = cfg.SASLPassword
	}

	if cfg.TLSEnable {
		conf.Net.TLS.Enable = true
		conf.Net.TLS.Config = &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: cfg.TLSInsecureSkipVerify, //nolint:gosec // opt-in for local clusters
		}
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid kafka producer config: %w", err)
	}
	return conf, nil
}

// NewAsyncProducer connects to the configured brokers and returns a producer whose
// Successes and Errors channels must be drained by the caller.
func NewAsyncProducer(cfg Config) (sarama.AsyncProducer, error) {
	brokers, err := BrokerList(cfg.Brokers)
	if err != nil {
		return nil, err
	}

	conf, err := NewSaramaConfig(cfg)
	if err != nil {
		return nil, err
	}

	producer, err := sarama.NewAsyncProducer(brokers, conf)
	if err != nil {
		return nil, fmt.Errorf("error building kafka producer: %w", err)
	}

	logger.WithFields(logger.Fields{
		"brokers":  strings.Join(brokers, ","),
		"clientId": cfg.ClientID,
		"version":  conf.Version.String(),
		"acks":     cfg.RequiredAcks,
	}).Info("[connectors] kafka producer connected")

	return producer, nil
}
