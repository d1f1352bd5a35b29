package publisher

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HandoffTimeout      time.Duration `envconfig:"PUBLISH_HANDOFF_TIMEOUT" default:"50ms"`
	JournalWriteTimeout time.Duration `envconfig:"JOURNAL_WRITE_TIMEOUT" default:"2s"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
