package fire

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	TargetURL string        `envconfig:"FIRE_TARGET_URL" default:"http://localhost:8080/throwRandomException"`
	Count     int           `envconfig:"FIRE_COUNT" default:"1"`
	Interval  time.Duration `envconfig:"FIRE_INTERVAL" default:"0s"`
	Timeout   time.Duration `envconfig:"FIRE_TIMEOUT" default:"5s"`
}

func GetConfig() *Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return &config
}
