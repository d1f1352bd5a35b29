package security

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	OpsUser         string `envconfig:"OPS_USER"`
	OpsPasswordHash string `envconfig:"OPS_PASSWORD_HASH"` // bcrypt
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}

// Enabled reports whether operational routes require credentials.
func (c Config) Enabled() bool {
	return c.OpsUser != "" && c.OpsPasswordHash != ""
}
