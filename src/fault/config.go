package fault

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Topic string `envconfig:"FAULT_TOPIC" default:"exception-topic"`
	// nil when FAULT_CATALOG is unset, so the built-in catalog applies
	Catalog *string `envconfig:"FAULT_CATALOG"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}

// ResolveCatalog returns the configured catalog, or the built-in one when none is set.
// An explicitly configured catalog without any usable name is a ConfigurationError.
func (c Config) ResolveCatalog() ([]string, error) {
	if c.Catalog == nil {
		return DefaultCatalog(), nil
	}
	names := ParseCatalog(*c.Catalog)
	if len(names) == 0 {
		return nil, &ConfigurationError{Setting: "FAULT_CATALOG", Err: ErrEmptyCatalog}
	}
	return names, nil
}
