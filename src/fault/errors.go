package fault

import (
	"errors"
	"fmt"
)

// ErrEmptyCatalog is returned when no fault names are available to draw from.
var ErrEmptyCatalog = errors.New("fault catalog is empty")

// ErrMalformedRecord is returned by Parse when a payload does not carry all record fields.
var ErrMalformedRecord = errors.New("malformed fault record")

// ConfigurationError reports a pipeline setting that prevents the builder from being wired.
type ConfigurationError struct {
	Setting string
	Err     error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error (%s): %v", e.Setting, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
