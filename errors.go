package spherepack

import (
	"errors"
	"fmt"
)

// ErrDegenerateQuadratic is returned by the contact time solver when both
// the quadratic and linear terms of the contact equation vanish.
var ErrDegenerateQuadratic = errors.New(
	"spherepack: contact equation has no quadratic or linear term",
)

// ConfigurationError reports a setup which cannot produce a valid packing.
// These errors are fatal.
type ConfigurationError struct {
	Field, Reason string
}

func (err *ConfigurationError) Error() string {
	if err.Field == "" {
		return fmt.Sprintf("Invalid configuration: %s.", err.Reason)
	}
	return fmt.Sprintf("Invalid '%s' value: %s.", err.Field, err.Reason)
}

func configErr(field, format string, args ...interface{}) error {
	return &ConfigurationError{field, fmt.Sprintf(format, args...)}
}
