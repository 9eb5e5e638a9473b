package topology

import "fmt"

// ConfigurationError is returned when a topology or the overrides applied
// to it are invalid, errors of this kind are fatal and are not retried
type ConfigurationError struct {
	Detail string
	Err    error
}

func (e ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid configuration: %s: %s", e.Detail, e.Err)
	}

	return fmt.Sprintf("invalid configuration: %s", e.Detail)
}

func (e ConfigurationError) Unwrap() error {
	return e.Err
}

func invalidConfig(format string, args ...interface{}) ConfigurationError {
	return ConfigurationError{Detail: fmt.Sprintf(format, args...)}
}
