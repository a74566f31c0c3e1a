package catalog

import "fmt"

// NotFoundError is returned when a lookup names an id absent from the catalog
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// ConfigurationError reports catalog data that cannot be served
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "catalog configuration: " + e.Reason
}

func configErrorf(format string, args ...interface{}) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}
