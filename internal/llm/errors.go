package llm

import (
	"errors"
	"fmt"
)

// ErrMissingCredential is wrapped by ConfigurationError when the key source
// resolves to an empty string.
var ErrMissingCredential = errors.New("no API credential configured")

// ConfigurationError reports a missing or invalid credential. It is raised
// before any network call and is never retried.
type ConfigurationError struct {
	Provider string
	err      error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: configuration error: %v", e.Provider, e.err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.err
}

// NewConfigurationError wraps err as a configuration fault for provider.
func NewConfigurationError(provider string, err error) error {
	return &ConfigurationError{Provider: provider, err: err}
}

// ServiceError reports a failed generation call: transport failure, timeout,
// non-success status, or a response without usable content.
type ServiceError struct {
	Provider string
	err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: service error: %v", e.Provider, e.err)
}

func (e *ServiceError) Unwrap() error {
	return e.err
}

// NewServiceError wraps err as a service fault for provider.
func NewServiceError(provider string, err error) error {
	return &ServiceError{Provider: provider, err: err}
}

// IsConfiguration returns true if err is or wraps a ConfigurationError.
func IsConfiguration(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// IsService returns true if err is or wraps a ServiceError.
func IsService(err error) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr)
}
