package apperrors

import "fmt"

// ErrNotFound represents an error when a requested resource is not found.
type ErrNotFound struct {
	Resource string
	ID       interface{}
}

// Error implements the error interface.
func (e *ErrNotFound) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("%s with ID %v not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is allows for error checking with errors.Is().
func (e *ErrNotFound) Is(target error) bool {
	_, ok := target.(*ErrNotFound)
	return ok
}

// NewNotFoundError creates a new ErrNotFound.
func NewNotFoundError(resource string, id interface{}) *ErrNotFound {
	return &ErrNotFound{
		Resource: resource,
		ID:       id,
	}
}

// ErrUpstreamStatus is returned when an upstream service answers with a non-200 status.
// Body holds the raw upstream response text so it can be relayed to the caller.
type ErrUpstreamStatus struct {
	Service    string
	URL        string
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *ErrUpstreamStatus) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Service, e.StatusCode)
}

// Is allows for error checking with errors.Is().
func (e *ErrUpstreamStatus) Is(target error) bool {
	_, ok := target.(*ErrUpstreamStatus)
	return ok
}

// NewUpstreamStatusError creates a new ErrUpstreamStatus.
func NewUpstreamStatusError(service, url string, statusCode int, body string) *ErrUpstreamStatus {
	return &ErrUpstreamStatus{
		Service:    service,
		URL:        url,
		StatusCode: statusCode,
		Body:       body,
	}
}

// ErrMissingAPIKey is returned when a provider requiring an API key has none configured.
type ErrMissingAPIKey struct {
	Variable string
}

// Error implements the error interface.
func (e *ErrMissingAPIKey) Error() string {
	return fmt.Sprintf("%s not set in environment", e.Variable)
}

// Is allows for error checking with errors.Is().
func (e *ErrMissingAPIKey) Is(target error) bool {
	_, ok := target.(*ErrMissingAPIKey)
	return ok
}

// ErrInvalidParameter is returned when a request parameter fails validation.
type ErrInvalidParameter struct {
	Name   string
	Value  string
	Reason string
}

// Error implements the error interface.
func (e *ErrInvalidParameter) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid parameter %s: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("invalid parameter %s=%q: %s", e.Name, e.Value, e.Reason)
}

// Is allows for error checking with errors.Is().
func (e *ErrInvalidParameter) Is(target error) bool {
	_, ok := target.(*ErrInvalidParameter)
	return ok
}

// NewInvalidParameterError creates a new ErrInvalidParameter.
func NewInvalidParameterError(name, value, reason string) *ErrInvalidParameter {
	return &ErrInvalidParameter{
		Name:   name,
		Value:  value,
		Reason: reason,
	}
}
