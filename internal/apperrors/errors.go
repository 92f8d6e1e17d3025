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

// NewShowNotFoundError creates the error returned when TVmaze does not know a show ID.
func NewShowNotFoundError(showID int) *ErrNotFound {
	return &ErrNotFound{
		Resource: "show",
		ID:       showID,
	}
}

// ErrNetwork is returned when the TVmaze API cannot be reached after all retries.
type ErrNetwork struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *ErrNetwork) Error() string {
	return fmt.Sprintf("network error requesting %s: %v", e.URL, e.Err)
}

// Unwrap exposes the underlying transport error.
func (e *ErrNetwork) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ErrNetwork) Is(target error) bool {
	_, ok := target.(*ErrNetwork)
	return ok
}

// ErrUnexpectedStatus is returned when TVmaze answers with a non-success status code.
type ErrUnexpectedStatus struct {
	URL        string
	StatusCode int
}

// Error implements the error interface.
func (e *ErrUnexpectedStatus) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}

// Is allows for error checking with errors.Is().
func (e *ErrUnexpectedStatus) Is(target error) bool {
	_, ok := target.(*ErrUnexpectedStatus)
	return ok
}

// Retryable reports whether a later attempt could succeed.
func (e *ErrUnexpectedStatus) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
