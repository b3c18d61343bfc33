package errors

import "fmt"

// UnexpectedResponseError reports a Management API status code outside
// the set the operation accepts. The raw response body is carried along
// so callers can surface the server's own explanation.
type UnexpectedResponseError struct {
	Method     string
	URI        string
	StatusCode int
	Body       string
}

func (e *UnexpectedResponseError) Error() string {
	if len(e.Body) > 0 {
		return fmt.Sprintf("unexpected response %d from %s %s: %s", e.StatusCode, e.Method, e.URI, e.Body)
	}
	return fmt.Sprintf("unexpected response %d from %s %s", e.StatusCode, e.Method, e.URI)
}

// ValidationError reports a value a constrained field refuses before
// any request is sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type ResourceNotFoundError struct {
	ResourceType string
	ResourceId   string
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.ResourceType, e.ResourceId)
}
