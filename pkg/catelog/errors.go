package catelog

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")
var ErrNoPendingRemoval = errors.New("album removal was not confirmed")
var ErrNotOnRoute = errors.New("screen is not on the navigation stack")

// FetchError is returned by the gateway for every failed request: transport
// errors, non-2xx responses and payloads that could not be decoded.
type FetchError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: GET %s: status %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: GET %s: %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// DecodeError reports a response payload that does not match the expected
// shape. Field is empty when the payload is not valid JSON at all.
type DecodeError struct {
	Op    string
	Index int
	Field string
	Msg   string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decode %s: %s", e.Op, e.Msg)
	}
	return fmt.Sprintf("decode %s: item %d: field '%s': %s", e.Op, e.Index, e.Field, e.Msg)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
