package controller

import "encoding/json"

// Result is the uniform envelope returned by every controller operation.
// Views inspect Success, Error and Message only; no typed error crosses this
// boundary. Count is set for list-returning operations.
type Result struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}, message string) Result {
	return Result{
		Success: true,
		Data:    data,
		Message: message,
	}
}

// NewList returns a success envelope carrying a sequence and its length.
func NewList(data interface{}, count int, message string) Result {
	return Result{
		Success: true,
		Data:    data,
		Message: message,
		Count:   &count,
	}
}

// NewFailure translates an error into a failure envelope.
func NewFailure(err error) Result {
	if err == nil {
		return Result{Error: "unknown error"}
	}
	return Result{Error: err.Error()}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (r Result) String() string {
	out, err := json.Marshal(r)
	if err != nil {
		return "{}"
	}
	return string(out)
}
