package core

import "fmt"

// ValidationError describes a level definition the simulation refuses to load.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// ConsistencyError reports an internal invariant violation detected during a frame.
// The frame that produced it is rolled back; the caller decides whether to halt or reset.
type ConsistencyError struct {
	Tick    uint64
	Stage   Stage
	Code    string
	Message string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("consistency [%s] at tick %d in %s: %s", e.Code, e.Tick, e.Stage, e.Message)
}

func inconsistent(code, format string, args ...any) *ConsistencyError {
	return &ConsistencyError{Code: code, Message: fmt.Sprintf(format, args...)}
}
