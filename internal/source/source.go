package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nhle/tasks/internal/model"
)

// DefaultFailureMessage is reported by Failure.Error when the server
// supplied no message.
const DefaultFailureMessage = "An error occurred"

// FailureKind distinguishes why a remote operation failed.
type FailureKind int

const (
	// FailureTransport means no usable response was received (connection
	// refused, DNS, timeout, cancelled context, undecodable body).
	FailureTransport FailureKind = iota

	// FailureServer means the service answered with a non-2xx status.
	FailureServer
)

func (k FailureKind) String() string {
	switch k {
	case FailureTransport:
		return "transport"
	case FailureServer:
		return "server"
	default:
		return "unknown"
	}
}

// Failure is the single error type returned by Gateway implementations.
type Failure struct {
	Kind FailureKind

	// Op names the gateway operation, e.g. "list tasks".
	Op string

	// Status is the HTTP status code for server failures, 0 otherwise.
	Status int

	// Message is the server-supplied message, empty when none was sent.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

func (e *Failure) Error() string {
	msg := e.Message
	if msg == "" {
		msg = DefaultFailureMessage
	}
	switch {
	case e.Kind == FailureServer:
		return fmt.Sprintf("%s: server error (%d): %s", e.Op, e.Status, msg)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, msg, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, msg)
	}
}

func (e *Failure) Unwrap() error {
	return e.Err
}

// AsFailure returns the Failure in err's chain, if there is one.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// Gateway is the contract of the remote task service. Every call is a
// single round trip; implementations never retry.
type Gateway interface {
	// ListTasks returns the tasks due on or before maxDueDate, in server order.
	ListTasks(ctx context.Context, maxDueDate time.Time) ([]model.Task, error)

	// CreateTask creates a pending task.
	CreateTask(ctx context.Context, description string, estimatedAt time.Time) error

	// ToggleTask flips the done state of the task on the server.
	ToggleTask(ctx context.Context, id string) error

	// DeleteTask removes the task.
	DeleteTask(ctx context.Context, id string) error
}
