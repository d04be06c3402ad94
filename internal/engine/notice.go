package engine

import (
	"errors"

	"github.com/nhle/tasks/internal/source"
)

// ErrDescriptionRequired is the cause of the notice returned when a task is
// added with a blank description.
var ErrDescriptionRequired = errors.New("description not provided")

// GenericFailureMessage is shown when a remote failure carries no message.
const GenericFailureMessage = "An error occurred while performing the operation"

// NoticeKind classifies a Notice.
type NoticeKind int

const (
	// NoticeValidation reports input rejected before any network call.
	NoticeValidation NoticeKind = iota + 1

	// NoticeRemote reports a failed round trip to the task service.
	NoticeRemote
)

// Notice is the user-facing outcome of a failed intent. It also satisfies
// error so headless callers can return it directly.
type Notice struct {
	Kind    NoticeKind
	Title   string
	Message string

	// Err is the underlying cause.
	Err error
}

func (n *Notice) Error() string {
	return n.Title + ": " + n.Message
}

func (n *Notice) Unwrap() error {
	return n.Err
}

func validationNotice() *Notice {
	return &Notice{
		Kind:    NoticeValidation,
		Title:   "Invalid data",
		Message: ErrDescriptionRequired.Error(),
		Err:     ErrDescriptionRequired,
	}
}

// remoteNotice prefers the server-supplied message and falls back to the
// generic one.
func remoteNotice(err error) *Notice {
	msg := GenericFailureMessage
	if f, ok := source.AsFailure(err); ok && f.Message != "" {
		msg = f.Message
	}
	return &Notice{
		Kind:    NoticeRemote,
		Title:   "Something went wrong",
		Message: msg,
		Err:     err,
	}
}
