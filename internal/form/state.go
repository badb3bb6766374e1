// internal/form/state.go
package form

import "errors"

// State is the lifecycle position of a Form.
type State int

const (
	// Editing accepts field changes; the submit control is enabled.
	Editing State = iota
	// Submitting means a document write is in flight.
	Submitting
	// Submitted is terminal: the write succeeded.
	Submitted
	// Failed means the last write returned an error. Editing or submitting
	// again leaves this state.
	Failed
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case Submitted:
		return "submitted"
	case Failed:
		return "failed"
	}
	return "unknown"
}

var (
	ErrUnknownField     = errors.New("UNKNOWN_FIELD")
	ErrFormClosed       = errors.New("FORM_ALREADY_SUBMITTED")
	ErrInvalid          = errors.New("APPLICATION_INVALID")
	ErrSubmitInProgress = errors.New("SUBMIT_IN_PROGRESS")
)

// View is a read-only snapshot used to render the form.
type View struct {
	State      State
	Values     map[string]string
	Errors     map[string]string // visible errors only
	DocumentID string
	Failure    string
}
