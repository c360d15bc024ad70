package domain

import "slices"

// transitions lists the allowed targets for each non-terminal status.
var transitions = map[Status][]Status{
	StatusPending:    {StatusAccepted, StatusCanceled},
	StatusAccepted:   {StatusInProgress},
	StatusInProgress: {StatusCompleted},
}

// rejections holds the message reported when a non-terminal status is asked to move elsewhere.
var rejections = map[Status]string{
	StatusPending:    "only accept or cancel is possible right now",
	StatusAccepted:   "only progress is possible",
	StatusInProgress: "only completion is possible",
}

// TransitionError describes a rejected status change. It unwraps to ErrInvalidTransition,
// ErrAlreadyCompleted or ErrAlreadyCanceled.
type TransitionError struct {
	From    Status
	To      Status
	message string
	cause   error
}

func (e *TransitionError) Error() string { return e.message }

func (e *TransitionError) Unwrap() error { return e.cause }

// AllowedTransitions returns the statuses reachable from s in one step.
func AllowedTransitions(s Status) []Status {
	return slices.Clone(transitions[s])
}

// CanTransition reports whether from -> to is in the lifecycle table.
func CanTransition(from, to Status) bool {
	return slices.Contains(transitions[from], to)
}

// ValidateTransition checks terminal states first so their messages stay distinct
// from the per-state invalid transition messages.
func ValidateTransition(from, to Status) error {
	switch from {
	case StatusCompleted:
		return &TransitionError{From: from, To: to, message: ErrAlreadyCompleted.Error(), cause: ErrAlreadyCompleted}
	case StatusCanceled:
		return &TransitionError{From: from, To: to, message: ErrAlreadyCanceled.Error(), cause: ErrAlreadyCanceled}
	}
	if CanTransition(from, to) {
		return nil
	}
	message, ok := rejections[from]
	if !ok {
		message = ErrInvalidTransition.Error()
	}
	return &TransitionError{From: from, To: to, message: message, cause: ErrInvalidTransition}
}
