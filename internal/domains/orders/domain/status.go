package domain

import (
	"fmt"
	"strings"
)

// Status enumerates the order lifecycle.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusAccepted   Status = "ACCEPTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCanceled   Status = "CANCELED"
)

// Statuses lists every known status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusPending, StatusAccepted, StatusInProgress, StatusCompleted, StatusCanceled}
}

// ParseStatus matches raw case-insensitively against the closed set and fails on anything else.
func ParseStatus(raw string) (Status, error) {
	candidate := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if candidate.Valid() {
		return candidate, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
}

// ParseStatuses parses a filter list; blanks are skipped and duplicates collapsed.
func ParseStatuses(raw []string) ([]Status, error) {
	seen := map[Status]bool{}
	result := make([]Status, 0, len(raw))
	for _, value := range raw {
		if strings.TrimSpace(value) == "" {
			continue
		}
		status, err := ParseStatus(value)
		if err != nil {
			return nil, err
		}
		if seen[status] {
			continue
		}
		seen[status] = true
		result = append(result, status)
	}
	return result, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusInProgress, StatusCompleted, StatusCanceled:
		return true
	default:
		return false
	}
}

// Terminal reports whether no transition may leave s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

func (s Status) String() string { return string(s) }
