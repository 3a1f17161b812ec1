package outreach

import (
	"errors"
	"fmt"
)

// Kind classifies what went wrong talking to the dashboard.
type Kind int

const (
	// KindUnavailable covers network failures, timeouts and 5xx answers.
	KindUnavailable Kind = iota
	// KindNotFound means upstream explicitly said the entity does not exist.
	KindNotFound
	// KindMalformed means a response parsed but misses the fields that give
	// it meaning.
	KindMalformed
	// KindAmbiguousID means a course slug could not be split into school and
	// title.
	KindAmbiguousID
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindMalformed:
		return "upstream_malformed"
	case KindAmbiguousID:
		return "ambiguous_identifier"
	default:
		return "upstream_unavailable"
	}
}

// Error is the upstream error taxonomy. Resource names the fetched kind
// (user_stats, course, course_users) and Ref the entity it was fetched for.
type Error struct {
	Kind     Kind
	Resource string
	Ref      string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s/%s: %v", e.Kind, e.Resource, e.Ref, e.Err)
	}
	return fmt.Sprintf("%s %s/%s", e.Kind, e.Resource, e.Ref)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an outreach error of the given kind.
func IsKind(err error, kind Kind) bool {
	var oe *Error
	return errors.As(err, &oe) && oe.Kind == kind
}
