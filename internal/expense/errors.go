package expense

import "errors"

var (
	// ErrValidation marks a malformed or incomplete request.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized marks a call with no caller identity attached.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrStore marks a failure of the underlying record store.
	ErrStore = errors.New("store failure")
)

// Kind classifies an error returned by the service.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuth
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindStore:
		return "store"
	}

	return "unknown"
}

// KindOf reports which category err belongs to. Nil errors are KindUnknown.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrUnauthorized):
		return KindAuth
	case errors.Is(err, ErrStore):
		return KindStore
	}

	return KindUnknown
}
