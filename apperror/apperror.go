package apperror

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Error defines a standard application error.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	// Detail is a diagnostic safe to hand back to the caller, e.g. a gateway body.
	Detail any `json:"detail,omitempty"`
	// Wrapped underlying error.
	WrappedErr error `json:"-"`
}

func (e *Error) Error() string {
	var buf bytes.Buffer
	json.NewEncoder(&buf).Encode(struct {
		Kind    Kind   `json:"kind"`
		Message string `json:"message"`
		Cause   string `json:"cause,omitempty"`
	}{e.Kind, e.Message, causeOf(e.WrappedErr)})
	return buf.String()
}

func (e *Error) Unwrap() error {
	return e.WrappedErr
}

// Is matches on kind and message so sentinels survive wrapping with detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

func causeOf(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Kind defines the kind or class of an error.
type Kind uint8

const (
	Other        Kind = iota // Unclassified error
	Internal                 // Internal error
	Invalid                  // Invalid input, validation error etc
	NotFound                 // Entity does not exist
	Unauthorized             // Unauthorized access
	Gateway                  // Upstream payment gateway failed
	Conflict                 // Entity already in a state the request cannot change
)

func (k Kind) String() string {
	switch k {
	case Other:
		return "unclassified error"
	case Internal:
		return "internal error"
	case Invalid:
		return "invalid input"
	case NotFound:
		return "entity not found"
	case Unauthorized:
		return "unauthorized"
	case Gateway:
		return "gateway error"
	case Conflict:
		return "conflict"
	default:
		return "unknown error kind"
	}
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Detail wraps a value that E should store as Error.Detail.
type Detail struct{ Value any }

// E builds an *Error from a kind, a message, a wrapped error and a Detail in any order.
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch arg := arg.(type) {
		case Kind:
			e.Kind = arg
		case error:
			e.WrappedErr = arg
		case string:
			e.Message = arg
		case Detail:
			e.Detail = arg.Value
		}
	}
	return e
}

var (
	InvalidAmount            = &Error{Kind: Invalid, Message: "Invalid payment amount."}
	GatewayInitiationFailure = &Error{Kind: Gateway, Message: "Payment initiation failed"}
	CallbackProcessing       = &Error{Kind: Internal, Message: "Callback internal error"}
)

// KindOf reports the kind of err, Other when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Other
}

func DetailOf(err error) any {
	var e *Error
	if errors.As(err, &e) {
		if e.Detail != nil {
			return e.Detail
		}
		if e.WrappedErr != nil {
			return e.WrappedErr.Error()
		}
	}
	if err != nil {
		return err.Error()
	}
	return nil
}

func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "Internal server error"
}

func HTTPStatus(k Kind) int {
	switch k {
	case Invalid:
		return fiber.StatusBadRequest
	case NotFound:
		return fiber.StatusNotFound
	case Unauthorized:
		return fiber.StatusUnauthorized
	case Conflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
