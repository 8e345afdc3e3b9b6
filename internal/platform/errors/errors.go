package errors

import (
	stderrors "errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
)

// Domain tags ErrorInfo details produced by this module so clients can tell
// registry failures apart from transport ones.
const Domain = "github.com/louisbranch/registrar"

// Error is a registry failure: a stable Code, the English reason callers
// see in logs and status messages, and optional template metadata.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error with the same code, so errors.Is works against the
// sentinel-like values returned by New.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

// Kind returns the taxonomy bucket of the error code.
func (e *Error) Kind() Kind {
	return e.Code.Kind()
}

// New returns an error with a code and reason.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithMetadata returns an error whose metadata fills the localized template.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

// Wrap returns an error that keeps cause in its chain.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// GetCode returns the code of the first *Error in err's chain, or
// CodeUnknown.
func GetCode(err error) Code {
	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeUnknown
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// KindOf returns the taxonomy bucket of err, or KindInternal.
func KindOf(err error) Kind {
	return GetCode(err).Kind()
}

// ToGRPCStatus renders e as a status whose message is the reason and whose
// details carry ErrorInfo (code, metadata) plus the message translated for
// locale. If the details cannot be attached the bare status is returned.
func (e *Error) ToGRPCStatus(locale string, userMessage string) error {
	base := status.New(e.Code.GRPCCode(), e.Message)
	info := &errdetails.ErrorInfo{Reason: string(e.Code), Domain: Domain, Metadata: e.Metadata}
	localized := &errdetails.LocalizedMessage{Locale: locale, Message: userMessage}
	if detailed, err := base.WithDetails(info, localized); err == nil {
		return detailed.Err()
	}
	return base.Err()
}
