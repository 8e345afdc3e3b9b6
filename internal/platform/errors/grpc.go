package errors

import (
	"context"
	stderrors "errors"

	"github.com/louisbranch/registrar/internal/platform/errors/i18n"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// HandleError converts err into a gRPC status error. Domain errors keep
// their code and reason string and gain a localized message; context errors
// map to their gRPC equivalents; anything else becomes INTERNAL without
// leaking the cause.
func HandleError(err error, locale string) error {
	if err == nil {
		return nil
	}
	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		if domainErr.Code.Kind() == KindInternal {
			return internalStatus(locale)
		}
		catalog := i18n.GetCatalog(locale)
		return domainErr.ToGRPCStatus(catalog.Locale(), catalog.Format(string(domainErr.Code), domainErr.Metadata))
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case stderrors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case stderrors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	return internalStatus(locale)
}

func internalStatus(locale string) error {
	e := New(CodeInternal, "internal error")
	catalog := i18n.GetCatalog(locale)
	return e.ToGRPCStatus(catalog.Locale(), catalog.Format(string(CodeInternal), nil))
}

// FromGRPCError rebuilds a domain error from a status produced by
// HandleError. Statuses without registry ErrorInfo are returned unchanged.
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	for _, detail := range st.Details() {
		info, ok := detail.(*errdetails.ErrorInfo)
		if !ok || info.GetDomain() != Domain {
			continue
		}
		return &Error{
			Code:     Code(info.GetReason()),
			Message:  st.Message(),
			Metadata: info.GetMetadata(),
			Cause:    err,
		}
	}
	return err
}

// LocalizedMessage returns the LocalizedMessage detail of a status error.
func LocalizedMessage(err error) (locale, message string, ok bool) {
	st, isStatus := status.FromError(err)
	if !isStatus {
		return "", "", false
	}
	for _, detail := range st.Details() {
		if lm, isLM := detail.(*errdetails.LocalizedMessage); isLM {
			return lm.GetLocale(), lm.GetMessage(), true
		}
	}
	return "", "", false
}
