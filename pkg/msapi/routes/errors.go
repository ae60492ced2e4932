package routes

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/quatton/metashare/pkg/mserr"
	"github.com/quatton/metashare/pkg/mslog"
)

// toHTTP maps service errors onto huma status errors. Anything without a
// code is logged and reported as a bare 500.
func toHTTP(logger *mslog.Logger, err error) error {
	if err == nil {
		return nil
	}
	var se huma.StatusError
	if errors.As(err, &se) {
		return err
	}

	var e *mserr.Error
	if !errors.As(err, &e) {
		logger.Error("request failed", "error", err)
		return huma.Error500InternalServerError("internal server error")
	}

	switch e.Code {
	case mserr.CodeUnauthorized:
		return huma.Error401Unauthorized(e.Message())
	case mserr.CodePermissionDenied:
		return huma.Error403Forbidden(e.Message())
	case mserr.CodeNotFound:
		return huma.Error404NotFound(e.Message())
	case mserr.CodeConflict:
		return huma.Error409Conflict(e.Message())
	case mserr.CodeValidation:
		details := make([]error, len(e.Fields))
		for i, f := range e.Fields {
			details[i] = &huma.ErrorDetail{Location: "body." + f.Field, Message: f.Message}
		}
		return huma.Error422UnprocessableEntity("validation failed", details...)
	case mserr.CodeUpstream:
		logger.Warn("upstream failure", "error", err)
		return huma.Error502BadGateway(e.Message())
	default:
		logger.Error("request failed", "error", err)
		return huma.Error500InternalServerError("internal server error")
	}
}
