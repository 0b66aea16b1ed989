package apperrors

import (
	"net/http"
	"strings"
)

// MapError converts a technical error into a user-friendly AppError.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := err.(*AppError); ok {
		return appErr
	}

	technicalMessage := err.Error()

	switch {
	case strings.Contains(technicalMessage, "feed"):
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgFeedUnavailable,
			Code:             ErrCodeFeedUnavailable,
			HTTPStatus:       http.StatusServiceUnavailable,
			OriginalError:    err,
		}
	case strings.Contains(technicalMessage, "geocod"):
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgResolutionFailed,
			Code:             ErrCodeResolutionFailed,
			HTTPStatus:       http.StatusBadGateway,
			OriginalError:    err,
		}
	case strings.Contains(technicalMessage, "required"):
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgInvalidSearch,
			Code:             ErrCodeInvalidSearch,
			HTTPStatus:       http.StatusBadRequest,
			OriginalError:    err,
		}
	default:
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgInternalError,
			Code:             ErrCodeInternalError,
			HTTPStatus:       http.StatusInternalServerError,
			OriginalError:    err,
		}
	}
}
