package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
	"github.com/cmlabs-hris/senam-dashboard/internal/pkg/senamapi"
	"github.com/cmlabs-hris/senam-dashboard/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// User-facing dashboard, export and upload errors
	var domainErr *senam.Error
	if errors.As(err, &domainErr) {
		switch domainErr.Kind {
		case senam.KindGuard, senam.KindInfo:
			writeError(w, http.StatusBadRequest, domainErr.Code, domainErr.Message)
		case senam.KindNotFound:
			writeError(w, http.StatusNotFound, domainErr.Code, domainErr.Message)
		case senam.KindConflict:
			writeError(w, http.StatusConflict, domainErr.Code, domainErr.Message)
		case senam.KindBackend:
			writeError(w, http.StatusBadGateway, domainErr.Code, domainErr.Message)
		default:
			InternalServerError(w, "An unexpected error occurred")
		}
		return
	}

	// Backend errors that escaped a service
	var apiErr *senamapi.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Message != "":
		BadGateway(w, apiErr.Message)
	case errors.As(err, &apiErr):
		BadGateway(w, "Backend mengembalikan kesalahan")
	case errors.Is(err, senamapi.ErrTransport):
		BadGateway(w, "Backend tidak dapat dihubungi")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
