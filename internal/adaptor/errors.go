package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"donor-booking/internal/usecase"
	"donor-booking/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps the usecase error taxonomy onto HTTP responses.
// Internal detail is only logged.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	var (
		verr *usecase.ValidationError
		dup  *usecase.DuplicateError
	)

	switch {
	case errors.As(err, &verr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", verr.Fields)

	case errors.Is(err, usecase.ErrSlotConflict):
		log.Warn(operation+" failed - slot conflict", zap.Error(err))
		utils.ResponseBadRequest(w, usecase.ErrSlotConflict.Error(), nil)

	case errors.As(err, &dup):
		log.Warn(operation+" failed - already exists", zap.Error(err))
		utils.ResponseBadRequest(w, dup.Message, map[string]string{dup.Field: dup.Message})

	case errors.Is(err, usecase.ErrAlreadyExists):
		log.Warn(operation+" failed - already exists", zap.Error(err))
		utils.ResponseBadRequest(w, "Account already exists", nil)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrUnauthenticated):
		log.Warn(operation+" failed - unauthenticated", zap.Error(err))
		utils.ResponseUnauthorized(w, "Invalid credentials")

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}
