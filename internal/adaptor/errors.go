package adaptor

import (
	"errors"
	"net/http"

	"booking-service/internal/data/entity"
	"booking-service/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError maps service errors to HTTP responses
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, "Not found")

	case errors.Is(err, entity.ErrNoAccess):
		log.Warn(operation+" failed - no access",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, "Access denied")

	case errors.Is(err, entity.ErrUniqueConstraint):
		log.Warn(operation+" failed - conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnprocessable(w, "Request conflicts with the current state")

	case errors.Is(err, entity.ErrValueMissing):
		log.Warn(operation+" failed - bad value",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnprocessable(w, "Missing or unknown value")

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
