package handler

import (
	"encoding/json"
	"net/http"
	"todo_api/internal/common"
	"todo_api/internal/common/validate"
	"todo_api/internal/logging"
)

// decodeJSON reads the request body into dst. On malformed JSON it writes the
// 400 envelope itself and reports false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}

func respondValidationErrors(w http.ResponseWriter, errs []validate.FieldError) {
	common.RespondWithJSON(w, http.StatusBadRequest, common.Envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// respondServiceError renders a service error through the status mapping.
// Unexpected errors are logged with full detail and rendered generically
// outside development mode.
func respondServiceError(w http.ResponseWriter, r *http.Request, log logging.Logger, dev bool, err error) {
	status := common.HTTPStatusFromError(err)
	if status == http.StatusInternalServerError {
		log.Error(r.Context(), "unhandled error", "error", err, "path", r.URL.Path)
		if !dev {
			common.RespondWithError(w, status, "Internal Server Error")
			return
		}
	}
	common.RespondWithError(w, status, err.Error())
}
