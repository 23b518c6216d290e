package common

import (
	"encoding/json"
	"errors"
	"net/http"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Errors ValidationErrors `json:"errors"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, MessageResponse{Message: message})
}

// RespondError converts a domain error to its canonical HTTP response.
// Validation failures keep their aggregated field list; store failures are
// reduced to a generic 500 body.
func RespondError(w http.ResponseWriter, err error) {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		RespondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{Errors: verrs})
		return
	}

	code := HTTPStatusFromError(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = ErrInternalServer.Error()
	}
	RespondWithError(w, code, message)
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
