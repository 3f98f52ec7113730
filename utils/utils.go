package utils

import (
	"net/http"
	"studyhub/globals"

	"github.com/google/uuid"
)

func GetUUID() string {
	return uuid.New().String()
}

// GetEmailFromRequest returns the email claim stored in context by the
// Authenticate middleware, or "" when the request was not authenticated.
func GetEmailFromRequest(r *http.Request) string {
	email, ok := r.Context().Value(globals.EmailKey).(string)
	if !ok {
		return ""
	}
	return email
}
