package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/hongminglow/financas-be/internal/middleware"
	"github.com/hongminglow/financas-be/internal/service"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a JSON body into v. An empty body is accepted when
// optional is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, optional bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || (optional && errors.Is(err, io.EOF)) {
		return nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &service.ValidationError{Message: "request body too large"}
	}
	return &service.ValidationError{Message: "invalid JSON payload: " + err.Error()}
}

// owner is the authenticated user every record query is scoped to.
func owner(r *http.Request) string {
	return middleware.UserID(r.Context())
}
