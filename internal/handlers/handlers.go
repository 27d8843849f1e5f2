package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"pg-backend/internal/rentcycle"
	"pg-backend/pkg/utils"
)

// pathID reads a numeric path variable. Writes a 400 and returns false on
// garbage input.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		utils.Error(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// queryInt reads an int query parameter with a fallback.
func queryInt(r *http.Request, name string, fallback int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// writeServiceError maps service errors onto HTTP statuses: field validation
// failures are 400, missing rows are 404, everything else is 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var fieldErr *rentcycle.FieldError
	if errors.As(err, &fieldErr) {
		utils.Error(w, http.StatusBadRequest, fieldErr.Error())
		return
	}
	if errors.Is(err, pgx.ErrNoRows) {
		utils.Error(w, http.StatusNotFound, "Not found")
		return
	}
	utils.Error(w, http.StatusInternalServerError, err.Error())
}
