package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dsjohal14/mflix/internal/scope/db"
	"github.com/go-chi/chi/v5"
)

// paramKind tells how the id parameter arrived
type paramKind int

const (
	paramAbsent paramKind = iota
	paramSingle
	paramMultiple
)

func (k paramKind) String() string {
	switch k {
	case paramAbsent:
		return "absent"
	case paramSingle:
		return "single"
	case paramMultiple:
		return "multiple"
	default:
		return "unknown"
	}
}

// idParam is the raw id parameter of a request
type idParam struct {
	kind  paramKind
	value string
}

// movieIDParam reads id from the route, falling back to the query string.
// A route value wins over query values, like a dynamic path segment does.
func movieIDParam(r *http.Request) idParam {
	if v := chi.URLParam(r, "id"); v != "" {
		return idParam{kind: paramSingle, value: v}
	}

	values := r.URL.Query()["id"]
	switch len(values) {
	case 0:
		return idParam{kind: paramAbsent}
	case 1:
		return idParam{kind: paramSingle, value: values[0]}
	default:
		return idParam{kind: paramMultiple}
	}
}

// HandleGetMovie returns a single movie by its 24 character hex id
func (h *Handler) HandleGetMovie(w http.ResponseWriter, r *http.Request) {
	param := movieIDParam(r)
	if param.kind != paramSingle {
		h.logger.Debug().Stringer("kind", param.kind).Msg("movie id missing or repeated")
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	id, err := db.ParseID(param.value)
	if err != nil {
		h.logger.Debug().Str("id", param.value).Msg("malformed movie id")
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	movie, err := h.movies.FindByID(r.Context(), id)
	switch {
	case errors.Is(err, db.ErrNotFound):
		h.logger.Debug().Str("id", id.Hex()).Msg("movie not found")
		writeError(w, http.StatusNotFound, msgNotFound)
	case err != nil:
		h.logger.Error().Err(err).Str("id", id.Hex()).Msg("movie lookup failed")
		writeError(w, http.StatusInternalServerError, msgInternalError)
	default:
		h.writeMovie(w, id.Hex(), movie)
	}
}

// writeMovie encodes the record before committing to a status so an
// unencodable record still gets a single 500 response.
func (h *Handler) writeMovie(w http.ResponseWriter, id string, movie db.Record) {
	body, err := json.Marshal(movie)
	if err != nil {
		h.logger.Error().Err(err).Str("id", id).Msg("movie encoding failed")
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	writeRawJSON(w, http.StatusOK, body)
}
