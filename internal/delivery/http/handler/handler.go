package handler

import (
	"net/http"

	"hospital-scheduling/internal/delivery/http/middleware"
	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// requireActor returns the authenticated caller or writes a 401
func requireActor(w http.ResponseWriter, r *http.Request) (entity.Actor, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
	}
	return actor, ok
}

// uuidVar parses a UUID path variable or writes a 400
func uuidVar(w http.ResponseWriter, r *http.Request, name, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.Error(w, http.StatusBadRequest, message, nil)
		return uuid.Nil, false
	}
	return id, true
}
