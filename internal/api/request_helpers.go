package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sarmadH97/keeyu-task-board/internal/api/shared"
	"github.com/sarmadH97/keeyu-task-board/internal/domain"
	"github.com/sarmadH97/keeyu-task-board/internal/platform/logger"
	"github.com/sarmadH97/keeyu-task-board/internal/service"
)

// getActorFromContext builds the acting identity from the values the
// authentication middleware placed in the request context.
//
// Returns:
//   - (service.Actor, true): the actor if both ID and role were present
//   - (service.Actor{}, false): a zero actor if either was missing
func getActorFromContext(r *http.Request) (service.Actor, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return service.Actor{}, false
	}

	role, ok := r.Context().Value(shared.UserRoleContextKey).(domain.Role)
	if !ok || !role.Valid() {
		return service.Actor{}, false
	}

	return service.Actor{ID: userID, Role: role}, true
}

// getPathUUID reads the named URL path parameter as a UUID.
//
// Returns:
//   - (uuid.UUID, nil): the parsed UUID
//   - (uuid.Nil, error): a ValidationError naming the parameter when it
//     is missing or malformed
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// handleActorAndPathUUID is a composite helper that extracts the acting
// identity from the context and a UUID from the path parameters. It
// writes an error response if either extraction fails.
//
// Returns:
//   - (actor, pathID, true): both values if extraction succeeded
//   - (service.Actor{}, uuid.Nil, false): zero values if an error response was written
func handleActorAndPathUUID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (service.Actor, uuid.UUID, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	actor, ok := getActorFromContext(r)
	if !ok {
		log.Warn("actor not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User identity not found")
		return service.Actor{}, uuid.Nil, false
	}

	pathID, err := getPathUUID(r, paramName)
	if err != nil {
		log.Warn("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return service.Actor{}, uuid.Nil, false
	}

	return actor, pathID, true
}
