package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/sarmadH97/keeyu-task-board/internal/api/shared"
	"github.com/sarmadH97/keeyu-task-board/internal/domain"
	"github.com/sarmadH97/keeyu-task-board/internal/platform/logger"
	"github.com/sarmadH97/keeyu-task-board/internal/service"
)

// ColumnHandler handles column-related HTTP requests.
type ColumnHandler struct {
	columnService service.ColumnService
	logger        *slog.Logger
	validator     *validator.Validate
}

// NewColumnHandler creates a new ColumnHandler.
func NewColumnHandler(columnService service.ColumnService, logger *slog.Logger) *ColumnHandler {
	if columnService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("columnService cannot be nil for ColumnHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ColumnHandler")
	}

	return &ColumnHandler{
		columnService: columnService,
		logger:        logger.With(slog.String("component", "column_handler")),
		validator:     validator.New(),
	}
}

// Create handles POST /columns requests.
func (h *ColumnHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	actor, ok := getActorFromContext(r)
	if !ok {
		log.Warn("actor not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User identity not found")
		return
	}

	var req CreateColumnRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	column, err := h.columnService.Create(r.Context(), actor, req.BoardID, req.Title)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create column")
		return
	}

	log.Debug("column created",
		slog.String("column_id", column.ID.String()),
		slog.String("board_id", req.BoardID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, columnToResponse(column))
}

// Get handles GET /columns/{id} requests.
func (h *ColumnHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	actor, columnID, ok := handleActorAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	column, err := h.columnService.Get(r.Context(), actor, columnID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get column")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, columnToResponse(column))
}

// Update handles PUT /columns/{id} requests.
func (h *ColumnHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	actor, columnID, ok := handleActorAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateColumnRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	column, err := h.columnService.Rename(r.Context(), actor, columnID, req.Title)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update column")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, columnToResponse(column))
}

// Delete handles DELETE /columns/{id} requests.
func (h *ColumnHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	actor, columnID, ok := handleActorAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.columnService.Delete(r.Context(), actor, columnID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete column")
		return
	}

	log.Debug("column deleted", slog.String("column_id", columnID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// Move handles POST /columns/{id}/move requests. A body with board_id
// set carries the column to another board.
func (h *ColumnHandler) Move(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	actor, columnID, ok := handleActorAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req MoveColumnRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	column, err := h.columnService.Move(r.Context(), actor, columnID, req.BoardID, req.BeforeID, req.AfterID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to move column")
		return
	}

	log.Debug("column moved",
		slog.String("column_id", columnID.String()),
		slog.String("board_id", column.BoardID.String()),
		slog.Int64("position", column.Position))
	shared.RespondWithJSON(w, r, http.StatusOK, columnToResponse(column))
}
