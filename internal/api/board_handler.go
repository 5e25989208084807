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

// BoardHandler handles board-related HTTP requests.
type BoardHandler struct {
	boardService service.BoardService
	logger       *slog.Logger
	validator    *validator.Validate
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(boardService service.BoardService, logger *slog.Logger) *BoardHandler {
	if boardService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("boardService cannot be nil for BoardHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for BoardHandler")
	}

	return &BoardHandler{
		boardService: boardService,
		logger:       logger.With(slog.String("component", "board_handler")),
		validator:    validator.New(),
	}
}

// Create handles POST /boards requests.
func (h *BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	actor, ok := getActorFromContext(r)
	if !ok {
		log.Warn("actor not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User identity not found")
		return
	}

	var req CreateBoardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	board, err := h.boardService.Create(r.Context(), actor, req.Title)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create board")
		return
	}

	log.Debug("board created",
		slog.String("board_id", board.ID.String()),
		slog.String("user_id", actor.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, boardToResponse(board))
}

// List handles GET /boards requests. It returns the authenticated
// user's boards ordered by position.
func (h *BoardHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	actor, ok := getActorFromContext(r)
	if !ok {
		log.Warn("actor not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User identity not found")
		return
	}

	boards, err := h.boardService.List(r.Context(), actor)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list boards")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, boardsToResponse(boards))
}

// Get handles GET /boards/{id} requests. The response is the full
// board view: columns and tasks included, ordered for display.
func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	actor, boardID, ok := handleActorAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	contents, err := h.boardService.GetWithContents(r.Context(), actor, boardID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get board")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, boardContentsToResponse(contents))
}

// Update handles PUT /boards/{id} requests.
func (h *BoardHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	actor, boardID, ok := handleActorAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateBoardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	board, err := h.boardService.Rename(r.Context(), actor, boardID, req.Title)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update board")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, boardToResponse(board))
}

// Delete handles DELETE /boards/{id} requests.
func (h *BoardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	actor, boardID, ok := handleActorAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.boardService.Delete(r.Context(), actor, boardID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete board")
		return
	}

	log.Debug("board deleted", slog.String("board_id", boardID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// Move handles POST /boards/{id}/move requests. The body names the
// intended neighbors; the response carries the board's new position.
func (h *BoardHandler) Move(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	actor, boardID, ok := handleActorAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req MoveBoardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	board, err := h.boardService.Move(r.Context(), actor, boardID, req.BeforeID, req.AfterID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to move board")
		return
	}

	log.Debug("board moved",
		slog.String("board_id", boardID.String()),
		slog.Int64("position", board.Position))
	shared.RespondWithJSON(w, r, http.StatusOK, boardToResponse(board))
}
