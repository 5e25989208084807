package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/sarmadH97/keeyu-task-board/internal/api/shared"
	"github.com/sarmadH97/keeyu-task-board/internal/domain"
	"github.com/sarmadH97/keeyu-task-board/internal/service"
	"github.com/sarmadH97/keeyu-task-board/internal/service/auth"
	"github.com/sarmadH97/keeyu-task-board/internal/service/reorder"
	"github.com/sarmadH97/keeyu-task-board/internal/store"
)

// MapErrorToStatusCode picks the HTTP status for an internal error.
// Unrecognized errors fall through to 500 so nothing internal leaks
// under a misleading code.
func MapErrorToStatusCode(err error) int {
	var validationErr *domain.ValidationError

	switch {
	// Failed token checks, wherever they surface.
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Ownership denials.
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Missing entities, including a move whose subject disappeared.
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, reorder.ErrEntityNotFound):
		return http.StatusNotFound

	// Conflicts. Position allocation failures and transaction
	// conflicts land here too: the client's view of the board is stale
	// and the fix is to refetch and redo the drag.
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrTransactionConflict),
		errors.Is(err, reorder.ErrNoPosition):
		return http.StatusConflict

	// Client mistakes in the request body or in move references.
	case errors.Is(err, reorder.ErrNeighborNotFound),
		errors.Is(err, reorder.ErrNeighborWrongScope),
		errors.Is(err, reorder.ErrNeighborIsSelf),
		errors.Is(err, reorder.ErrNeighborsEqual),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		isEntityValidationError(err),
		errors.As(err, &validationErr):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// entityValidationErrors are the domain sentinels raised when entity
// fields fail validation at construction or update.
var entityValidationErrors = []error{
	domain.ErrBoardTitleEmpty,
	domain.ErrBoardTitleTooLong,
	domain.ErrColumnTitleEmpty,
	domain.ErrColumnTitleTooLong,
	domain.ErrTaskTitleEmpty,
	domain.ErrTaskTitleTooLong,
	domain.ErrTaskDescriptionTooLong,
	domain.ErrInvalidEmail,
	domain.ErrEmptyEmail,
	domain.ErrPasswordTooShort,
	domain.ErrPasswordTooLong,
	domain.ErrEmptyPassword,
	domain.ErrInvalidRole,
}

func isEntityValidationError(err error) bool {
	for _, sentinel := range entityValidationErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// GetSafeErrorMessage translates an internal error into text safe to
// show a client. Anything unrecognized collapses into a generic
// message so database and driver details never reach the response.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// All access token failures read the same to the client. Which
	// check failed is logged, not returned.
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"

	case errors.Is(err, service.ErrNotOwned):
		return "You do not have access to this resource"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrBoardNotFound):
		return "Board not found"

	case errors.Is(err, store.ErrColumnNotFound):
		return "Column not found"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, reorder.ErrEntityNotFound):
		return "Item to move not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrTransactionConflict):
		return "The board changed while saving, refresh and retry"

	case errors.Is(err, reorder.ErrNoPosition):
		return "Could not place the item, refresh the board and retry"

	case errors.Is(err, reorder.ErrNeighborNotFound):
		return "Neighbor item not found"

	case errors.Is(err, reorder.ErrNeighborWrongScope):
		return "Neighbor item is in a different location"

	case errors.Is(err, reorder.ErrNeighborIsSelf):
		return "Item cannot neighbor itself"

	case errors.Is(err, reorder.ErrNeighborsEqual):
		return "Before and after references must differ"

	case errors.Is(err, domain.ErrBoardTitleEmpty),
		errors.Is(err, domain.ErrColumnTitleEmpty),
		errors.Is(err, domain.ErrTaskTitleEmpty):
		return "Title cannot be empty"

	case errors.Is(err, domain.ErrBoardTitleTooLong),
		errors.Is(err, domain.ErrColumnTitleTooLong),
		errors.Is(err, domain.ErrTaskTitleTooLong):
		return "Title is too long"

	case errors.Is(err, domain.ErrTaskDescriptionTooLong):
		return "Description is too long"

	case errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrEmptyEmail):
		return "Invalid email address"

	case errors.Is(err, domain.ErrPasswordTooShort):
		return "Password must be at least 12 characters"

	case errors.Is(err, domain.ErrPasswordTooLong):
		return "Password must be at most 72 characters"

	case errors.Is(err, domain.ErrEmptyPassword):
		return "Password cannot be empty"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"

	case errors.Is(err, domain.ErrValidation):
		return "Validation failed"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps err to a status code and safe message and writes
// the JSON error response. defaultMsg overrides the generic message for
// unexpected (5xx) errors so handlers can name the failed operation.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)

	var message string
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		message = fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)
	case status >= http.StatusInternalServerError && defaultMsg != "":
		message = defaultMsg
	default:
		message = GetSafeErrorMessage(err)
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError turns a request validation failure into a
// client-facing message naming the offending field and nothing else.
// Errors that did not come from the request validator get a generic
// message.
func SanitizeValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "Validation error"
	}

	// Report the first failed field; one correction at a time is
	// enough to steer the client.
	fe := fieldErrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), validationTagMessage(fe.Tag()))
}

// validationTagMessage maps a validator tag to client-facing wording.
func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "uuid":
		return "invalid identifier"
	case "oneof":
		return "invalid value"
	}
	return "validation failed"
}
