// Package api implements the HTTP layer of the task board: request
// DTOs and their validation, handlers for auth, boards, columns,
// tasks, and user administration, and the mapping from internal errors
// to status codes and safe client messages. Handlers stay thin; every
// decision about ownership, ordering, and persistence happens in the
// service layer.
package api
