// Package service provides application-level services for managing
// users, boards, columns, and tasks. Services own the transaction
// boundaries, enforce ownership, and route reordering through the
// shared engine; stores below them stay free of business rules.
package service
