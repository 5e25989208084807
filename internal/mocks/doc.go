// Package mocks holds shared mock implementations for interfaces that
// several test packages need: the JWT service, the password verifier,
// and the user store. Each mock is a struct with function fields, so a
// test overrides only the methods it cares about. Mocks used by a
// single package stay inline in that package's test files.
package mocks
