// Package config defines the application's configuration surface: the
// HTTP server, the Postgres connection pool, and the auth parameters
// (JWT secret and lifetimes, bcrypt cost). Values load from defaults,
// an optional config file, and KEEYU_-prefixed environment variables,
// and are validated before anything else starts.
package config
