// Package common provides shared interfaces used throughout filelock.
//
// # Core Components
//
// - Logger: interface defining the logging methods used by the lock and the CLI
// - NopLogger: a Logger that discards everything
//
// # Usage
//
// The Logger interface is injected into components that need logging:
//
//	lk := lock.New(path, lock.WithLogger(log))
//
// Components that are not given a logger fall back to NopLogger, so they never
// need to nil-check.
//
// # Design Principles
//
// - Minimal Dependencies: The common package has no dependencies on other internal packages
// - Interface-Based Design: Favors interfaces over concrete implementations
package common
