// Package ports defines the interfaces for external dependencies in our hexagonal architecture.
// These interfaces are implemented by adapters and replaced by test doubles in unit tests.
package ports
