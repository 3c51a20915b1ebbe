// Package types defines the Task entity, the Persister interface, the
// configuration model, and the standard errors shared by the todo store,
// its persistence backends, and the presentation layers.
package types
