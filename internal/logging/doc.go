// Package logging provides a unified logging interface for bigfact.
// It abstracts the underlying zerolog implementation so components can log
// structured events without depending on a concrete backend.
package logging
