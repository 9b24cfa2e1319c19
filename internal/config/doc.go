// Package config loads application configuration from the environment.
//
// Every setting has a sensible default for local use; CLI flags override the
// environment at the command layer. Validation happens once in Load so the
// rest of the code can trust the values.
package config
