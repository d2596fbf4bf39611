// Package app wires configuration, storage, the session and the services into the
// commands of the CLI. Every command opens the database once and closes it once.
package app
