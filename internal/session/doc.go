// Package session holds the authentication cookie set of the process.
//
// Store is the single writer-visible source of identity: the HTTP gateway reads
// the cookie header from it on every request, and observers registered with
// Subscribe (the audio engine link) are told about every change.
package session
