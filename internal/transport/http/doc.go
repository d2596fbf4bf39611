// Package http provides the RoundTripper chain used by the API gateway:
// desktop-client header injection (identity cookie, origin, user-agent)
// read fresh on every request, and debug-level request/response dumps.
package http
