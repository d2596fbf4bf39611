// Package ncm provides the API gateway to the NetEase Cloud Music service.
//
// Every request is a POST. Paths under /eapi/ are sent through the eapi codec
// as a params form field and their responses decoded by it; other paths are
// sent as plain JSON. The gateway stamps the desktop client headers and the
// current session cookie on each request, and turns failures into *APIError
// values callers can inspect with errors.As.
package ncm
