// Package eapi implements the encrypted request convention of the music service API.
//
// Requests to paths under /eapi/ carry a single form field, params, holding an
// AES-128-ECB token built from the plain /api/ path, the JSON payload and an MD5
// signature of both. Responses are usually ciphertext, but some endpoints answer
// with plain JSON; DecodeResponse hides that difference from callers.
package eapi
