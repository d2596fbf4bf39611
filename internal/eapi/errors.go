package eapi

import "errors"

// Static error definitions for better error handling.
var (
	// ErrMalformedCiphertext indicates that the data is not a whole number of AES blocks or not valid hex.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")
	// ErrInvalidPadding indicates that the decrypted data does not end with valid PKCS#7 padding.
	ErrInvalidPadding = errors.New("invalid PKCS#7 padding")
	// ErrMalformedPayload indicates that the decrypted data is not valid JSON.
	ErrMalformedPayload = errors.New("malformed payload")
)
