package eapi

//go:generate $MOCKGEN -source=codec.go -destination=mocks/codec_mock.go

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5" //nolint:gosec // The signature scheme is fixed by the remote service.
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Codec encrypts eapi requests and decodes their responses.
type Codec interface {
	// EncryptForRequest returns the params token for the given plain API path and payload.
	EncryptForRequest(apiPath string, payload []byte) string
	// DecodeResponse decodes a response body into out.
	DecodeResponse(body []byte, out any) error
}

// CodecImpl implements Codec with the fixed desktop client key.
type CodecImpl struct {
	block cipher.Block
}

const (
	// key is the AES-128 key shared by every desktop client.
	key = "e82ckenh8dichen8"
	// separator delimits path, payload and digest inside the plaintext token.
	separator = "-36cd479b6b5-"

	// EncryptedPrefix is the path prefix of endpoints using the encrypted convention.
	EncryptedPrefix = "/eapi/"
	// PlainPrefix is the path prefix that EncryptedPrefix is rewritten to for signing.
	PlainPrefix = "/api/"
	// ParamsField is the form field carrying the request token.
	ParamsField = "params"
)

// NewCodec creates and returns a new instance of CodecImpl.
func NewCodec() Codec {
	return newCodecImpl()
}

func newCodecImpl() *CodecImpl {
	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		// The key is a 16-byte constant, so this cannot happen.
		panic(err)
	}

	return &CodecImpl{block: block}
}

//nolint:gochecknoglobals // Stateless codec shared by the package-level helpers.
var defaultCodec = newCodecImpl()

// IsEncryptedPath reports whether a URL path uses the encrypted convention.
func IsEncryptedPath(path string) bool {
	return strings.HasPrefix(path, EncryptedPrefix)
}

// ToAPIPath rewrites /eapi/x to /api/x. Other paths are returned unchanged.
func ToAPIPath(path string) string {
	if !IsEncryptedPath(path) {
		return path
	}

	return PlainPrefix + strings.TrimPrefix(path, EncryptedPrefix)
}

// EncryptForRequest returns the params token for the given plain API path and payload.
func EncryptForRequest(apiPath string, payload []byte) string {
	return defaultCodec.EncryptForRequest(apiPath, payload)
}

// Encrypt encrypts data with the shared key.
func Encrypt(data []byte) []byte {
	return defaultCodec.Encrypt(data)
}

// Decrypt decrypts data encrypted with the shared key.
func Decrypt(data []byte) ([]byte, error) {
	return defaultCodec.Decrypt(data)
}

// DecryptHex decodes a hex string and decrypts it.
func DecryptHex(s string) ([]byte, error) {
	return defaultCodec.DecryptHex(s)
}

// DecodeResponse decodes a response body into out.
func DecodeResponse(body []byte, out any) error {
	return defaultCodec.DecodeResponse(body, out)
}

// DecodeRequest reverses EncryptForRequest: it returns the signed API path and the payload
// of a params token after checking the digest.
func DecodeRequest(params string) (string, []byte, error) {
	plain, err := defaultCodec.DecryptHex(params)
	if err != nil {
		return "", nil, err
	}

	parts := strings.Split(string(plain), separator)
	if len(parts) != 3 {
		return "", nil, fmt.Errorf("%w: expected 3 parts, got %d", ErrMalformedPayload, len(parts))
	}

	apiPath, payload := parts[0], []byte(parts[1])

	digest := md5.Sum([]byte("nobody" + apiPath + "use" + parts[1] + "md5forencrypt")) //nolint:gosec
	if hex.EncodeToString(digest[:]) != parts[2] {
		return "", nil, fmt.Errorf("%w: digest mismatch", ErrMalformedPayload)
	}

	return apiPath, payload, nil
}

// ToHex converts a raw binary response into the hex form DecryptHex accepts.
func ToHex(raw []byte) string {
	return hex.EncodeToString(raw)
}

// EncryptForRequest returns the params token for the given plain API path and payload.
func (c *CodecImpl) EncryptForRequest(apiPath string, payload []byte) string {
	digest := md5.Sum([]byte("nobody" + apiPath + "use" + string(payload) + "md5forencrypt")) //nolint:gosec

	var message strings.Builder

	message.Grow(len(apiPath) + len(payload) + 2*len(separator) + 2*md5.Size)
	message.WriteString(apiPath)
	message.WriteString(separator)
	message.Write(payload)
	message.WriteString(separator)
	message.WriteString(hex.EncodeToString(digest[:]))

	return hex.EncodeToString(c.Encrypt([]byte(message.String())))
}

// Encrypt pads data with PKCS#7 and encrypts it block by block (ECB).
func (c *CodecImpl) Encrypt(data []byte) []byte {
	blockSize := c.block.BlockSize()
	padding := blockSize - len(data)%blockSize

	buf := make([]byte, len(data)+padding)
	copy(buf, data)

	for i := len(data); i < len(buf); i++ {
		buf[i] = byte(padding)
	}

	for start := 0; start < len(buf); start += blockSize {
		c.block.Encrypt(buf[start:start+blockSize], buf[start:start+blockSize])
	}

	return buf
}

// Decrypt decrypts ECB blocks and strips PKCS#7 padding. Empty input yields empty output.
func (c *CodecImpl) Decrypt(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	blockSize := c.block.BlockSize()
	if len(data)%blockSize != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of %d", ErrMalformedCiphertext, len(data), blockSize)
	}

	buf := make([]byte, len(data))

	for start := 0; start < len(data); start += blockSize {
		c.block.Decrypt(buf[start:start+blockSize], data[start:start+blockSize])
	}

	padding := int(buf[len(buf)-1])
	if padding == 0 || padding > blockSize {
		return nil, ErrInvalidPadding
	}

	if !bytes.Equal(buf[len(buf)-padding:], bytes.Repeat([]byte{byte(padding)}, padding)) {
		return nil, ErrInvalidPadding
	}

	return buf[:len(buf)-padding], nil
}

// DecryptHex decodes a hex string and decrypts it. Empty input yields empty output.
func (c *CodecImpl) DecryptHex(s string) ([]byte, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCiphertext, err)
	}

	return c.Decrypt(raw)
}

// DecodeResponse decodes a response body into out.
// A body starting with '{' that parses as JSON is taken as plaintext;
// anything else, including broken JSON, goes through decryption.
func (c *CodecImpl) DecodeResponse(body []byte, out any) error {
	if len(body) > 0 && body[0] == '{' && json.Valid(body) {
		return json.Unmarshal(body, out)
	}

	plain, err := c.Decrypt(body)
	if err != nil {
		return err
	}

	if err = json.Unmarshal(plain, out); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	return nil
}
