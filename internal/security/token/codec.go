// Package token implements the opaque bearer-token codec: a principal's claims
// serialized to JSON, sealed with AES-GCM under a shared symmetric key, and
// base64-encoded. Tokens are stateless; everything needed to identify the
// bearer travels inside the token itself.
package token

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/eventify/eventify/internal/core/domain"
)

// ErrInvalidToken is returned for every decode failure: bad encoding, wrong
// key, truncated or tampered ciphertext, malformed claims. Callers must not
// distinguish between them in responses.
var ErrInvalidToken = errors.New("invalid token")

// claims is the wire form of a principal inside a token.
type claims struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Codec encrypts and decrypts bearer tokens. It holds no mutable state and is
// safe for concurrent use.
type Codec struct {
	aead cipher.AEAD
}

// New builds a Codec from a symmetric key. The key length selects AES-128,
// AES-192 or AES-256.
func New(key []byte) (*Codec, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("token codec: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("token codec: %w", err)
	}
	return &Codec{aead: aead}, nil
}

// Encrypt serializes the principal's claims and seals them under a fresh
// random nonce. The nonce is carried in front of the ciphertext, so every
// call yields a different token even for identical claims.
func (c *Codec) Encrypt(p domain.Principal) (string, error) {
	payload, err := json.Marshal(claims{
		ID:    p.ID,
		Email: p.Email,
		Role:  domain.NormalizeRole(p.Role),
	})
	if err != nil {
		return "", fmt.Errorf("encode claims: %w", err)
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, payload, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decode reverses Encrypt and validates the result. AEAD authentication
// guarantees that any bit flip in the token fails here rather than producing
// garbage claims. The role is prefix-normalized before the principal is
// returned; a successful decode establishes identity, not current authority.
func (c *Codec) Decode(tok string) (domain.Principal, error) {
	raw, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil {
		return domain.Principal{}, ErrInvalidToken
	}

	ns := c.aead.NonceSize()
	if len(raw) <= ns {
		return domain.Principal{}, ErrInvalidToken
	}

	payload, err := c.aead.Open(nil, raw[:ns], raw[ns:], nil)
	if err != nil {
		return domain.Principal{}, ErrInvalidToken
	}

	var cl claims
	if err := json.Unmarshal(payload, &cl); err != nil {
		return domain.Principal{}, ErrInvalidToken
	}
	if cl.ID == 0 || cl.Email == "" || cl.Role == "" {
		return domain.Principal{}, ErrInvalidToken
	}

	return domain.Principal{
		ID:    cl.ID,
		Email: cl.Email,
		Role:  domain.NormalizeRole(cl.Role),
	}, nil
}
