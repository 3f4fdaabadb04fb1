package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

var encoding = base64.RawURLEncoding

// key is one secret prepared for signing and encryption.
type key struct {
	mac  []byte
	aead cipher.AEAD
}

// newKey derives separate 32-byte signing and AES-256 keys from secret.
func newKey(secret string) (key, error) {
	macKey, err := derive(secret, "cookie signing")
	if err != nil {
		return key{}, err
	}
	encKey, err := derive(secret, "cookie encryption")
	if err != nil {
		return key{}, err
	}

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return key{}, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return key{}, err
	}
	return key{mac: macKey, aead: aead}, nil
}

func derive(secret, purpose string) ([]byte, error) {
	out := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(purpose)), out); err != nil {
		return nil, err
	}
	return out, nil
}

func (k key) signature(name, value string) []byte {
	h := hmac.New(sha256.New, k.mac)
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(value))
	return h.Sum(nil)
}

// sign returns "<base64 value>.<base64 mac>". The cookie name is part of the
// MAC so a value cannot be replayed under another name.
func (k key) sign(name, value string) string {
	return encoding.EncodeToString([]byte(value)) + "." + encoding.EncodeToString(k.signature(name, value))
}

func verify(keys []key, name, signed string) (string, error) {
	encValue, encSig, ok := strings.Cut(signed, ".")
	if !ok {
		return "", ErrInvalidFormat
	}
	value, err := encoding.DecodeString(encValue)
	if err != nil {
		return "", ErrInvalidFormat
	}
	sig, err := encoding.DecodeString(encSig)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, k := range keys {
		if hmac.Equal(sig, k.signature(name, string(value))) {
			return string(value), nil
		}
	}
	return "", ErrInvalidSignature
}

// seal encrypts value with a random nonce prepended to the ciphertext.
// The cookie name is authenticated as additional data.
func (k key) seal(name, value string) (string, error) {
	nonce := make([]byte, k.aead.NonceSize(), k.aead.NonceSize()+len(value)+k.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	return encoding.EncodeToString(k.aead.Seal(nonce, nonce, []byte(value), []byte(name))), nil
}

func open(keys []key, name, sealed string) (string, error) {
	data, err := encoding.DecodeString(sealed)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, k := range keys {
		n := k.aead.NonceSize()
		if len(data) < n+k.aead.Overhead() {
			return "", ErrInvalidFormat
		}
		plain, err := k.aead.Open(nil, data[:n], data[n:], []byte(name))
		if err == nil {
			return string(plain), nil
		}
	}
	return "", ErrDecryptionFailed
}
