package crypt

// Cipher turns a serialized vault into ciphertext addressed to a named key,
// and back. Failures are opaque system errors; the caller propagates them
// without interpretation.
type Cipher interface {
	Encrypt(keyID string, plaintext []byte) ([]byte, error)
	Decrypt(keyID string, ciphertext []byte) ([]byte, error)
}
