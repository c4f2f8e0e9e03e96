package crypt

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"

	doggoerrors "github.com/WilliamSWoodruff/doggo-cli/internal/errors"
)

const (
	keySize   = 32
	nonceSize = 24

	// Argon2id parameters for passphrase-wrapped keys.
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	saltSize     = 16
)

// keyFile is the on-disk format of a named key under the keys directory.
// Unwrapped keys store the raw key material; wrapped keys store it sealed
// under a passphrase-derived key.
type keyFile struct {
	Version int        `json:"version"`
	Wrapped bool       `json:"wrapped"`
	KDF     *kdfParams `json:"kdf,omitempty"`
	Key     string     `json:"key"` // base64; raw key, or nonce||box when wrapped
}

type kdfParams struct {
	Algorithm string `json:"algorithm"`
	Salt      string `json:"salt"`
	Time      uint32 `json:"time"`
	Memory    uint32 `json:"memory"`
	Threads   uint8  `json:"threads"`
}

// FileCipher implements Cipher with secretbox over 32-byte keys stored as
// named files in KeysDir. Passphrase is consulted only for wrapped keys;
// it defaults to the interactive terminal reader.
type FileCipher struct {
	KeysDir    string
	Passphrase func(prompt string) ([]byte, error)
}

// NewFileCipher returns a FileCipher rooted at keysDir.
func NewFileCipher(keysDir string) *FileCipher {
	return &FileCipher{KeysDir: keysDir, Passphrase: ReadPassphrase}
}

// keyPath maps a key identifier to its file.
func (c *FileCipher) keyPath(keyID string) string {
	return filepath.Join(c.KeysDir, keyID+".key")
}

// GenerateKey creates a new random key under the given identifier. With a
// non-empty passphrase the key material is wrapped at rest. Fails if a key
// with that identifier already exists.
func (c *FileCipher) GenerateKey(keyID string, passphrase []byte) error {
	if keyID == "" {
		return doggoerrors.ErrNoKeyIdentifier
	}
	path := c.keyPath(keyID)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", doggoerrors.ErrKeyExists, keyID)
	}

	key := make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate key material: %w", err)
	}
	defer zeroBytes(key)

	kf := keyFile{Version: 1, Key: base64.StdEncoding.EncodeToString(key)}
	if len(passphrase) > 0 {
		salt := make([]byte, saltSize)
		if _, err := rand.Read(salt); err != nil {
			return fmt.Errorf("failed to generate salt: %w", err)
		}
		wrapKey := argon2.IDKey(passphrase, salt, argonTime, argonMemory, argonThreads, keySize)
		defer zeroBytes(wrapKey)

		sealed, err := seal(key, wrapKey)
		if err != nil {
			return err
		}
		kf = keyFile{
			Version: 1,
			Wrapped: true,
			KDF: &kdfParams{
				Algorithm: "argon2id",
				Salt:      base64.StdEncoding.EncodeToString(salt),
				Time:      argonTime,
				Memory:    argonMemory,
				Threads:   argonThreads,
			},
			Key: base64.StdEncoding.EncodeToString(sealed),
		}
	}

	if err := os.MkdirAll(c.KeysDir, 0700); err != nil {
		return fmt.Errorf("failed to create keys directory at %s: %w", c.KeysDir, err)
	}
	data, err := json.Marshal(kf)
	if err != nil {
		return fmt.Errorf("failed to encode key file: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write key file at %s: %w", path, err)
	}
	return nil
}

// Encrypt seals plaintext under the named key: nonce || box.
func (c *FileCipher) Encrypt(keyID string, plaintext []byte) ([]byte, error) {
	key, err := c.loadKey(keyID)
	if err != nil {
		return nil, err
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plaintext, &nonce, &key), nil
}

// Decrypt opens ciphertext produced by Encrypt under the same key.
func (c *FileCipher) Decrypt(keyID string, ciphertext []byte) ([]byte, error) {
	key, err := c.loadKey(keyID)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short: %d bytes", len(ciphertext))
	}

	var nonce [nonceSize]byte
	copy(nonce[:], ciphertext[:nonceSize])
	plaintext, ok := secretbox.Open(nil, ciphertext[nonceSize:], &nonce, &key)
	if !ok {
		return nil, fmt.Errorf("failed to decrypt vault with key %q", keyID)
	}
	return plaintext, nil
}

func (c *FileCipher) loadKey(keyID string) ([keySize]byte, error) {
	var key [keySize]byte
	if keyID == "" {
		return key, doggoerrors.ErrNoKeyIdentifier
	}

	data, err := os.ReadFile(c.keyPath(keyID))
	if err != nil {
		if os.IsNotExist(err) {
			return key, fmt.Errorf("%w: %s", doggoerrors.ErrKeyNotFound, keyID)
		}
		return key, fmt.Errorf("failed to read key file: %w", err)
	}

	var kf keyFile
	if err := json.Unmarshal(data, &kf); err != nil {
		return key, fmt.Errorf("failed to parse key file for %q: %w", keyID, err)
	}
	raw, err := base64.StdEncoding.DecodeString(kf.Key)
	if err != nil {
		return key, fmt.Errorf("failed to decode key material for %q: %w", keyID, err)
	}

	if kf.Wrapped {
		if kf.KDF == nil {
			return key, fmt.Errorf("wrapped key %q has no KDF parameters", keyID)
		}
		pass, err := c.Passphrase(fmt.Sprintf("Passphrase for key %q: ", keyID))
		if err != nil {
			return key, err
		}
		defer zeroBytes(pass)

		salt, err := base64.StdEncoding.DecodeString(kf.KDF.Salt)
		if err != nil {
			return key, fmt.Errorf("failed to decode salt for %q: %w", keyID, err)
		}
		wrapKey := argon2.IDKey(pass, salt, kf.KDF.Time, kf.KDF.Memory, kf.KDF.Threads, keySize)
		defer zeroBytes(wrapKey)

		raw, err = open(raw, wrapKey)
		if err != nil {
			return key, fmt.Errorf("failed to unwrap key %q (wrong passphrase?): %w", keyID, err)
		}
	}

	if len(raw) != keySize {
		return key, fmt.Errorf("invalid key length for %q: expected %d bytes, got %d", keyID, keySize, len(raw))
	}
	copy(key[:], raw)
	zeroBytes(raw)
	return key, nil
}

func seal(plaintext, rawKey []byte) ([]byte, error) {
	var key [keySize]byte
	copy(key[:], rawKey)
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plaintext, &nonce, &key), nil
}

func open(sealed, rawKey []byte) ([]byte, error) {
	if len(sealed) < nonceSize {
		return nil, fmt.Errorf("sealed key too short: %d bytes", len(sealed))
	}
	var key [keySize]byte
	copy(key[:], rawKey)
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	out, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &key)
	if !ok {
		return nil, fmt.Errorf("secretbox open failed")
	}
	return out, nil
}
