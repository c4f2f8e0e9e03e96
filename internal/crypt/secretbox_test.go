package crypt

import (
	"errors"
	"testing"

	doggoerrors "github.com/WilliamSWoodruff/doggo-cli/internal/errors"
)

func newTestCipher(t *testing.T) *FileCipher {
	t.Helper()
	c := NewFileCipher(t.TempDir())
	c.Passphrase = func(prompt string) ([]byte, error) {
		return []byte("correct horse"), nil
	}
	return c
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	c := newTestCipher(t)
	if err := c.GenerateKey("personal", nil); err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}

	plaintext := []byte(`{"isDoggo":true,"secrets":[]}`)
	ct, err := c.Encrypt("personal", plaintext)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if string(ct) == string(plaintext) {
		t.Fatal("ciphertext equals plaintext")
	}

	got, err := c.Decrypt("personal", ct)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if string(got) != string(plaintext) {
		t.Errorf("round trip mismatch: %q", got)
	}
}

func TestDecryptWithWrongKey(t *testing.T) {
	c := newTestCipher(t)
	if err := c.GenerateKey("one", nil); err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}
	if err := c.GenerateKey("two", nil); err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}

	ct, err := c.Encrypt("one", []byte("payload"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if _, err := c.Decrypt("two", ct); err == nil {
		t.Fatal("Decrypt with the wrong key succeeded")
	}
}

func TestWrappedKeyRoundTrip(t *testing.T) {
	c := newTestCipher(t)
	if err := c.GenerateKey("wrapped", []byte("correct horse")); err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}

	ct, err := c.Encrypt("wrapped", []byte("payload"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	got, err := c.Decrypt("wrapped", ct)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if string(got) != "payload" {
		t.Errorf("round trip mismatch: %q", got)
	}
}

func TestWrappedKeyWrongPassphrase(t *testing.T) {
	c := newTestCipher(t)
	if err := c.GenerateKey("wrapped", []byte("correct horse")); err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}

	c.Passphrase = func(prompt string) ([]byte, error) {
		return []byte("battery staple"), nil
	}
	if _, err := c.Encrypt("wrapped", []byte("payload")); err == nil {
		t.Fatal("unwrap with wrong passphrase succeeded")
	}
}

func TestGenerateKeyRefusesOverwrite(t *testing.T) {
	c := newTestCipher(t)
	if err := c.GenerateKey("personal", nil); err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}

	err := c.GenerateKey("personal", nil)
	if !errors.Is(err, doggoerrors.ErrKeyExists) {
		t.Fatalf("expected ErrKeyExists, got %v", err)
	}
}

func TestMissingKey(t *testing.T) {
	c := newTestCipher(t)

	_, err := c.Encrypt("ghost", []byte("payload"))
	if !errors.Is(err, doggoerrors.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestEmptyKeyIdentifier(t *testing.T) {
	c := newTestCipher(t)

	_, err := c.Encrypt("", []byte("payload"))
	if !errors.Is(err, doggoerrors.ErrNoKeyIdentifier) {
		t.Fatalf("expected ErrNoKeyIdentifier, got %v", err)
	}
}
