// Package crypt provides the encryption capability for vault files,
// addressed by key identifier.
//
// Keys are 32-byte secretbox keys stored as named files under the doggo
// keys directory (~/.doggo/keys/<id>.key). A vault ciphertext is
// nonce || box. Keys may optionally be wrapped at rest under an
// argon2id-derived passphrase key; unwrapping prompts on the terminal, or
// reads DOGGO_PASSPHRASE for non-interactive use.
//
// The rest of the system depends on the Cipher interface only and treats
// every failure from it as an opaque system error.
package crypt
