package secrets

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"edufair/internal/util/memzero"
)

// formatVersion is the newest sealed-file layout this package understands.
const formatVersion = 1

// ErrWrongPassphrase is returned when the passphrase is incorrect or the
// keystore has been modified.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted keystore")

// sealed is the on-disk JSON layout: ciphertext plus the KDF parameters
// needed to reopen it.
type sealed struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

type kdfParams struct{ N, R, P int }

func defaultKDF() kdfParams { return kdfParams{N: 1 << 15, R: 8, P: 1} }

// seal derives a key from passphrase and encrypts raw. Each call draws a
// fresh salt, so the derived key is never reused and a zero nonce is safe.
func seal(passphrase string, raw []byte, kdf kdfParams) ([]byte, error) {
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	aead, err := newAEAD(passphrase, salt[:], kdf)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	return json.Marshal(sealed{
		V:      formatVersion,
		Salt:   salt[:],
		N:      kdf.N,
		R:      kdf.R,
		P:      kdf.P,
		Cipher: aead.Seal(nil, nonce[:], raw, salt[:]),
	})
}

// open reverses seal.
func open(passphrase string, b []byte) ([]byte, error) {
	var s sealed
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode keystore: %w", err)
	}
	if s.V > formatVersion {
		return nil, fmt.Errorf("unsupported keystore version %d", s.V)
	}
	aead, err := newAEAD(passphrase, s.Salt, kdfParams{N: s.N, R: s.R, P: s.P})
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], s.Cipher, s.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

func newAEAD(passphrase string, salt []byte, kdf kdfParams) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(passphrase), salt, kdf.N, kdf.R, kdf.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)
	return chacha20poly1305.New(key)
}
