// Package clientcrypto contains client-side primitives: master key derivation
// from the OPAQUE export key, per-entry sealing, and key wrapping.
//
// Nothing in this package runs on the server. The server only ever stores the
// fields of a SealedEntry.
package clientcrypto

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/and161185/zk-journal/internal/crypto"
)

// Params
const (
	MasterKeyLen = 32
	EntryKeyLen  = chacha20poly1305.KeySize
	NonceLen     = chacha20poly1305.NonceSizeX

	// AlgXChaCha20Poly1305 identifies the current entry format.
	AlgXChaCha20Poly1305 = "xchacha20poly1305-v1"

	masterKeyInfo = "master-key-v1"
)

var (
	// ErrDecrypt is returned for any authentication failure while opening.
	ErrDecrypt = errors.New("decryption failed")
	// ErrUnsupportedAlgorithm is returned for entries sealed with an unknown format.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
	// ErrKeyringClosed is returned by a Keyring after Close.
	ErrKeyringClosed = errors.New("keyring closed")
	// ErrKeyLength is returned for keys of the wrong size.
	ErrKeyLength = errors.New("invalid key length")
)

// SealedEntry is everything content storage persists for one item.
type SealedEntry struct {
	Algorithm  string
	Ciphertext []byte
	Nonce      []byte
	WrappedKey []byte
	WrapNonce  []byte
}

// Rand returns n random bytes for keys and nonces. It shares the server's
// source in internal/crypto.
func Rand(n int) ([]byte, error) {
	return crypto.RandBytes(n)
}

// DeriveMasterKey derives the 32-byte master key from the OPAQUE export key
// via HKDF-SHA256. The same export key always yields the same master key.
func DeriveMasterKey(exportKey []byte) ([]byte, error) {
	if len(exportKey) == 0 {
		return nil, ErrKeyLength
	}
	r := hkdf.New(sha256.New, exportKey, nil, []byte(masterKeyInfo))
	key := make([]byte, MasterKeyLen)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return key, nil
}

// WrapKey encrypts key under kek with a fresh random nonce.
func WrapKey(kek, key, aad []byte) (wrapped, nonce []byte, err error) {
	aead, err := chacha20poly1305.NewX(kek)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrKeyLength, err)
	}
	nonce, err = Rand(NonceLen)
	if err != nil {
		return nil, nil, err
	}
	return aead.Seal(nil, nonce, key, aad), nonce, nil
}

// UnwrapKey decrypts a wrapped key using kek.
func UnwrapKey(kek, wrapped, nonce, aad []byte) ([]byte, error) {
	if len(nonce) != NonceLen {
		return nil, ErrDecrypt
	}
	aead, err := chacha20poly1305.NewX(kek)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyLength, err)
	}
	key, err := aead.Open(nil, nonce, wrapped, aad)
	if err != nil {
		return nil, ErrDecrypt
	}
	return key, nil
}

// SealEntry encrypts plaintext under a fresh entry key and wraps that key
// under masterKey. aad is bound to the content ciphertext.
func SealEntry(masterKey, plaintext, aad []byte) (SealedEntry, error) {
	if len(masterKey) != MasterKeyLen {
		return SealedEntry{}, ErrKeyLength
	}
	entryKey, err := Rand(EntryKeyLen)
	if err != nil {
		return SealedEntry{}, err
	}
	defer wipe(entryKey)

	aead, err := chacha20poly1305.NewX(entryKey)
	if err != nil {
		return SealedEntry{}, err
	}
	nonce, err := Rand(NonceLen)
	if err != nil {
		return SealedEntry{}, err
	}
	ct := aead.Seal(nil, nonce, plaintext, aad)

	wrapped, wrapNonce, err := WrapKey(masterKey, entryKey, []byte(AlgXChaCha20Poly1305))
	if err != nil {
		return SealedEntry{}, err
	}
	return SealedEntry{
		Algorithm:  AlgXChaCha20Poly1305,
		Ciphertext: ct,
		Nonce:      nonce,
		WrappedKey: wrapped,
		WrapNonce:  wrapNonce,
	}, nil
}

// OpenEntry unwraps the entry key and decrypts the content. Any tampering
// or a wrong master key yields ErrDecrypt.
func OpenEntry(masterKey []byte, e SealedEntry, aad []byte) ([]byte, error) {
	if e.Algorithm != AlgXChaCha20Poly1305 {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, e.Algorithm)
	}
	if len(masterKey) != MasterKeyLen {
		return nil, ErrKeyLength
	}
	entryKey, err := UnwrapKey(masterKey, e.WrappedKey, e.WrapNonce, []byte(e.Algorithm))
	if err != nil {
		return nil, err
	}
	defer wipe(entryKey)

	if len(e.Nonce) != NonceLen {
		return nil, ErrDecrypt
	}
	aead, err := chacha20poly1305.NewX(entryKey)
	if err != nil {
		return nil, ErrDecrypt
	}
	pt, err := aead.Open(nil, e.Nonce, e.Ciphertext, aad)
	if err != nil {
		return nil, ErrDecrypt
	}
	if pt == nil {
		pt = []byte{}
	}
	return pt, nil
}

// Rewrap moves an entry from oldMaster to newMaster. The content ciphertext
// and its nonce are left untouched.
func Rewrap(oldMaster, newMaster []byte, e SealedEntry) (SealedEntry, error) {
	if e.Algorithm != AlgXChaCha20Poly1305 {
		return SealedEntry{}, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, e.Algorithm)
	}
	entryKey, err := UnwrapKey(oldMaster, e.WrappedKey, e.WrapNonce, []byte(e.Algorithm))
	if err != nil {
		return SealedEntry{}, err
	}
	defer wipe(entryKey)

	wrapped, wrapNonce, err := WrapKey(newMaster, entryKey, []byte(e.Algorithm))
	if err != nil {
		return SealedEntry{}, err
	}
	e.WrappedKey = wrapped
	e.WrapNonce = wrapNonce
	return e, nil
}

// Keyring holds a master key in memory for the lifetime of a login.
type Keyring struct {
	mu  sync.RWMutex
	key []byte
}

// NewKeyring derives the master key from exportKey and keeps a private copy.
// The caller may wipe exportKey afterwards.
func NewKeyring(exportKey []byte) (*Keyring, error) {
	mk, err := DeriveMasterKey(exportKey)
	if err != nil {
		return nil, err
	}
	return &Keyring{key: mk}, nil
}

// Seal is SealEntry with the held master key.
func (k *Keyring) Seal(plaintext, aad []byte) (SealedEntry, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.key == nil {
		return SealedEntry{}, ErrKeyringClosed
	}
	return SealEntry(k.key, plaintext, aad)
}

// Open is OpenEntry with the held master key.
func (k *Keyring) Open(e SealedEntry, aad []byte) ([]byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.key == nil {
		return nil, ErrKeyringClosed
	}
	return OpenEntry(k.key, e, aad)
}

// Close wipes the master key. It is safe to call more than once.
func (k *Keyring) Close() {
	k.mu.Lock()
	defer k.mu.Unlock()
	wipe(k.key)
	k.key = nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
