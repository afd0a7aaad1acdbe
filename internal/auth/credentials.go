// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth stores the signed-in user's identity and bearer token.
//
// Credentials are encrypted at rest with AES-256-GCM. The encryption key is
// derived via PBKDF2-SHA-256 from a random machine secret kept next to the
// credential file, so a copied credentials.json is useless on its own.
package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/crypto/pbkdf2"

	"github.com/morganforge/chitter-tui/internal/util"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// NonceSize is the size of the nonce/IV for AES-GCM (12 bytes / 96 bits)
const NonceSize = 12

// KeySize is the size of the AES-256 key (32 bytes / 256 bits)
const KeySize = 32

// SaltSize is the size of the salt for key derivation (32 bytes)
const SaltSize = 32

// PBKDF2Iterations is the number of iterations for PBKDF2 key derivation.
// OWASP recommends 600,000+ for PBKDF2-SHA-256.
const PBKDF2Iterations = 600000

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNoCredentials indicates no user is signed in.
	ErrNoCredentials = errors.New("not signed in: run 'chitter login'")
	// ErrInvalidCiphertext indicates the credential file format is invalid.
	ErrInvalidCiphertext = errors.New("invalid credential file format")
	// ErrDecryptionFailed indicates decryption failed (wrong key or tampered data).
	ErrDecryptionFailed = errors.New("decryption failed: authentication tag mismatch")
)

// ZeroBytes securely zeros sensitive byte slices.
// SECURITY: Zero key material to prevent memory disclosure via crash dumps.
func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// =============================================================================
// CREDENTIALS
// =============================================================================

// Credentials is the signed-in user's identity and bearer token.
type Credentials struct {
	UserID      string    `json:"userId"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName,omitempty"`
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expiresAt,omitempty"`
}

// Expired reports whether the token has an expiry in the past.
func (c *Credentials) Expired() bool {
	return !c.ExpiresAt.IsZero() && time.Now().After(c.ExpiresAt)
}

// envelope is the on-disk form of the encrypted credential file.
type envelope struct {
	Version int    `json:"version"`
	Salt    string `json:"salt"`
	Nonce   string `json:"nonce"`
	Data    string `json:"data"`
}

// =============================================================================
// STORE
// =============================================================================

// Store persists credentials encrypted at path. The zero Store is not
// usable; construct with NewStore.
type Store struct {
	path    string
	keyPath string

	mu    sync.RWMutex
	cache *Credentials
}

// NewStore creates a credential store writing to path. The machine secret
// lives alongside it.
func NewStore(path string) *Store {
	return &Store{
		path:    path,
		keyPath: filepath.Join(filepath.Dir(path), "credentials.key"),
	}
}

// Save encrypts and persists the credentials.
func (s *Store) Save(creds *Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	secret, err := s.ensureMachineSecret()
	if err != nil {
		return err
	}
	defer ZeroBytes(secret)

	plaintext, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	defer ZeroBytes(plaintext)

	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	key := deriveKey(secret, salt)
	defer ZeroBytes(key)

	aead, err := newAEAD(key)
	if err != nil {
		return err
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := aead.Seal(nil, nonce, plaintext, nil)

	env := envelope{
		Version: 1,
		Salt:    base64.StdEncoding.EncodeToString(salt),
		Nonce:   base64.StdEncoding.EncodeToString(nonce),
		Data:    base64.StdEncoding.EncodeToString(sealed),
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credential file: %w", err)
	}

	// SECURITY: 0600 file in a 0700 directory
	if err := util.AtomicWriteFileWithDir(s.path, data, 0600, 0700); err != nil {
		return fmt.Errorf("failed to write credential file: %w", err)
	}

	s.cache = cloneCreds(creds)
	return nil
}

// Load decrypts and returns the stored credentials.
func (s *Store) Load() (*Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() (*Credentials, error) {
	if s.cache != nil {
		return cloneCreds(s.cache), nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoCredentials
		}
		return nil, fmt.Errorf("failed to read credential file: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCiphertext, err)
	}

	salt, err1 := base64.StdEncoding.DecodeString(env.Salt)
	nonce, err2 := base64.StdEncoding.DecodeString(env.Nonce)
	sealed, err3 := base64.StdEncoding.DecodeString(env.Data)
	if err1 != nil || err2 != nil || err3 != nil || len(nonce) != NonceSize || len(salt) != SaltSize {
		return nil, ErrInvalidCiphertext
	}

	secret, err := s.readMachineSecret()
	if err != nil {
		return nil, err
	}
	defer ZeroBytes(secret)

	key := deriveKey(secret, salt)
	defer ZeroBytes(key)

	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	defer ZeroBytes(plaintext)

	var creds Credentials
	if err := json.Unmarshal(plaintext, &creds); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCiphertext, err)
	}

	s.cache = cloneCreds(&creds)
	return &creds, nil
}

// Clear removes the stored credentials. Clearing an empty store is not an
// error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credential file: %w", err)
	}
	return nil
}

// Token returns the current bearer token, or "" when signed out or expired.
// Shaped for api.Client.WithTokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.loadLocked()
	if err != nil || creds.Expired() {
		return ""
	}
	return creds.Token
}

// UserID returns the signed-in user's id, or "" when signed out.
func (s *Store) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.loadLocked()
	if err != nil {
		return ""
	}
	return creds.UserID
}

// =============================================================================
// KEY MATERIAL
// =============================================================================

// ensureMachineSecret loads the machine secret, generating it on first use.
func (s *Store) ensureMachineSecret() ([]byte, error) {
	secret, err := s.readMachineSecret()
	if err == nil {
		return secret, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	raw := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return nil, fmt.Errorf("failed to generate machine secret: %w", err)
	}
	encoded := []byte(hex.EncodeToString(raw))
	ZeroBytes(raw)

	if err := util.AtomicWriteFileWithDir(s.keyPath, encoded, 0600, 0700); err != nil {
		return nil, fmt.Errorf("failed to write machine secret: %w", err)
	}
	return encoded, nil
}

func (s *Store) readMachineSecret() ([]byte, error) {
	data, err := os.ReadFile(s.keyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("machine secret missing: %w", os.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to read machine secret: %w", err)
	}
	return data, nil
}

// deriveKey stretches the machine secret into an AES-256 key.
func deriveKey(secret, salt []byte) []byte {
	return pbkdf2.Key(secret, salt, PBKDF2Iterations, KeySize, sha256.New)
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aead, nil
}

func cloneCreds(c *Credentials) *Credentials {
	out := *c
	return &out
}
