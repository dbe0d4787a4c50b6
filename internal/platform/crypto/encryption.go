package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

const keySize = 32

// Service encrypts session state persisted to disk. An unconfigured
// service passes data through untouched so development setups work
// without a key.
type Service struct {
	key []byte
}

// New accepts a hex or base64 encoded 32-byte key.
func New(key string) (*Service, error) {
	if key == "" {
		return &Service{}, nil
	}
	decoded, err := decodeKey(key)
	if err != nil {
		return nil, err
	}
	if len(decoded) != keySize {
		return nil, fmt.Errorf("encryption key must be %d bytes after decoding", keySize)
	}
	return &Service{key: decoded}, nil
}

// NewFromPassphrase derives the key from a passphrase with scrypt. The
// salt only has to be stable per installation, not secret.
func NewFromPassphrase(passphrase, salt string) (*Service, error) {
	if passphrase == "" {
		return &Service{}, nil
	}
	key, err := scrypt.Key([]byte(passphrase), []byte(salt), 1<<15, 8, 1, keySize)
	if err != nil {
		return nil, err
	}
	return &Service{key: key}, nil
}

func (s *Service) Configured() bool {
	return len(s.key) == keySize
}

func (s *Service) Encrypt(plain []byte) ([]byte, error) {
	if len(plain) == 0 || !s.Configured() {
		return plain, nil
	}
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func (s *Service) Decrypt(sealed []byte) ([]byte, error) {
	if len(sealed) == 0 || !s.Configured() {
		return sealed, nil
	}
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(sealed) < gcm.NonceSize() {
		return nil, errors.New("ciphertext shorter than nonce")
	}
	nonce, payload := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	return gcm.Open(nil, nonce, payload, nil)
}

func decodeKey(key string) ([]byte, error) {
	if decoded, err := hex.DecodeString(key); err == nil {
		return decoded, nil
	}
	if decoded, err := base64.StdEncoding.DecodeString(key); err == nil {
		return decoded, nil
	}
	return nil, errors.New("encryption key must be hex or base64 encoded")
}
