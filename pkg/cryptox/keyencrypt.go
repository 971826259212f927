package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"sync"
)

var (
	keySecretMu   sync.Mutex
	keySecret     []byte
	keySecretFile = "signing.secret"
)

// SetKeySecretPath sets the file holding the secret that wraps signing keys
// at rest. Like the pepper it is generated on first use.
func SetKeySecretPath(file string) {
	keySecretMu.Lock()
	defer keySecretMu.Unlock()

	keySecretFile = file
	keySecret = nil
}

func getKeySecret() ([]byte, error) {
	keySecretMu.Lock()
	defer keySecretMu.Unlock()

	if keySecret != nil {
		return keySecret, nil
	}

	material, err := loadOrGeneratePepper(keySecretFile)
	if err != nil {
		return nil, fmt.Errorf("cryptox: key secret: %w", err)
	}

	sum := sha256.Sum256([]byte(material))
	keySecret = sum[:]
	return keySecret, nil
}

func newGCM() (cipher.AEAD, error) {
	key, err := getKeySecret()
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// EncryptPrivateKey seals a PEM key with AES-256-GCM. Output is
// nonce || ciphertext || tag.
func EncryptPrivateKey(pemData []byte) ([]byte, error) {
	gcm, err := newGCM()
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("cryptox: nonce: %w", err)
	}
	return gcm.Seal(nonce, nonce, pemData, nil), nil
}

// DecryptPrivateKey opens data produced by EncryptPrivateKey. It fails when
// the key secret has changed since encryption.
func DecryptPrivateKey(data []byte) ([]byte, error) {
	gcm, err := newGCM()
	if err != nil {
		return nil, err
	}

	n := gcm.NonceSize()
	if len(data) < n {
		return nil, errors.New("cryptox: ciphertext too short")
	}

	plain, err := gcm.Open(nil, data[:n], data[n:], nil)
	if err != nil {
		return nil, fmt.Errorf("cryptox: decrypt: %w", err)
	}
	return plain, nil
}
