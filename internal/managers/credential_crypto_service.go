package managers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/flowbaker/flowbaker-snowflake/pkg/domain"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"
)

var hkdfSalt = []byte("flowbaker-snowflake-credentials")

// credentialCryptoService seals and opens credential block payloads using
// X25519 ECDH, HKDF-SHA256 key derivation, and ChaCha20-Poly1305.
type credentialCryptoService struct {
	privateKey string // Base64 encoded X25519 private key
	publicKey  string // Base64 encoded X25519 public key
}

func NewCredentialCryptoService(privateKeyBase64 string, publicKeyBase64 string) *credentialCryptoService {
	return &credentialCryptoService{
		privateKey: privateKeyBase64,
		publicKey:  publicKeyBase64,
	}
}

func (s *credentialCryptoService) DecryptCredential(encryptedCred domain.EncryptedCredential) ([]byte, error) {
	if encryptedCred.ExpiresAt > 0 && time.Now().Unix() > encryptedCred.ExpiresAt {
		return nil, errors.New("credential expired")
	}

	recipientPrivateKey, err := decodeX25519Key(s.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode recipient private key: %w", err)
	}

	sharedSecret, err := curve25519.X25519(recipientPrivateKey, encryptedCred.EphemeralPublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to compute shared secret: %w", err)
	}

	encryptionKey, err := deriveEncryptionKey(sharedSecret, encryptedCred.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to derive encryption key: %w", err)
	}

	aead, err := chacha20poly1305.New(encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create ChaCha20-Poly1305 cipher: %w", err)
	}

	payloadJSON, err := aead.Open(nil, encryptedCred.Nonce, encryptedCred.EncryptedPayload, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt credential payload: %w", err)
	}

	return payloadJSON, nil
}

// SealCredential encrypts a payload to the configured public key using a
// fresh ephemeral keypair, filling in the cryptographic fields of the block.
func (s *credentialCryptoService) SealCredential(credential domain.EncryptedCredential, payload []byte) (domain.EncryptedCredential, error) {
	recipientPublicKey, err := decodeX25519Key(s.publicKey)
	if err != nil {
		return domain.EncryptedCredential{}, fmt.Errorf("failed to decode recipient public key: %w", err)
	}

	ephemeralPrivateKey := make([]byte, curve25519.ScalarSize)
	if _, err := rand.Read(ephemeralPrivateKey); err != nil {
		return domain.EncryptedCredential{}, fmt.Errorf("failed to generate ephemeral key: %w", err)
	}

	ephemeralPublicKey, err := curve25519.X25519(ephemeralPrivateKey, curve25519.Basepoint)
	if err != nil {
		return domain.EncryptedCredential{}, fmt.Errorf("failed to derive ephemeral public key: %w", err)
	}

	sharedSecret, err := curve25519.X25519(ephemeralPrivateKey, recipientPublicKey)
	if err != nil {
		return domain.EncryptedCredential{}, fmt.Errorf("failed to compute shared secret: %w", err)
	}

	encryptionKey, err := deriveEncryptionKey(sharedSecret, credential.ID)
	if err != nil {
		return domain.EncryptedCredential{}, fmt.Errorf("failed to derive encryption key: %w", err)
	}

	aead, err := chacha20poly1305.New(encryptionKey)
	if err != nil {
		return domain.EncryptedCredential{}, fmt.Errorf("failed to create ChaCha20-Poly1305 cipher: %w", err)
	}

	nonce := make([]byte, chacha20poly1305.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return domain.EncryptedCredential{}, fmt.Errorf("failed to generate nonce: %w", err)
	}

	credential.EphemeralPublicKey = ephemeralPublicKey
	credential.Nonce = nonce
	credential.EncryptedPayload = aead.Seal(nil, nonce, payload, nil)

	return credential, nil
}

// GenerateKeyPair returns a new base64 encoded X25519 keypair.
func GenerateKeyPair() (privateKeyBase64 string, publicKeyBase64 string, err error) {
	privateKey := make([]byte, curve25519.ScalarSize)
	if _, err := rand.Read(privateKey); err != nil {
		return "", "", fmt.Errorf("failed to generate private key: %w", err)
	}

	publicKey, err := curve25519.X25519(privateKey, curve25519.Basepoint)
	if err != nil {
		return "", "", fmt.Errorf("failed to derive public key: %w", err)
	}

	return base64.StdEncoding.EncodeToString(privateKey), base64.StdEncoding.EncodeToString(publicKey), nil
}

func decodeX25519Key(base64Key string) ([]byte, error) {
	keyBytes, err := base64.StdEncoding.DecodeString(base64Key)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 encoding: %w", err)
	}

	if len(keyBytes) != curve25519.ScalarSize {
		return nil, fmt.Errorf("invalid key length: expected %d bytes, got %d", curve25519.ScalarSize, len(keyBytes))
	}

	return keyBytes, nil
}

func deriveEncryptionKey(sharedSecret []byte, credentialID string) ([]byte, error) {
	info := []byte("encryption-key-" + credentialID)

	hkdf := hkdf.New(sha256.New, sharedSecret, hkdfSalt, info)
	key := make([]byte, chacha20poly1305.KeySize) // 32 bytes

	if _, err := io.ReadFull(hkdf, key); err != nil {
		return nil, fmt.Errorf("failed to derive encryption key: %w", err)
	}

	return key, nil
}
