package core

import (
	"fmt"

	"goshopper-backend-go/internal/crypto"
)

// encryptionService implements the EncryptionService interface as a thin
// wrapper around internal/crypto. The key is fetched from config by the
// calling service and passed per call.
type encryptionService struct{}

// NewEncryptionService creates a new EncryptionService instance.
func NewEncryptionService() EncryptionService {
	return &encryptionService{}
}

// Encrypt delegates the encryption task to the crypto package.
func (s *encryptionService) Encrypt(plainText string, key []byte) (string, error) {
	encryptedData, err := crypto.Encrypt(plainText, key)
	if err != nil {
		return "", fmt.Errorf("encryption_service: failed to encrypt: %w", err)
	}
	return encryptedData, nil
}

// Decrypt delegates the decryption task to the crypto package.
func (s *encryptionService) Decrypt(cipherTextBase64 string, key []byte) (string, error) {
	decryptedData, err := crypto.Decrypt(cipherTextBase64, key)
	if err != nil {
		return "", fmt.Errorf("encryption_service: failed to decrypt: %w", err)
	}
	return decryptedData, nil
}
