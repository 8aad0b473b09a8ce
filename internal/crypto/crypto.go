// Package crypto provides the symmetric encryption used to store mobile
// money phone numbers at rest. Payments carry DRC subscriber numbers, so
// the payment ledger never persists them in clear text.
//
// Wire format: the random IV and the AES-256-CBC ciphertext are each hex
// encoded, concatenated (IV first), and the whole string is Base64 encoded.
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
)

const (
	// keyLength is the AES-256 key size in bytes.
	keyLength = 32
	// aesBlockSize is the AES block size, also the CBC IV length.
	aesBlockSize = 16
	ivLength     = aesBlockSize
	// ivHexLength is the IV's length once hex encoded.
	ivHexLength = ivLength * 2
)

// pkcs7Pad pads data to a multiple of blockSize using PKCS#7.
func pkcs7Pad(data []byte, blockSize int) ([]byte, error) {
	if blockSize <= 0 {
		return nil, errors.New("block size must be positive")
	}
	if blockSize > 255 {
		return nil, errors.New("block size cannot be greater than 255")
	}
	padding := blockSize - (len(data) % blockSize)
	padText := bytes.Repeat([]byte{byte(padding)}, padding)
	return append(data, padText...), nil
}

// pkcs7Unpad strips PKCS#7 padding, validating every padding byte.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if blockSize <= 0 {
		return nil, errors.New("block size must be positive")
	}
	if len(data) == 0 {
		return nil, errors.New("data cannot be empty")
	}
	if len(data)%blockSize != 0 {
		return nil, errors.New("data length is not a multiple of block size")
	}

	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize {
		return nil, errors.New("invalid pkcs7 padding: padding size is zero or exceeds block size")
	}
	for i := 0; i < padding; i++ {
		if data[len(data)-padding+i] != byte(padding) {
			return nil, errors.New("invalid pkcs7 padding: padding bytes are inconsistent")
		}
	}

	return data[:len(data)-padding], nil
}

// Encrypt encrypts a phone number (or any short plaintext) with AES-256-CBC
// under a fresh random IV and returns it in the package's wire format.
func Encrypt(plainText string, key []byte) (string, error) {
	if len(key) != keyLength {
		return "", fmt.Errorf("invalid key length: must be %d bytes for AES-256", keyLength)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create AES cipher: %w", err)
	}

	iv := make([]byte, ivLength)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to generate IV: %w", err)
	}

	padded, err := pkcs7Pad([]byte(plainText), aesBlockSize)
	if err != nil {
		return "", fmt.Errorf("failed to pad plaintext: %w", err)
	}

	cipherText := make([]byte, len(padded))
	mode := cipher.NewCBCEncrypter(block, iv)
	mode.CryptBlocks(cipherText, padded)

	combined := hex.EncodeToString(iv) + hex.EncodeToString(cipherText)
	return base64.StdEncoding.EncodeToString([]byte(combined)), nil
}

// Decrypt reverses Encrypt. It rejects inputs that are too short to carry an
// IV, hold non-hex payloads, or unpad inconsistently, so a corrupted ledger
// entry surfaces as an error rather than garbage output.
func Decrypt(cipherTextBase64 string, key []byte) (string, error) {
	if len(key) != keyLength {
		return "", fmt.Errorf("invalid key length: must be %d bytes for AES-256", keyLength)
	}

	decoded, err := base64.StdEncoding.DecodeString(cipherTextBase64)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64: %w", err)
	}

	combinedHex := string(decoded)
	if len(combinedHex) < ivHexLength {
		return "", errors.New("invalid ciphertext: too short to contain IV")
	}

	iv, err := hex.DecodeString(combinedHex[:ivHexLength])
	if err != nil {
		return "", fmt.Errorf("failed to decode IV from hex: %w", err)
	}
	if len(iv) != ivLength {
		return "", fmt.Errorf("invalid IV length after hex decoding: expected %d, got %d", ivLength, len(iv))
	}

	cipherText, err := hex.DecodeString(combinedHex[ivHexLength:])
	if err != nil {
		return "", fmt.Errorf("failed to decode ciphertext from hex: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create AES cipher: %w", err)
	}

	if len(cipherText)%aesBlockSize != 0 {
		// Truncated ciphertext, refuse to decrypt.
		return "", errors.New("ciphertext is not a multiple of the block size")
	}

	padded := make([]byte, len(cipherText))
	mode := cipher.NewCBCDecrypter(block, iv)
	mode.CryptBlocks(padded, cipherText)

	plainText, err := pkcs7Unpad(padded, aesBlockSize)
	if err != nil {
		return "", fmt.Errorf("failed to unpad plaintext: %w", err)
	}

	return string(plainText), nil
}
