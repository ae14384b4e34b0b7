// Package cryptojs implements the passphrase based AES scheme used by the
// CryptoJS library: PBKDF2-HMAC-SHA1 key derivation, AES-CBC, PKCS#7 padding
// and base64 transport encoding.
package cryptojs

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/mirzahilmi/amtrak-trains/internal/common/constant"
	"golang.org/x/crypto/pbkdf2"
)

var (
	ErrInvalidIV        = errors.New("cryptojs: iv must be 16 bytes")
	ErrInvalidBlockSize = errors.New("cryptojs: ciphertext is not a multiple of the block size")
	ErrInvalidPadding   = errors.New("cryptojs: invalid padding")
	ErrInvalidUTF8      = errors.New("cryptojs: plaintext is not valid utf-8")
)

// Params holds the values shared by every key derivation and cipher call.
// They are constants of the feed, never derived from the input.
type Params struct {
	Salt []byte
	IV   []byte
}

func ParseParams(saltHex, ivHex string) (Params, error) {
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return Params{}, fmt.Errorf("cryptojs: decode salt: %w", err)
	}
	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return Params{}, fmt.Errorf("cryptojs: decode iv: %w", err)
	}
	if len(iv) != aes.BlockSize {
		return Params{}, ErrInvalidIV
	}
	return Params{Salt: salt, IV: iv}, nil
}

// DefaultParams returns the compiled-in salt and IV.
func DefaultParams() Params {
	p, err := ParseParams(constant.CIPHER_SALT_HEX, constant.CIPHER_IV_HEX)
	if err != nil {
		panic(err)
	}
	return p
}

// DeriveKey stretches passphrase into a 128-bit AES key.
func DeriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key(
		[]byte(passphrase),
		salt,
		constant.CIPHER_ITERATIONS,
		constant.CIPHER_KEY_SIZE,
		sha1.New,
	)
}

// Decrypt decodes the base64 ciphertext and decrypts it with a key derived
// from passphrase.
func Decrypt(ciphertext, passphrase string, params Params) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("cryptojs: decode ciphertext: %w", err)
	}
	if len(raw)%aes.BlockSize != 0 {
		return "", ErrInvalidBlockSize
	}
	if len(params.IV) != aes.BlockSize {
		return "", ErrInvalidIV
	}

	block, err := aes.NewCipher(DeriveKey(passphrase, params.Salt))
	if err != nil {
		return "", err
	}
	plain := make([]byte, len(raw))
	cipher.NewCBCDecrypter(block, params.IV).CryptBlocks(plain, raw)

	plain, err = unpad(plain)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(plain) {
		return "", ErrInvalidUTF8
	}
	return string(plain), nil
}

// Encrypt is the inverse of Decrypt.
func Encrypt(plaintext, passphrase string, params Params) (string, error) {
	if len(params.IV) != aes.BlockSize {
		return "", ErrInvalidIV
	}
	block, err := aes.NewCipher(DeriveKey(passphrase, params.Salt))
	if err != nil {
		return "", err
	}
	data := pad([]byte(plaintext))
	cipher.NewCBCEncrypter(block, params.IV).CryptBlocks(data, data)
	return base64.StdEncoding.EncodeToString(data), nil
}

func pad(data []byte) []byte {
	n := aes.BlockSize - len(data)%aes.BlockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrInvalidPadding
	}
	n := int(data[len(data)-1])
	if n == 0 || n > aes.BlockSize || n > len(data) {
		return nil, ErrInvalidPadding
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrInvalidPadding
		}
	}
	return data[:len(data)-n], nil
}
