package secret

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrCorruptSecret 密文格式损坏或校验失败
var ErrCorruptSecret = errors.New("secret: corrupt or truncated ciphertext")

// Codec 凭证落库加解密, 进程级单 key, 不支持轮换
type Codec struct {
	aead cipher.AEAD
}

// NewCodec key 为 64 位十六进制字符串(32 字节)
func NewCodec(hexKey string) (*Codec, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("NewCodec failed at decode key: %w", err)
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("NewCodec failed at check key size: got %d bytes, want %d", len(key), chacha20poly1305.KeySize)
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("NewCodec failed at create aead: %w", err)
	}
	return &Codec{aead: aead}, nil
}

// Seal 每次调用随机 nonce, 相同明文产生不同密文, 输出 hex(nonce || ciphertext)
func (c *Codec) Seal(plaintext string) (string, error) {
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("Seal failed at generate nonce: %w", err)
	}
	out := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return hex.EncodeToString(out), nil
}

// Open 任意格式错误统一返回 ErrCorruptSecret
func (c *Codec) Open(ciphertext string) (string, error) {
	raw, err := hex.DecodeString(ciphertext)
	if err != nil {
		return "", ErrCorruptSecret
	}
	if len(raw) < chacha20poly1305.NonceSizeX {
		return "", ErrCorruptSecret
	}
	nonce, sealed := raw[:chacha20poly1305.NonceSizeX], raw[chacha20poly1305.NonceSizeX:]
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrCorruptSecret
	}
	return string(plain), nil
}
