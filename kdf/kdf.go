// Package kdf выводит ключ шифрования и ключ имитовставки из пароля
// функцией Argon2id.
package kdf

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/SymmetricChaos/crypto-gui-sub003/rijndael"
)

const (
	// SaltSize — длина соли в байтах.
	SaltSize = 16
	// MACKeySize — длина ключа имитовставки в байтах.
	MACKeySize = 32

	// Верхние границы стоимости, принимаемые из чужих заголовков.
	MaxTime    = 16
	MaxMemory  = 1 << 21 // KiB, 2 GiB
	MaxThreads = 64
)

var (
	ErrEmptyPassphrase = errors.New("пустой пароль")
	ErrParams          = errors.New("недопустимые параметры Argon2")
)

// Params — параметры стоимости Argon2id. Memory задается в KiB.
type Params struct {
	Time    uint32
	Memory  uint32
	Threads uint8
}

// DefaultParams — второй рекомендуемый набор RFC 9106: t=3, m=64 MiB, p=4.
var DefaultParams = Params{Time: 3, Memory: 64 * 1024, Threads: 4}

// Validate проверяет, что параметры допустимы для Argon2 и не превышают
// верхних границ.
func (p Params) Validate() error {
	switch {
	case p.Time == 0 || p.Time > MaxTime:
		return fmt.Errorf("%w: time=%d", ErrParams, p.Time)
	case p.Threads == 0 || p.Threads > MaxThreads:
		return fmt.Errorf("%w: threads=%d", ErrParams, p.Threads)
	case p.Memory < 8*uint32(p.Threads) || p.Memory > MaxMemory:
		return fmt.Errorf("%w: memory=%d KiB", ErrParams, p.Memory)
	}
	return nil
}

// Keys — ключевой материал, выведенный из одного пароля.
type Keys struct {
	Cipher []byte
	MAC    []byte
}

// Derive выводит ключ шифра длины size и ключ имитовставки из пароля и соли
// одним вызовом Argon2id. Длина вывода входит в вычисление Argon2, поэтому
// ключи разной длины из одного пароля не связаны.
func Derive(passphrase, salt []byte, size rijndael.KeySize, params Params) (Keys, error) {
	if len(passphrase) == 0 {
		return Keys{}, ErrEmptyPassphrase
	}
	if !size.Valid() {
		return Keys{}, rijndael.KeySizeError(size)
	}
	if err := params.Validate(); err != nil {
		return Keys{}, err
	}

	out := argon2.IDKey(passphrase, salt, params.Time, params.Memory, params.Threads, uint32(size)+MACKeySize)
	return Keys{Cipher: out[:size:size], MAC: out[size:]}, nil
}

// NewSalt возвращает случайную соль.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("ошибка генерации соли: %w", err)
	}
	return salt, nil
}
