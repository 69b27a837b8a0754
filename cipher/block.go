// Package cipher реализует режимы шифрования поверх произвольного блочного
// шифра и оркестрацию набивки вокруг них.
//
// Функции режимов работают на месте над буфером вызывающего и паникуют, если
// длина буфера нарушает контракт режима: набивка к этому моменту уже должна
// быть применена. Ошибки, которые можно обработать, возвращает Cipher.
package cipher

import (
	"crypto/rand"
	"errors"
	"fmt"
)

// Block — блочный шифр с фиксированным размером блока, шифрующий на месте.
type Block interface {
	// BlockSize возвращает размер блока в байтах.
	BlockSize() int
	// EncryptBlock шифрует первые BlockSize байт block на месте.
	EncryptBlock(block []byte)
	// DecryptBlock расшифровывает первые BlockSize байт block на месте.
	DecryptBlock(block []byte)
}

var (
	// ErrIVLength — длина IV или счетчика не равна размеру блока.
	ErrIVLength = errors.New("неверная длина IV")
	// ErrUnsupportedMode — неизвестный режим шифрования.
	ErrUnsupportedMode = errors.New("неподдерживаемый режим")
)

// GenerateIV возвращает случайный IV длиной blockSize.
func GenerateIV(blockSize int) ([]byte, error) {
	iv := make([]byte, blockSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("ошибка генерации IV: %w", err)
	}
	return iv, nil
}

func mustFullBlocks(b Block, data []byte) {
	if len(data)%b.BlockSize() != 0 {
		panic("cipher: длина данных не кратна размеру блока")
	}
}

func mustIV(b Block, iv []byte) {
	if len(iv) != b.BlockSize() {
		panic("cipher: длина IV не равна размеру блока")
	}
}

// xorBytes выполняет dst[i] ^= src[i] для i < min(len(dst), len(src)).
func xorBytes(dst, src []byte) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] ^= src[i]
	}
	return n
}

func dup(p []byte) []byte {
	q := make([]byte, len(p))
	copy(q, p)
	return q
}

// incrementCounter увеличивает counter как big-endian число по модулю 2^(8n).
func incrementCounter(counter []byte) {
	for i := len(counter) - 1; i >= 0; i-- {
		counter[i]++
		if counter[i] != 0 {
			break
		}
	}
}
