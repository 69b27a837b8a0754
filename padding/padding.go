// Package padding реализует схемы набивки, дополняющие сообщение до длины,
// кратной размеру блока.
package padding

import (
	"crypto/rand"
	"errors"
	"fmt"
)

var (
	// ErrInputLength — длина данных не кратна размеру блока там, где это требуется.
	ErrInputLength = errors.New("длина данных не кратна размеру блока")
	// ErrInvalidPadding — байты набивки не соответствуют схеме.
	ErrInvalidPadding = errors.New("неверный padding")
)

// Padding добавляет и снимает набивку. Pad не изменяет data; Unpad
// возвращает подсрез data.
type Padding interface {
	Pad(data []byte, blockSize int) ([]byte, error)
	Unpad(data []byte, blockSize int) ([]byte, error)
}

func checkAligned(data []byte, blockSize int) error {
	if len(data)%blockSize != 0 {
		return fmt.Errorf("%w: %d байт при блоке %d", ErrInputLength, len(data), blockSize)
	}
	return nil
}

// grow копирует data в новый срез с запасом под n байт набивки.
func grow(data []byte, n int) []byte {
	out := make([]byte, len(data), len(data)+n)
	copy(out, data)
	return out
}

// NoPadding только проверяет, что длина уже кратна размеру блока.
type NoPadding struct{}

func (p *NoPadding) Pad(data []byte, blockSize int) ([]byte, error) {
	if err := checkAligned(data, blockSize); err != nil {
		return nil, err
	}
	return grow(data, 0), nil
}

func (p *NoPadding) Unpad(data []byte, blockSize int) ([]byte, error) {
	if err := checkAligned(data, blockSize); err != nil {
		return nil, err
	}
	return data, nil
}

// BitPadding добавляет байт 0x80 и нули до границы блока (ISO/IEC 7816-4).
// Набивка добавляется всегда, даже к выровненным данным.
type BitPadding struct{}

func (p *BitPadding) Pad(data []byte, blockSize int) ([]byte, error) {
	n := blockSize - len(data)%blockSize
	out := append(grow(data, n), 0x80)
	for len(out)%blockSize != 0 {
		out = append(out, 0x00)
	}
	return out, nil
}

func (p *BitPadding) Unpad(data []byte, blockSize int) ([]byte, error) {
	i := len(data) - 1
	for i >= 0 && data[i] == 0x00 {
		i--
	}
	if i < 0 {
		return nil, fmt.Errorf("%w: не найден маркер 0x80", ErrInvalidPadding)
	}
	if data[i] != 0x80 {
		return nil, fmt.Errorf("%w: ожидался маркер 0x80, получено 0x%02X", ErrInvalidPadding, data[i])
	}
	return data[:i], nil
}

// PKCS7Padding добавляет n байт со значением n.
type PKCS7Padding struct{}

func (p *PKCS7Padding) Pad(data []byte, blockSize int) ([]byte, error) {
	n := blockSize - len(data)%blockSize
	out := grow(data, n)
	for i := 0; i < n; i++ {
		out = append(out, byte(n))
	}
	return out, nil
}

func (p *PKCS7Padding) Unpad(data []byte, blockSize int) ([]byte, error) {
	n, err := trailerLength(data, blockSize)
	if err != nil {
		return nil, err
	}
	for i := len(data) - n; i < len(data); i++ {
		if data[i] != byte(n) {
			return nil, fmt.Errorf("%w: байт 0x%02X вместо 0x%02X", ErrInvalidPadding, data[i], n)
		}
	}
	return data[:len(data)-n], nil
}

// ANSIX923Padding добавляет нули и последним байтом длину набивки.
type ANSIX923Padding struct{}

func (p *ANSIX923Padding) Pad(data []byte, blockSize int) ([]byte, error) {
	n := blockSize - len(data)%blockSize
	out := append(grow(data, n), make([]byte, n-1)...)
	return append(out, byte(n)), nil
}

func (p *ANSIX923Padding) Unpad(data []byte, blockSize int) ([]byte, error) {
	n, err := trailerLength(data, blockSize)
	if err != nil {
		return nil, err
	}
	for i := len(data) - n; i < len(data)-1; i++ {
		if data[i] != 0 {
			return nil, fmt.Errorf("%w: ненулевой байт набивки 0x%02X", ErrInvalidPadding, data[i])
		}
	}
	return data[:len(data)-n], nil
}

// ISO10126Padding добавляет случайные байты и последним байтом длину набивки.
type ISO10126Padding struct{}

func (p *ISO10126Padding) Pad(data []byte, blockSize int) ([]byte, error) {
	n := blockSize - len(data)%blockSize
	filler := make([]byte, n-1)
	if _, err := rand.Read(filler); err != nil {
		return nil, fmt.Errorf("ошибка генерации случайных данных: %w", err)
	}
	out := append(grow(data, n), filler...)
	return append(out, byte(n)), nil
}

func (p *ISO10126Padding) Unpad(data []byte, blockSize int) ([]byte, error) {
	n, err := trailerLength(data, blockSize)
	if err != nil {
		return nil, err
	}
	return data[:len(data)-n], nil
}

// ZeroPadding дополняет данные нулями до границы блока; выровненные данные
// не дополняются. Снятие неоднозначно: отбрасываются до blockSize-1
// хвостовых нулей, в том числе нули, которыми заканчивалось само сообщение.
type ZeroPadding struct{}

func (p *ZeroPadding) Pad(data []byte, blockSize int) ([]byte, error) {
	n := (blockSize - len(data)%blockSize) % blockSize
	return append(grow(data, n), make([]byte, n)...), nil
}

func (p *ZeroPadding) Unpad(data []byte, blockSize int) ([]byte, error) {
	if err := checkAligned(data, blockSize); err != nil {
		return nil, err
	}
	limit := len(data) - (blockSize - 1)
	i := len(data)
	for i > 0 && i > limit && data[i-1] == 0 {
		i--
	}
	return data[:i], nil
}

// trailerLength читает длину набивки из последнего байта.
func trailerLength(data []byte, blockSize int) (int, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: пустые данные", ErrInvalidPadding)
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return 0, fmt.Errorf("%w: недопустимая длина набивки %d", ErrInvalidPadding, n)
	}
	return n, nil
}
