// Package envelope упаковывает шифртекст вместе с параметрами шифрования и
// имитовставкой BLAKE2b, чтобы сообщение можно было расшифровать, зная
// только пароль.
//
// Формат (целые big-endian):
//
//	"BKC2" | keySize | mode | padding | time[4] | memory[4] | threads |
//	len(salt) | salt | len(iv) | iv | ciphertext | tag[32]
//
// Конверты "BKC1" с ключом без Argon2 не принимаются.
package envelope

import (
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/minio/blake2b-simd"

	"github.com/SymmetricChaos/crypto-gui-sub003/cipher"
	"github.com/SymmetricChaos/crypto-gui-sub003/kdf"
	"github.com/SymmetricChaos/crypto-gui-sub003/padding"
	"github.com/SymmetricChaos/crypto-gui-sub003/rijndael"
)

const (
	magic   = "BKC2"
	TagSize = 32

	// fixedSize — заголовок до соли: magic, три байта параметров шифра,
	// параметры Argon2 и байт длины соли.
	fixedSize = len(magic) + 3 + 9 + 1
)

var (
	// ErrFormat — данные не являются конвертом или повреждены.
	ErrFormat = errors.New("envelope: неверный формат")
	// ErrAuth — имитовставка не совпала: неверный пароль или изменённые данные.
	ErrAuth = errors.New("envelope: имитовставка не совпадает")
)

// Header описывает параметры, с которыми зашифровано сообщение.
type Header struct {
	KeySize rijndael.KeySize
	Mode    cipher.Mode
	Padding padding.Scheme
	KDF     kdf.Params
	Salt    []byte
	IV      []byte
}

type Envelope struct {
	Header
	Ciphertext []byte
	Tag        [TagSize]byte
}

func (h *Header) validate() error {
	if !h.KeySize.Valid() {
		return fmt.Errorf("%w: длина ключа %d", ErrFormat, int(h.KeySize))
	}
	if h.Mode.String() == "Unknown" {
		return fmt.Errorf("%w: режим %d", ErrFormat, int(h.Mode))
	}
	if h.Padding.Padding() == nil {
		return fmt.Errorf("%w: набивка %d", ErrFormat, int(h.Padding))
	}
	if err := h.KDF.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrFormat, err)
	}
	if len(h.Salt) > 0xff || len(h.IV) > 0xff {
		return fmt.Errorf("%w: слишком длинная соль или IV", ErrFormat)
	}
	return nil
}

// body сериализует всё, что покрывает имитовставка.
func (e *Envelope) body() []byte {
	out := make([]byte, 0, fixedSize+1+len(e.Salt)+len(e.IV)+len(e.Ciphertext)+TagSize)
	out = append(out, magic...)
	out = append(out, byte(e.KeySize), byte(e.Mode), byte(e.Padding))
	out = binary.BigEndian.AppendUint32(out, e.KDF.Time)
	out = binary.BigEndian.AppendUint32(out, e.KDF.Memory)
	out = append(out, e.KDF.Threads)
	out = append(out, byte(len(e.Salt)))
	out = append(out, e.Salt...)
	out = append(out, byte(len(e.IV)))
	out = append(out, e.IV...)
	return append(out, e.Ciphertext...)
}

// Marshal возвращает конверт в двоичном виде.
func (e *Envelope) Marshal() []byte {
	return append(e.body(), e.Tag[:]...)
}

// Unmarshal разбирает конверт. Имитовставка здесь не проверяется.
func Unmarshal(data []byte) (*Envelope, error) {
	if len(data) < fixedSize+1+TagSize || string(data[:len(magic)]) != magic {
		return nil, ErrFormat
	}
	e := &Envelope{}
	copy(e.Tag[:], data[len(data)-TagSize:])
	rest := data[len(magic) : len(data)-TagSize]

	e.KeySize = rijndael.KeySize(rest[0])
	e.Mode = cipher.Mode(rest[1])
	e.Padding = padding.Scheme(rest[2])
	e.KDF.Time = binary.BigEndian.Uint32(rest[3:7])
	e.KDF.Memory = binary.BigEndian.Uint32(rest[7:11])
	e.KDF.Threads = rest[11]
	rest = rest[12:]

	var err error
	if e.Salt, rest, err = readField(rest); err != nil {
		return nil, err
	}
	if e.IV, rest, err = readField(rest); err != nil {
		return nil, err
	}
	e.Ciphertext = append([]byte(nil), rest...)

	if err := e.Header.validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func readField(data []byte) ([]byte, []byte, error) {
	if len(data) < 1 || len(data) < 1+int(data[0]) {
		return nil, nil, fmt.Errorf("%w: данные обрезаны", ErrFormat)
	}
	n := int(data[0])
	return append([]byte(nil), data[1:1+n]...), data[1+n:], nil
}

func tag(key, body []byte) ([TagSize]byte, error) {
	var sum [TagSize]byte
	h, err := blake2b.New(&blake2b.Config{Size: TagSize, Key: key})
	if err != nil {
		return sum, fmt.Errorf("ошибка создания BLAKE2b: %w", err)
	}
	h.Write(body)
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

func newCipher(keys kdf.Keys, h *Header) (*cipher.Cipher, error) {
	block, err := rijndael.NewCipher(keys.Cipher)
	if err != nil {
		return nil, err
	}
	if block.KeySize() != h.KeySize {
		return nil, fmt.Errorf("%w: ключ %s, в заголовке %s", ErrFormat, block.KeySize(), h.KeySize)
	}
	return cipher.NewCipher(block, h.Mode, h.Padding.Padding()), nil
}

// Seal шифрует plaintext с параметрами h и вычисляет имитовставку.
func Seal(keys kdf.Keys, h Header, plaintext []byte) (*Envelope, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}
	c, err := newCipher(keys, &h)
	if err != nil {
		return nil, err
	}
	ct, err := c.Encrypt(plaintext, h.IV)
	if err != nil {
		return nil, err
	}

	e := &Envelope{Header: h, Ciphertext: ct}
	if e.Tag, err = tag(keys.MAC, e.body()); err != nil {
		return nil, err
	}
	return e, nil
}

// Open проверяет имитовставку и расшифровывает конверт.
func Open(keys kdf.Keys, e *Envelope) ([]byte, error) {
	want, err := tag(keys.MAC, e.body())
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare(want[:], e.Tag[:]) != 1 {
		return nil, ErrAuth
	}
	c, err := newCipher(keys, &e.Header)
	if err != nil {
		return nil, err
	}
	return c.Decrypt(e.Ciphertext, e.IV)
}
