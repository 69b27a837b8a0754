// Package rijndael реализует блочный шифр AES (Rijndael с блоком 128 бит)
// для ключей длиной 128, 192 и 256 бит.
package rijndael

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// BlockSize — размер блока AES в байтах.
const BlockSize = 16

// Nb — число 32-битных столбцов в состоянии.
const Nb = 4

type KeySize int

const (
	Key128 KeySize = 16
	Key192 KeySize = 24
	Key256 KeySize = 32
)

// Nk возвращает длину ключа в 32-битных словах.
func (k KeySize) Nk() int {
	return int(k) / 4
}

// Nr возвращает число раундов.
func (k KeySize) Nr() int {
	return k.Nk() + 6
}

func (k KeySize) String() string {
	return "AES-" + strconv.Itoa(int(k)*8)
}

// Valid сообщает, поддерживается ли длина ключа.
func (k KeySize) Valid() bool {
	switch k {
	case Key128, Key192, Key256:
		return true
	}
	return false
}

// KeySizeError возвращается при неподдерживаемой длине ключа в байтах.
type KeySizeError int

func (k KeySizeError) Error() string {
	return fmt.Sprintf("rijndael: неверная длина ключа: %d байт (допустимо 16, 24 или 32)", int(k))
}

// Cipher — экземпляр AES с развернутым ключом. После создания раундовые ключи
// только читаются, поэтому один Cipher можно использовать из нескольких
// горутин одновременно.
type Cipher struct {
	keySize   KeySize
	roundKeys [][BlockSize]byte
}

// NewCipher создает шифр по ключу из 16, 24 или 32 байт.
func NewCipher(key []byte) (*Cipher, error) {
	words, err := keyWords(key)
	if err != nil {
		return nil, err
	}
	return newCipher(words), nil
}

// NewCipherFromWords создает шифр по ключу, уже разбитому на 4, 6 или 8
// 32-битных слов.
func NewCipherFromWords(words []uint32) (*Cipher, error) {
	if !KeySize(len(words) * 4).Valid() {
		return nil, KeySizeError(len(words) * 4)
	}
	w := make([]uint32, len(words))
	copy(w, words)
	return newCipher(w), nil
}

func newCipher(words []uint32) *Cipher {
	return &Cipher{
		keySize:   KeySize(len(words) * 4),
		roundKeys: ExpandKey(words),
	}
}

// SetKey заменяет ключ и заново разворачивает раундовые ключи.
// Вызов не должен пересекаться с шифрованием в других горутинах.
func (c *Cipher) SetKey(key []byte) error {
	words, err := keyWords(key)
	if err != nil {
		return err
	}
	c.keySize = KeySize(len(key))
	c.roundKeys = ExpandKey(words)
	return nil
}

func keyWords(key []byte) ([]uint32, error) {
	if !KeySize(len(key)).Valid() {
		return nil, KeySizeError(len(key))
	}
	words := make([]uint32, len(key)/4)
	for i := range words {
		words[i] = binary.BigEndian.Uint32(key[4*i:])
	}
	return words, nil
}

func (c *Cipher) BlockSize() int { return BlockSize }

func (c *Cipher) KeySize() KeySize { return c.keySize }

// Rounds возвращает число раундов Nr.
func (c *Cipher) Rounds() int { return c.keySize.Nr() }

// RoundKey возвращает копию раундового ключа с номером round из [0, Nr].
func (c *Cipher) RoundKey(round int) [BlockSize]byte {
	return c.roundKeys[round]
}

const (
	errShortInput  = "rijndael: входные данные короче блока"
	errShortOutput = "rijndael: выходной буфер короче блока"
)

// EncryptBlock шифрует первые 16 байт block на месте.
func (c *Cipher) EncryptBlock(block []byte) {
	if len(block) < BlockSize {
		panic(errShortInput)
	}
	nr := c.Rounds()

	var s state
	s.load(block)
	s.addRoundKey(&c.roundKeys[0])
	for round := 1; round < nr; round++ {
		s.subBytes()
		s.shiftRows()
		s.mixColumns()
		s.addRoundKey(&c.roundKeys[round])
	}
	s.subBytes()
	s.shiftRows()
	s.addRoundKey(&c.roundKeys[nr])
	s.store(block)
}

// DecryptBlock расшифровывает первые 16 байт block на месте.
func (c *Cipher) DecryptBlock(block []byte) {
	if len(block) < BlockSize {
		panic(errShortInput)
	}
	nr := c.Rounds()

	var s state
	s.load(block)
	s.addRoundKey(&c.roundKeys[nr])
	for round := nr - 1; round > 0; round-- {
		s.invShiftRows()
		s.invSubBytes()
		s.addRoundKey(&c.roundKeys[round])
		s.invMixColumns()
	}
	s.invShiftRows()
	s.invSubBytes()
	s.addRoundKey(&c.roundKeys[0])
	s.store(block)
}

// Encrypt реализует crypto/cipher.Block.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic(errShortInput)
	}
	if len(dst) < BlockSize {
		panic(errShortOutput)
	}
	copy(dst[:BlockSize], src[:BlockSize])
	c.EncryptBlock(dst)
}

// Decrypt реализует crypto/cipher.Block.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic(errShortInput)
	}
	if len(dst) < BlockSize {
		panic(errShortOutput)
	}
	copy(dst[:BlockSize], src[:BlockSize])
	c.DecryptBlock(dst)
}
