package cipher

import (
	"fmt"

	"github.com/SymmetricChaos/crypto-gui-sub003/padding"
)

// Cipher связывает блочный шифр, режим и набивку. Методы не изменяют
// переданные срезы и возвращают ошибки вместо паники.
type Cipher struct {
	block   Block
	mode    Mode
	padding padding.Padding
}

// NewCipher создает Cipher; pad == nil означает отсутствие набивки.
func NewCipher(block Block, mode Mode, pad padding.Padding) *Cipher {
	if pad == nil {
		pad = &padding.NoPadding{}
	}
	return &Cipher{
		block:   block,
		mode:    mode,
		padding: pad,
	}
}

func (c *Cipher) Mode() Mode { return c.mode }

func (c *Cipher) BlockSize() int { return c.block.BlockSize() }

func (c *Cipher) checkIV(iv []byte) error {
	if !c.mode.RequiresIV() {
		return nil
	}
	if bs := c.block.BlockSize(); len(iv) != bs {
		return fmt.Errorf("%w: ожидается %d, получено %d", ErrIVLength, bs, len(iv))
	}
	return nil
}

// Encrypt дополняет plaintext (если режим этого требует) и шифрует его.
// Для ECB iv игнорируется.
func (c *Cipher) Encrypt(plaintext, iv []byte) ([]byte, error) {
	if err := c.checkIV(iv); err != nil {
		return nil, err
	}

	var data []byte
	if c.mode.RequiresPadding() {
		padded, err := c.padding.Pad(plaintext, c.block.BlockSize())
		if err != nil {
			return nil, err
		}
		data = padded
	} else {
		data = dup(plaintext)
	}

	switch c.mode {
	case ECB:
		EncryptECB(c.block, data)
	case CBC:
		EncryptCBC(c.block, data, iv)
	case PCBC:
		EncryptPCBC(c.block, data, iv)
	case CFB:
		EncryptCFB(c.block, data, iv)
	case OFB:
		XORKeyStreamOFB(c.block, data, iv)
	case CTR:
		XORKeyStreamCTR(c.block, data, iv)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMode, int(c.mode))
	}
	return data, nil
}

// Decrypt расшифровывает ciphertext и снимает набивку.
func (c *Cipher) Decrypt(ciphertext, iv []byte) ([]byte, error) {
	if err := c.checkIV(iv); err != nil {
		return nil, err
	}
	bs := c.block.BlockSize()
	if c.mode.RequiresPadding() && len(ciphertext)%bs != 0 {
		return nil, fmt.Errorf("%w: шифртекст %d байт при блоке %d", padding.ErrInputLength, len(ciphertext), bs)
	}

	data := dup(ciphertext)
	switch c.mode {
	case ECB:
		DecryptECB(c.block, data)
	case CBC:
		DecryptCBC(c.block, data, iv)
	case PCBC:
		DecryptPCBC(c.block, data, iv)
	case CFB:
		DecryptCFB(c.block, data, iv)
	case OFB:
		XORKeyStreamOFB(c.block, data, iv)
	case CTR:
		XORKeyStreamCTR(c.block, data, iv)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMode, int(c.mode))
	}

	if c.mode.RequiresPadding() {
		return c.padding.Unpad(data, bs)
	}
	return data, nil
}
