package cipher

import (
	"fmt"
	"os"
	"sync"

	"github.com/SymmetricChaos/crypto-gui-sub003/padding"
)

// Context хранит настройки шифрования: режим, схему набивки и IV. Блочный
// шифр с уже развернутым ключом переиспользуется при смене настроек.
type Context struct {
	mu     sync.RWMutex
	block  Block
	mode   Mode
	scheme padding.Scheme
	iv     []byte
}

// NewContext создает контекст. Если режиму нужен IV, а iv == nil,
// генерируется случайный IV; его можно получить через IV.
func NewContext(block Block, mode Mode, scheme padding.Scheme, iv []byte) (*Context, error) {
	if scheme.Padding() == nil {
		return nil, fmt.Errorf("неподдерживаемый режим набивки: %v", scheme)
	}
	ctx := &Context{
		block:  block,
		mode:   mode,
		scheme: scheme,
	}
	if iv == nil && mode.RequiresIV() {
		generated, err := GenerateIV(block.BlockSize())
		if err != nil {
			return nil, err
		}
		iv = generated
	}
	if err := ctx.SetIV(iv); err != nil {
		return nil, err
	}
	return ctx, nil
}

// SetIV заменяет IV; nil сбрасывает его (допустимо только для ECB).
func (ctx *Context) SetIV(iv []byte) error {
	if iv != nil && len(iv) != ctx.block.BlockSize() {
		return fmt.Errorf("%w: ожидается %d, получено %d", ErrIVLength, ctx.block.BlockSize(), len(iv))
	}
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	if iv == nil {
		ctx.iv = nil
	} else {
		ctx.iv = dup(iv)
	}
	return nil
}

func (ctx *Context) SetMode(mode Mode) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.mode = mode
}

func (ctx *Context) SetPadding(scheme padding.Scheme) error {
	if scheme.Padding() == nil {
		return fmt.Errorf("неподдерживаемый режим набивки: %v", scheme)
	}
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.scheme = scheme
	return nil
}

func (ctx *Context) Mode() Mode {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.mode
}

func (ctx *Context) Padding() padding.Scheme {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.scheme
}

// IV возвращает копию текущего IV.
func (ctx *Context) IV() []byte {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	if ctx.iv == nil {
		return nil
	}
	return dup(ctx.iv)
}

func (ctx *Context) cipher() (*Cipher, []byte) {
	return NewCipher(ctx.block, ctx.mode, ctx.scheme.Padding()), ctx.iv
}

func (ctx *Context) Encrypt(data []byte) ([]byte, error) {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()

	c, iv := ctx.cipher()
	return c.Encrypt(data, iv)
}

func (ctx *Context) Decrypt(data []byte) ([]byte, error) {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()

	c, iv := ctx.cipher()
	return c.Decrypt(data, iv)
}

func (ctx *Context) EncryptFile(inputPath, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("ошибка чтения файла: %w", err)
	}
	enc, err := ctx.Encrypt(data)
	if err != nil {
		return fmt.Errorf("ошибка шифрования: %w", err)
	}
	return os.WriteFile(outputPath, enc, 0644)
}

func (ctx *Context) DecryptFile(inputPath, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("ошибка чтения файла: %w", err)
	}
	dec, err := ctx.Decrypt(data)
	if err != nil {
		return fmt.Errorf("ошибка дешифрования: %w", err)
	}
	return os.WriteFile(outputPath, dec, 0644)
}
