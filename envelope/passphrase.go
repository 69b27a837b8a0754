package envelope

import (
	"github.com/SymmetricChaos/crypto-gui-sub003/cipher"
	"github.com/SymmetricChaos/crypto-gui-sub003/kdf"
	"github.com/SymmetricChaos/crypto-gui-sub003/padding"
	"github.com/SymmetricChaos/crypto-gui-sub003/rijndael"
)

// Options задают параметры шифрования по паролю.
type Options struct {
	KeySize rijndael.KeySize
	Mode    cipher.Mode
	Padding padding.Scheme
	// KDF — стоимость Argon2id; нулевое значение заменяется на
	// kdf.DefaultParams.
	KDF kdf.Params
}

// DefaultOptions — AES-256 в режиме CBC с набивкой PKCS7.
var DefaultOptions = Options{
	KeySize: rijndael.Key256,
	Mode:    cipher.CBC,
	Padding: padding.PKCS,
	KDF:     kdf.DefaultParams,
}

// Encrypt выводит ключи из пароля со свежей солью, шифрует plaintext со
// случайным IV и возвращает сериализованный конверт.
func Encrypt(passphrase, plaintext []byte, opts Options) ([]byte, error) {
	salt, err := kdf.NewSalt()
	if err != nil {
		return nil, err
	}
	params := opts.KDF
	if params == (kdf.Params{}) {
		params = kdf.DefaultParams
	}
	keys, err := kdf.Derive(passphrase, salt, opts.KeySize, params)
	if err != nil {
		return nil, err
	}

	h := Header{
		KeySize: opts.KeySize,
		Mode:    opts.Mode,
		Padding: opts.Padding,
		KDF:     params,
		Salt:    salt,
	}
	if opts.Mode.RequiresIV() {
		if h.IV, err = cipher.GenerateIV(rijndael.BlockSize); err != nil {
			return nil, err
		}
	}

	e, err := Seal(keys, h, plaintext)
	if err != nil {
		return nil, err
	}
	return e.Marshal(), nil
}

// Decrypt разбирает конверт, выводит ключи из пароля с параметрами Argon2
// из заголовка и расшифровывает его.
func Decrypt(passphrase, data []byte) ([]byte, error) {
	e, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	keys, err := kdf.Derive(passphrase, e.Salt, e.KeySize, e.KDF)
	if err != nil {
		return nil, err
	}
	return Open(keys, e)
}
