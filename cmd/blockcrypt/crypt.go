package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/SymmetricChaos/crypto-gui-sub003/cipher"
	"github.com/SymmetricChaos/crypto-gui-sub003/envelope"
	"github.com/SymmetricChaos/crypto-gui-sub003/kdf"
	"github.com/SymmetricChaos/crypto-gui-sub003/padding"
	"github.com/SymmetricChaos/crypto-gui-sub003/rijndael"
)

// cryptFlags — флаги, общие для encrypt, decrypt и vault.
type cryptFlags struct {
	in, out string
	pass    string
	key, iv string
	mode    string
	padding string
	size    int
	hex     bool

	kdfTime    uint
	kdfMemory  uint
	kdfThreads uint
}

func (f *cryptFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.in, "in", "-", "входной файл, - для stdin")
	fs.StringVar(&f.out, "out", "-", "выходной файл, - для stdout")
	fs.StringVar(&f.pass, "pass", "", "пароль (по умолчанию $BLOCKCRYPT_PASS)")
	fs.StringVar(&f.key, "key", "", "ключ в hex: 16, 24 или 32 байта")
	fs.StringVar(&f.iv, "iv", "", "IV в hex (только вместе с -key)")
	fs.StringVar(&f.mode, "mode", "CBC", "режим: ECB, CBC, PCBC, CFB, OFB, CTR")
	fs.StringVar(&f.padding, "padding", "PKCS7", "набивка: none, bit, pkcs7, ansix923, iso10126, zero")
	fs.IntVar(&f.size, "size", 256, "длина ключа в битах при шифровании по паролю")
	fs.BoolVar(&f.hex, "hex", false, "шифртекст в виде hex-строки")
	fs.UintVar(&f.kdfTime, "kdf-time", uint(kdf.DefaultParams.Time), "число проходов Argon2id")
	fs.UintVar(&f.kdfMemory, "kdf-memory", uint(kdf.DefaultParams.Memory), "память Argon2id в KiB")
	fs.UintVar(&f.kdfThreads, "kdf-threads", uint(kdf.DefaultParams.Threads), "число потоков Argon2id")
}

func (f *cryptFlags) passphrase() []byte {
	if f.pass != "" {
		return []byte(f.pass)
	}
	return []byte(os.Getenv("BLOCKCRYPT_PASS"))
}

func (f *cryptFlags) options() (envelope.Options, error) {
	mode, err := cipher.ParseMode(f.mode)
	if err != nil {
		return envelope.Options{}, err
	}
	scheme, err := padding.ParseScheme(f.padding)
	if err != nil {
		return envelope.Options{}, err
	}
	size := rijndael.KeySize(f.size / 8)
	if f.size%8 != 0 || !size.Valid() {
		return envelope.Options{}, fmt.Errorf("неподдерживаемая длина ключа: %d бит", f.size)
	}
	params := kdf.Params{
		Time:    uint32(min(f.kdfTime, kdf.MaxTime+1)),
		Memory:  uint32(min(f.kdfMemory, kdf.MaxMemory+1)),
		Threads: uint8(min(f.kdfThreads, kdf.MaxThreads+1)),
	}
	if err := params.Validate(); err != nil {
		return envelope.Options{}, err
	}
	return envelope.Options{KeySize: size, Mode: mode, Padding: scheme, KDF: params}, nil
}

func runCrypt(args []string, stdin io.Reader, stdout io.Writer, encrypt bool) error {
	name := "decrypt"
	if encrypt {
		name = "encrypt"
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	var f cryptFlags
	f.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	input, err := readInput(f.in, stdin)
	if err != nil {
		return err
	}
	if !encrypt && f.hex {
		if input, err = hex.DecodeString(strings.TrimSpace(string(input))); err != nil {
			return fmt.Errorf("ошибка разбора hex: %w", err)
		}
	}

	var output []byte
	switch {
	case f.key != "":
		output, err = cryptWithKey(&f, input, encrypt)
	case encrypt:
		var opts envelope.Options
		if opts, err = f.options(); err == nil {
			output, err = envelope.Encrypt(f.passphrase(), input, opts)
		}
	default:
		output, err = envelope.Decrypt(f.passphrase(), input)
	}
	if err != nil {
		return err
	}

	if encrypt && f.hex {
		output = []byte(hex.EncodeToString(output) + "\n")
	}
	return writeOutput(f.out, stdout, output)
}

// cryptWithKey работает с сырым ключом. IV, если он не задан флагом,
// записывается перед шифртекстом.
func cryptWithKey(f *cryptFlags, input []byte, encrypt bool) ([]byte, error) {
	key, err := hex.DecodeString(f.key)
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора ключа: %w", err)
	}
	block, err := rijndael.NewCipher(key)
	if err != nil {
		return nil, err
	}
	opts, err := f.options()
	if err != nil {
		return nil, err
	}

	var iv []byte
	prefixed := f.iv == "" && opts.Mode.RequiresIV()
	if f.iv != "" {
		if iv, err = hex.DecodeString(f.iv); err != nil {
			return nil, fmt.Errorf("ошибка разбора IV: %w", err)
		}
	} else if prefixed && !encrypt {
		if len(input) < rijndael.BlockSize {
			return nil, errors.New("шифртекст короче IV")
		}
		iv, input = input[:rijndael.BlockSize], input[rijndael.BlockSize:]
	}

	ctx, err := cipher.NewContext(block, opts.Mode, opts.Padding, iv)
	if err != nil {
		return nil, err
	}
	if !encrypt {
		return ctx.Decrypt(input)
	}

	ct, err := ctx.Encrypt(input)
	if err != nil {
		return nil, err
	}
	if prefixed {
		return append(ctx.IV(), ct...), nil
	}
	return ct, nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла: %w", err)
	}
	return data, nil
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "-" {
		_, err := io.Copy(stdout, bytes.NewReader(data))
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("ошибка записи файла: %w", err)
	}
	return nil
}
