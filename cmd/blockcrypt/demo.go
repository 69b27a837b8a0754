package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"runtime"

	"golang.org/x/sys/cpu"

	"github.com/SymmetricChaos/crypto-gui-sub003/cipher"
	"github.com/SymmetricChaos/crypto-gui-sub003/gf"
	"github.com/SymmetricChaos/crypto-gui-sub003/padding"
	"github.com/SymmetricChaos/crypto-gui-sub003/rijndael"
)

func runDemo(w io.Writer) error {
	demonstrateGF256(w)
	if err := demonstrateKnownAnswer(w); err != nil {
		return err
	}
	return demonstrateModes(w)
}

func demonstrateGF256(w io.Writer) {
	fmt.Fprintln(w, "Арифметика GF(2^8)")
	service := gf.NewGF256Service()

	a, b := byte(0x57), byte(0x83)
	fmt.Fprintf(w, "  Сложение: 0x%02X + 0x%02X = 0x%02X\n", a, b, service.Add(a, b))

	product, err := service.Multiply(a, b, gf.AESModulus)
	if err != nil {
		log.Printf("ошибка умножения: %v", err)
	} else {
		fmt.Fprintf(w, "  Умножение: 0x%02X * 0x%02X (mod 0x1%02X) = 0x%02X\n", a, b, gf.AESModulus, product)
	}

	inv, err := service.Inverse(a, gf.AESModulus)
	if err != nil {
		log.Printf("ошибка нахождения обратного: %v", err)
	} else {
		fmt.Fprintf(w, "  Обратный элемент: inv(0x%02X) = 0x%02X\n", a, inv)
	}

	irreducible := service.GetAllIrreducible()
	fmt.Fprintf(w, "  Неприводимых полиномов степени 8: %d, первые: ", len(irreducible))
	for i := 0; i < 5 && i < len(irreducible); i++ {
		fmt.Fprintf(w, "0x1%02X ", irreducible[i])
	}
	fmt.Fprintln(w)
}

// demonstrateKnownAnswer шифрует контрольный пример из FIPS-197 (приложение C.1).
func demonstrateKnownAnswer(w io.Writer) error {
	key, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	block, _ := hex.DecodeString("00112233445566778899aabbccddeeff")
	want, _ := hex.DecodeString("69c4e0d86a7b0430d8cdb78070b4c55a")

	c, err := rijndael.NewCipher(key)
	if err != nil {
		return err
	}
	c.EncryptBlock(block)

	status := "совпадает"
	if !bytes.Equal(block, want) {
		status = "НЕ совпадает"
	}
	fmt.Fprintf(w, "\nКонтрольный пример AES-128: %x (%s)\n", block, status)
	return nil
}

func demonstrateModes(w io.Writer) error {
	fmt.Fprintln(w, "\nРежимы шифрования")
	plaintext := []byte("Hello, Rijndael! This is a test message for encryption.")

	for _, size := range []rijndael.KeySize{rijndael.Key128, rijndael.Key192, rijndael.Key256} {
		key := bytes.Repeat([]byte{0x2b}, int(size))
		block, err := rijndael.NewCipher(key)
		if err != nil {
			return err
		}

		for _, mode := range cipher.Modes() {
			for _, scheme := range demoSchemes(mode) {
				ctx, err := cipher.NewContext(block, mode, scheme, nil)
				if err != nil {
					return err
				}
				ct, err := ctx.Encrypt(plaintext)
				if err != nil {
					log.Printf("%s %s/%s: ошибка шифрования: %v", size, mode, scheme, err)
					continue
				}
				pt, err := ctx.Decrypt(ct)
				if err != nil {
					log.Printf("%s %s/%s: ошибка дешифрования: %v", size, mode, scheme, err)
					continue
				}
				ok := "ok"
				if !bytes.Equal(pt, plaintext) {
					ok = "ОШИБКА"
				}
				fmt.Fprintf(w, "  %s %-4s %-10s %3d байт  %s\n", size, mode, scheme, len(ct), ok)
			}
		}
	}
	return nil
}

// demoSchemes перечисляет схемы набивки для режима. Потоковые режимы не
// дополняют данные, поэтому для них достаточно None.
func demoSchemes(mode cipher.Mode) []padding.Scheme {
	if !mode.RequiresPadding() {
		return []padding.Scheme{padding.None}
	}
	var schemes []padding.Scheme
	for _, s := range padding.Schemes() {
		if s != padding.None {
			schemes = append(schemes, s)
		}
	}
	return schemes
}

func runInfo(w io.Writer) error {
	fmt.Fprintf(w, "платформа:        %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "AES-NI (x86):     %v\n", cpu.X86.HasAES)
	fmt.Fprintf(w, "AES (arm64):      %v\n", cpu.ARM64.HasAES)
	fmt.Fprintln(w, "реализация:       табличная, без аппаратного ускорения")
	return nil
}
