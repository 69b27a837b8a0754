// Команда blockcrypt шифрует данные блочным шифром Rijndael (AES) в
// выбранном режиме и хранит зашифрованные конверты в базе sqlite.
//
//	blockcrypt encrypt -pass secret -in file.txt -out file.bkc
//	blockcrypt decrypt -pass secret -in file.bkc
//	blockcrypt encrypt -key 000102...0f -mode CTR -hex < file.txt
//	blockcrypt vault put -name notes -pass secret -in notes.txt
//	blockcrypt demo
//	blockcrypt info
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
)

const usage = `использование: blockcrypt <команда> [флаги]

команды:
  encrypt   зашифровать данные по паролю или по ключу
  decrypt   расшифровать данные
  vault     put | get | list | rm — хранилище конвертов
  demo      демонстрация арифметики GF(2^8) и режимов шифрования
  info      сведения о платформе`

var errUsage = errors.New(usage)

func main() {
	log.SetFlags(0)
	log.SetPrefix("blockcrypt: ")

	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "encrypt":
		return runCrypt(args[1:], stdin, stdout, true)
	case "decrypt":
		return runCrypt(args[1:], stdin, stdout, false)
	case "vault":
		return runVault(args[1:], stdin, stdout)
	case "demo":
		return runDemo(stdout)
	case "info":
		return runInfo(stdout)
	case "help", "-h", "--help":
		fmt.Fprintln(stdout, usage)
		return nil
	default:
		return fmt.Errorf("неизвестная команда %q\n%w", args[0], errUsage)
	}
}
