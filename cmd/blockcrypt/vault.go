package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/SymmetricChaos/crypto-gui-sub003/envelope"
	"github.com/SymmetricChaos/crypto-gui-sub003/store"
)

func defaultDB() string {
	if dsn := os.Getenv("BLOCKCRYPT_DB"); dsn != "" {
		return dsn
	}
	return "blockcrypt.db"
}

func runVault(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("vault: ожидается put, get, list или rm\n%w", errUsage)
	}
	sub := args[0]

	fs := flag.NewFlagSet("vault "+sub, flag.ContinueOnError)
	var f cryptFlags
	f.register(fs)
	dsn := fs.String("db", defaultDB(), "файл базы sqlite (по умолчанию $BLOCKCRYPT_DB)")
	name := fs.String("name", "", "имя записи")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := store.Open(ctx, *dsn)
	if err != nil {
		return err
	}
	defer s.Close()

	switch sub {
	case "put":
		opts, err := f.options()
		if err != nil {
			return err
		}
		data, err := readInput(f.in, stdin)
		if err != nil {
			return err
		}
		sealed, err := envelope.Encrypt(f.passphrase(), data, opts)
		if err != nil {
			return err
		}
		return s.Put(ctx, *name, sealed)

	case "get":
		r, err := s.Get(ctx, *name)
		if err != nil {
			return err
		}
		data, err := envelope.Decrypt(f.passphrase(), r.Blob)
		if err != nil {
			return err
		}
		return writeOutput(f.out, stdout, data)

	case "list":
		records, err := s.List(ctx)
		if err != nil {
			return err
		}
		for _, r := range records {
			fmt.Fprintf(stdout, "%-24s %6d байт  %s  %s\n",
				r.Name, len(r.Blob), r.Created.Format(time.DateTime), fingerprint(r.Blob))
		}
		return nil

	case "rm":
		return s.Delete(ctx, *name)

	default:
		return fmt.Errorf("vault: неизвестная подкоманда %q", sub)
	}
}

// fingerprint — первые 8 байт SHA3-256 конверта в hex; по нему записи
// сравнивают, не расшифровывая.
func fingerprint(blob []byte) string {
	sum := sha3.Sum256(blob)
	return fmt.Sprintf("%x", sum[:8])
}
