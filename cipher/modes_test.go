package cipher

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/SymmetricChaos/crypto-gui-sub003/rijndael"
)

func unhex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func newAES(t *testing.T, key string) *rijndael.Cipher {
	t.Helper()
	c, err := rijndael.NewCipher(unhex(t, key))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// NIST SP 800-38A, Appendix F, AES-128.
const (
	sp80038aKey       = "2b7e151628aed2a6abf7158809cf4f3c"
	sp80038aPlaintext = "6bc1bee22e409f96e93d7e117393172a ae2d8a571e03ac9c9eb76fac45af8e51 " +
		"30c81c46a35ce411e5fbc1191a0a52ef f69f2445df4f9b17ad2b417be66c3710"
	sp80038aIV      = "000102030405060708090a0b0c0d0e0f"
	sp80038aCounter = "f0f1f2f3f4f5f6f7f8f9fafbfcfdfeff"
)

func TestSP80038A(t *testing.T) {
	b := newAES(t, sp80038aKey)

	tests := []struct {
		name    string
		iv      string
		ct      string
		encrypt func(data, iv []byte)
		decrypt func(data, iv []byte)
	}{
		{
			name: "ECB",
			ct: "3ad77bb40d7a3660a89ecaf32466ef97 f5d3d58503b9699de785895a96fdbaaf " +
				"43b1cd7f598ece23881b00e3ed030688 7b0c785e27e8ad3f8223207104725dd4",
			encrypt: func(data, _ []byte) { EncryptECB(b, data) },
			decrypt: func(data, _ []byte) { DecryptECB(b, data) },
		},
		{
			name: "CBC",
			iv:   sp80038aIV,
			ct: "7649abac8119b246cee98e9b12e9197d 5086cb9b507219ee95db113a917678b2 " +
				"73bed6b8e3c1743b7116e69e22229516 3ff1caa1681fac09120eca307586e1a7",
			encrypt: func(data, iv []byte) { EncryptCBC(b, data, iv) },
			decrypt: func(data, iv []byte) { DecryptCBC(b, data, iv) },
		},
		{
			name: "CFB",
			iv:   sp80038aIV,
			ct: "3b3fd92eb72dad20333449f8e83cfb4a c8a64537a0b3a93fcde3cdad9f1ce58b " +
				"26751f67a3cbb140b1808cf187a4f4df c04b05357c5d1c0eeac4c66f9ff7f2e6",
			encrypt: func(data, iv []byte) { EncryptCFB(b, data, iv) },
			decrypt: func(data, iv []byte) { DecryptCFB(b, data, iv) },
		},
		{
			name: "OFB",
			iv:   sp80038aIV,
			ct: "3b3fd92eb72dad20333449f8e83cfb4a 7789508d16918f03f53c52dac54ed825 " +
				"9740051e9c5fecf64344f7a82260edcc 304c6528f659c77866a510d9c1d6ae5e",
			encrypt: func(data, iv []byte) { XORKeyStreamOFB(b, data, iv) },
			decrypt: func(data, iv []byte) { XORKeyStreamOFB(b, data, iv) },
		},
		{
			name: "CTR",
			iv:   sp80038aCounter,
			ct: "874d6191b620e3261bef6864990db6ce 9806f66b7970fdff8617187bb9fffdff " +
				"5ae4df3edbd5d35e5b4f09020db03eab 1e031dda2fbe03d1792170a0f3009cee",
			encrypt: func(data, iv []byte) { XORKeyStreamCTR(b, data, iv) },
			decrypt: func(data, iv []byte) { XORKeyStreamCTR(b, data, iv) },
		},
	}

	for _, tt := range tests {
		var iv []byte
		if tt.iv != "" {
			iv = unhex(t, tt.iv)
		}
		ivCopy := dup(iv)
		data := unhex(t, sp80038aPlaintext)

		tt.encrypt(data, iv)
		if want := unhex(t, tt.ct); !bytes.Equal(data, want) {
			t.Errorf("%s encrypt = %x, want %x", tt.name, data, want)
		}
		tt.decrypt(data, iv)
		if want := unhex(t, sp80038aPlaintext); !bytes.Equal(data, want) {
			t.Errorf("%s decrypt = %x, want %x", tt.name, data, want)
		}
		if !bytes.Equal(iv, ivCopy) {
			t.Errorf("%s modified the caller's IV", tt.name)
		}
	}
}

func TestCBCChainAcrossCalls(t *testing.T) {
	b := newAES(t, sp80038aKey)
	iv := unhex(t, sp80038aIV)

	whole := unhex(t, sp80038aPlaintext)
	EncryptCBC(b, whole, iv)

	split := unhex(t, sp80038aPlaintext)
	chain := iv
	for i := 0; i < len(split); i += rijndael.BlockSize {
		chain = EncryptCBC(b, split[i:i+rijndael.BlockSize], chain)
	}
	if !bytes.Equal(whole, split) {
		t.Fatalf("block-by-block CBC = %x, want %x", split, whole)
	}
	if !bytes.Equal(chain, whole[len(whole)-rijndael.BlockSize:]) {
		t.Fatal("returned chain is not the last ciphertext block")
	}

	// Значение цепочки при расшифровании — исходный шифртекст, а не
	// расшифрованный блок; с перепутанным порядком второй и последующие
	// блоки не совпадут.
	chain = iv
	for i := 0; i < len(split); i += rijndael.BlockSize {
		ct := dup(split[i : i+rijndael.BlockSize])
		chain = DecryptCBC(b, split[i:i+rijndael.BlockSize], chain)
		if !bytes.Equal(chain, ct) {
			t.Fatalf("block %d: chain after decrypt = %x, want ciphertext %x", i/rijndael.BlockSize, chain, ct)
		}
	}
	if want := unhex(t, sp80038aPlaintext); !bytes.Equal(split, want) {
		t.Fatalf("block-by-block CBC decrypt = %x, want %x", split, want)
	}
}

func TestCTRCounter(t *testing.T) {
	b := newAES(t, sp80038aKey)

	counter := bytes.Repeat([]byte{0xff}, rijndael.BlockSize)
	data := make([]byte, 2*rijndael.BlockSize)
	next := XORKeyStreamCTR(b, data, counter)

	if want := []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}; !bytes.Equal(next, want) {
		t.Fatalf("counter after two blocks from ff..ff = %x, want %x", next, want)
	}
	// второй блок гаммы — E(0): счетчик переполнился и обнулился
	zero := make([]byte, rijndael.BlockSize)
	b.EncryptBlock(zero)
	if !bytes.Equal(data[rijndael.BlockSize:], zero) {
		t.Fatalf("keystream after wrap = %x, want %x", data[rijndael.BlockSize:], zero)
	}
	if !bytes.Equal(counter, bytes.Repeat([]byte{0xff}, rijndael.BlockSize)) {
		t.Fatal("caller's counter was modified")
	}
}

func TestCTRDeterminism(t *testing.T) {
	b := newAES(t, sp80038aKey)
	counter := unhex(t, sp80038aCounter)

	first := []byte("the same plaintext block")
	second := []byte("the same plaintext block")
	XORKeyStreamCTR(b, first, counter)
	XORKeyStreamCTR(b, second, counter)
	if !bytes.Equal(first, second) {
		t.Fatal("same key and counter produced different ciphertexts")
	}

	shifted := []byte("the same plaintext block")
	next := dup(counter)
	incrementCounter(next)
	XORKeyStreamCTR(b, shifted, next)
	if bytes.Equal(first, shifted) {
		t.Fatal("incremented counter produced the same keystream")
	}
}

func TestStreamPartialBlock(t *testing.T) {
	b := newAES(t, sp80038aKey)
	iv := unhex(t, sp80038aIV)
	full := unhex(t, sp80038aPlaintext)

	for _, n := range []int{0, 1, 15, 17, 31, 33, 63} {
		for _, m := range []struct {
			name    string
			encrypt func([]byte)
			decrypt func([]byte)
		}{
			{"CTR", func(d []byte) { XORKeyStreamCTR(b, d, iv) }, func(d []byte) { XORKeyStreamCTR(b, d, iv) }},
			{"OFB", func(d []byte) { XORKeyStreamOFB(b, d, iv) }, func(d []byte) { XORKeyStreamOFB(b, d, iv) }},
			{"CFB", func(d []byte) { EncryptCFB(b, d, iv) }, func(d []byte) { DecryptCFB(b, d, iv) }},
		} {
			data := dup(full[:n])
			m.encrypt(data)

			// префикс шифртекста совпадает с шифртекстом полного сообщения
			whole := dup(full)
			m.encrypt(whole)
			if !bytes.Equal(data, whole[:n]) {
				t.Errorf("%s %d bytes: prefix mismatch", m.name, n)
			}
			m.decrypt(data)
			if !bytes.Equal(data, full[:n]) {
				t.Errorf("%s %d bytes: round trip = %x", m.name, n, data)
			}
		}
	}
}

func TestStreamResumeAtBlockBoundary(t *testing.T) {
	b := newAES(t, sp80038aKey)
	iv := unhex(t, sp80038aIV)
	msg := unhex(t, sp80038aPlaintext)[:40]

	for _, m := range []struct {
		name string
		f    func(data, state []byte) []byte
	}{
		{"CTR", func(d, s []byte) []byte { return XORKeyStreamCTR(b, d, s) }},
		{"OFB", func(d, s []byte) []byte { return XORKeyStreamOFB(b, d, s) }},
		{"CFB", func(d, s []byte) []byte { return EncryptCFB(b, d, s) }},
	} {
		whole := dup(msg)
		m.f(whole, iv)

		// на границе блока продолжение совпадает с шифрованием за один вызов
		split := dup(msg)
		next := m.f(split[:16], iv)
		m.f(split[16:], next)
		if !bytes.Equal(split, whole) {
			t.Errorf("%s: 16+24 split differs from one call", m.name)
		}

		// после неполного блока остаток гаммы теряется
		split = dup(msg)
		next = m.f(split[:17], iv)
		m.f(split[17:], next)
		if bytes.Equal(split, whole) {
			t.Errorf("%s: 17+23 split unexpectedly matches one call", m.name)
		}
	}
}

func TestPCBCRoundTrip(t *testing.T) {
	b := newAES(t, sp80038aKey)
	iv := unhex(t, sp80038aIV)
	data := unhex(t, sp80038aPlaintext)

	EncryptPCBC(b, data, iv)
	// первый блок PCBC совпадает с CBC
	cbc := unhex(t, sp80038aPlaintext)
	EncryptCBC(b, cbc, iv)
	if !bytes.Equal(data[:16], cbc[:16]) {
		t.Fatalf("first PCBC block = %x, want %x", data[:16], cbc[:16])
	}
	if bytes.Equal(data[16:], cbc[16:]) {
		t.Fatal("PCBC degenerated to CBC")
	}
	DecryptPCBC(b, data, iv)
	if want := unhex(t, sp80038aPlaintext); !bytes.Equal(data, want) {
		t.Fatalf("PCBC round trip = %x", data)
	}
}

func TestContractPanics(t *testing.T) {
	b := newAES(t, sp80038aKey)
	iv := unhex(t, sp80038aIV)

	const (
		misaligned = "cipher: длина данных не кратна размеру блока"
		badIV      = "cipher: длина IV не равна размеру блока"
	)
	tests := map[string]struct {
		f    func()
		want string
	}{
		"ECB misaligned":    {func() { EncryptECB(b, make([]byte, 17)) }, misaligned},
		"CBC misaligned":    {func() { DecryptCBC(b, make([]byte, 15), iv) }, misaligned},
		"PCBC misaligned":   {func() { EncryptPCBC(b, make([]byte, 1), iv) }, misaligned},
		"CBC short IV":      {func() { EncryptCBC(b, make([]byte, 16), iv[:8]) }, badIV},
		"CTR short counter": {func() { XORKeyStreamCTR(b, make([]byte, 16), iv[:15]) }, badIV},
	}
	for name, tt := range tests {
		func() {
			defer func() {
				if got := recover(); got != tt.want {
					t.Errorf("%s: panic %v, want %q", name, got, tt.want)
				}
			}()
			tt.f()
		}()
	}
}
