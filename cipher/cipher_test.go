package cipher

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"testing/quick"

	"github.com/SymmetricChaos/crypto-gui-sub003/padding"
	"github.com/SymmetricChaos/crypto-gui-sub003/rijndael"
)

// toyBlock — обратимое преобразование 8-байтового блока для проверки того,
// что режимы не зависят от AES и размера его блока.
type toyBlock struct{ key byte }

func (b toyBlock) BlockSize() int { return 8 }

func (b toyBlock) EncryptBlock(block []byte) {
	for i := 0; i < 8; i++ {
		block[i] = (block[i] ^ b.key) + byte(i)
	}
	first := block[0]
	copy(block, block[1:8])
	block[7] = first
}

func (b toyBlock) DecryptBlock(block []byte) {
	last := block[7]
	copy(block[1:8], block[:7])
	block[0] = last
	for i := 0; i < 8; i++ {
		block[i] = (block[i] - byte(i)) ^ b.key
	}
}

func TestRoundTripAllModes(t *testing.T) {
	blocks := []Block{toyBlock{key: 0x5c}}
	for _, key := range [][]byte{make([]byte, 16), bytes.Repeat([]byte{7}, 24), bytes.Repeat([]byte{9}, 32)} {
		c, err := rijndael.NewCipher(key)
		if err != nil {
			t.Fatal(err)
		}
		blocks = append(blocks, c)
	}

	for _, b := range blocks {
		for _, mode := range Modes() {
			for _, scheme := range []padding.Scheme{padding.Bit, padding.PKCS, padding.ANSIX923, padding.ISO10126} {
				c := NewCipher(b, mode, scheme.Padding())
				f := func(plaintext []byte, seed byte) bool {
					iv := bytes.Repeat([]byte{seed}, b.BlockSize())
					ct, err := c.Encrypt(plaintext, iv)
					if err != nil {
						return false
					}
					pt, err := c.Decrypt(ct, iv)
					return err == nil && bytes.Equal(pt, plaintext)
				}
				if err := quick.Check(f, &quick.Config{MaxCount: 30}); err != nil {
					t.Errorf("block %d, %s/%s: %v", b.BlockSize(), mode, scheme, err)
				}
			}
		}
	}
}

func TestEncryptDoesNotModifyInput(t *testing.T) {
	b := newAES(t, sp80038aKey)
	iv := unhex(t, sp80038aIV)
	for _, mode := range Modes() {
		plaintext := []byte("sixteen byte msg")
		c := NewCipher(b, mode, &padding.PKCS7Padding{})
		ct, err := c.Encrypt(plaintext, iv)
		if err != nil {
			t.Fatal(err)
		}
		if string(plaintext) != "sixteen byte msg" {
			t.Fatalf("%s modified plaintext", mode)
		}
		saved := dup(ct)
		if _, err := c.Decrypt(ct, iv); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(ct, saved) {
			t.Fatalf("%s modified ciphertext", mode)
		}
	}
}

func TestPaddingOnlyForBlockModes(t *testing.T) {
	b := newAES(t, sp80038aKey)
	iv := unhex(t, sp80038aIV)
	plaintext := []byte("twenty-one characters")

	for _, mode := range Modes() {
		ct, err := NewCipher(b, mode, &padding.PKCS7Padding{}).Encrypt(plaintext, iv)
		if err != nil {
			t.Fatal(err)
		}
		want := len(plaintext)
		if mode.RequiresPadding() {
			want = 32
		}
		if len(ct) != want {
			t.Errorf("%s: ciphertext length %d, want %d", mode, len(ct), want)
		}
	}
}

func TestCipherErrors(t *testing.T) {
	b := newAES(t, sp80038aKey)
	iv := unhex(t, sp80038aIV)

	c := NewCipher(b, CBC, &padding.PKCS7Padding{})
	if _, err := c.Encrypt([]byte("x"), iv[:4]); !errors.Is(err, ErrIVLength) {
		t.Errorf("short IV: err = %v", err)
	}
	if _, err := c.Decrypt(make([]byte, 20), iv); !errors.Is(err, padding.ErrInputLength) {
		t.Errorf("misaligned ciphertext: err = %v", err)
	}

	none := NewCipher(b, ECB, nil)
	if _, err := none.Encrypt(make([]byte, 15), nil); !errors.Is(err, padding.ErrInputLength) {
		t.Errorf("ECB without padding on 15 bytes: err = %v", err)
	}
	if ct, err := none.Encrypt(make([]byte, 32), nil); err != nil || len(ct) != 32 {
		t.Errorf("ECB without padding on 32 bytes: %d bytes, %v", len(ct), err)
	}

	// ECB не использует IV, поэтому любой IV допустим
	if _, err := NewCipher(b, ECB, &padding.BitPadding{}).Encrypt([]byte("abc"), []byte{1}); err != nil {
		t.Errorf("ECB with ignored IV: %v", err)
	}

	bad := NewCipher(b, Mode(99), &padding.BitPadding{})
	if _, err := bad.Encrypt([]byte("abc"), iv); !errors.Is(err, ErrUnsupportedMode) {
		t.Errorf("unknown mode: err = %v", err)
	}

	// испорченная набивка последнего блока обнаруживается при расшифровании
	ct, err := c.Encrypt([]byte("hello"), iv)
	if err != nil {
		t.Fatal(err)
	}
	b.DecryptBlock(ct)
	ct[15] ^= 0x01
	b.EncryptBlock(ct)
	if _, err := c.Decrypt(ct, iv); !errors.Is(err, padding.ErrInvalidPadding) {
		t.Errorf("corrupted padding: err = %v", err)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%s) = %v, %v", m, got, err)
		}
	}
	if m, err := ParseMode(" ctr "); err != nil || m != CTR {
		t.Errorf("ParseMode(ctr) = %v, %v", m, err)
	}
	if _, err := ParseMode("gcm"); !errors.Is(err, ErrUnsupportedMode) {
		t.Errorf("ParseMode(gcm): err = %v", err)
	}
	if ECB.RequiresIV() || !CTR.RequiresIV() || CTR.RequiresPadding() || !CBC.RequiresPadding() {
		t.Error("mode properties")
	}
}

func TestContext(t *testing.T) {
	b := newAES(t, sp80038aKey)
	iv := unhex(t, sp80038aIV)

	ctx, err := NewContext(b, CBC, padding.PKCS, iv)
	if err != nil {
		t.Fatal(err)
	}
	msg := []byte("one cipher instance, many configurations")
	for _, mode := range Modes() {
		for _, scheme := range padding.Schemes() {
			ctx.SetMode(mode)
			if err := ctx.SetPadding(scheme); err != nil {
				t.Fatal(err)
			}
			input := msg
			if scheme == padding.None && mode.RequiresPadding() {
				input = msg[:32]
			}
			ct, err := ctx.Encrypt(input)
			if err != nil {
				t.Fatalf("%s/%s: %v", mode, scheme, err)
			}
			pt, err := ctx.Decrypt(ct)
			if err != nil || !bytes.Equal(pt, input) {
				t.Fatalf("%s/%s: round trip = %q, %v", mode, scheme, pt, err)
			}
		}
	}

	if err := ctx.SetIV(make([]byte, 3)); !errors.Is(err, ErrIVLength) {
		t.Errorf("SetIV(3 bytes): err = %v", err)
	}
	if err := ctx.SetPadding(padding.Scheme(42)); err == nil {
		t.Error("SetPadding(unknown) succeeded")
	}
	got := ctx.IV()
	got[0] ^= 0xff
	if bytes.Equal(got, ctx.IV()) {
		t.Error("IV() exposed internal state")
	}
}

func TestContextGeneratesIV(t *testing.T) {
	b := newAES(t, sp80038aKey)
	ctx, err := NewContext(b, CTR, padding.None, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(ctx.IV()) != rijndael.BlockSize {
		t.Fatalf("generated IV has %d bytes", len(ctx.IV()))
	}
	ecb, err := NewContext(b, ECB, padding.Bit, nil)
	if err != nil {
		t.Fatal(err)
	}
	if ecb.IV() != nil {
		t.Fatal("ECB context got an IV")
	}
}

func TestContextConcurrentUse(t *testing.T) {
	b := newAES(t, sp80038aKey)
	ctx, err := NewContext(b, CTR, padding.None, unhex(t, sp80038aCounter))
	if err != nil {
		t.Fatal(err)
	}
	want, err := ctx.Encrypt([]byte("shared read-only round keys"))
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := ctx.Encrypt([]byte("shared read-only round keys"))
			if err != nil {
				errs <- err
				return
			}
			if !bytes.Equal(got, want) {
				errs <- errors.New("concurrent result differs")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestContextFiles(t *testing.T) {
	b := newAES(t, sp80038aKey)
	ctx, err := NewContext(b, CBC, padding.PKCS, nil)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	in := filepath.Join(dir, "input.txt")
	enc := filepath.Join(dir, "encrypted.bin")
	dec := filepath.Join(dir, "decrypted.txt")
	content := bytes.Repeat([]byte("file contents\n"), 100)
	if err := os.WriteFile(in, content, 0644); err != nil {
		t.Fatal(err)
	}

	if err := ctx.EncryptFile(in, enc); err != nil {
		t.Fatal(err)
	}
	if err := ctx.DecryptFile(enc, dec); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(dec)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, content) {
		t.Fatal("decrypted file differs")
	}
	if err := ctx.EncryptFile(filepath.Join(dir, "missing"), enc); err == nil {
		t.Error("EncryptFile on a missing file succeeded")
	}
}
