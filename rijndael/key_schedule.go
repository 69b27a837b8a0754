package rijndael

import (
	"encoding/binary"

	"github.com/SymmetricChaos/crypto-gui-sub003/gf"
	"github.com/SymmetricChaos/crypto-gui-sub003/sbox"
)

// Rcon — раундовые константы расширения ключа, значение в старшем байте.
var Rcon [10]uint32

func init() {
	rc := byte(1)
	for i := range Rcon {
		Rcon[i] = uint32(rc) << 24
		rc = gf.Xtime(rc)
	}
}

// ExpandKey разворачивает ключ из Nk слов (4, 6 или 8) в Nr+1 раундовых
// ключей по 16 байт. Ключ другой длины — ошибка вызывающего.
func ExpandKey(key []uint32) [][BlockSize]byte {
	nk := len(key)
	if !KeySize(nk * 4).Valid() {
		panic("rijndael: invalid key length")
	}
	nr := nk + 6
	total := Nb * (nr + 1)

	w := make([]uint32, nk, total)
	copy(w, key)
	for i := nk; i < total; i++ {
		t := w[i-1]
		if i%nk == 0 {
			t = sbox.SubWord(rotWord(t)) ^ Rcon[i/nk-1]
		} else if nk > 6 && i%nk == 4 {
			t = sbox.SubWord(t)
		}
		w = append(w, w[i-nk]^t)
	}

	roundKeys := make([][BlockSize]byte, nr+1)
	for round := range roundKeys {
		for col := 0; col < Nb; col++ {
			binary.BigEndian.PutUint32(roundKeys[round][4*col:], w[round*Nb+col])
		}
	}
	return roundKeys
}

func rotWord(w uint32) uint32 {
	return w<<8 | w>>24
}
