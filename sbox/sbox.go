// Package sbox содержит S-box AES и обратную к ней таблицу.
package sbox

import "github.com/SymmetricChaos/crypto-gui-sub003/gf"

var (
	sBox    [256]byte
	invSBox [256]byte
)

func init() {
	for i := 0; i < 256; i++ {
		v := affineTransform(gf.Inv(byte(i)))
		sBox[i] = v
		invSBox[v] = byte(i)
	}
}

// affineTransform — аффинное преобразование Rijndael над GF(2).
func affineTransform(b byte) byte {
	result := byte(0)
	for i := 0; i < 8; i++ {
		bit := (b >> i) & 1
		bit ^= (b >> ((i + 4) % 8)) & 1
		bit ^= (b >> ((i + 5) % 8)) & 1
		bit ^= (b >> ((i + 6) % 8)) & 1
		bit ^= (b >> ((i + 7) % 8)) & 1
		result |= bit << i
	}
	return result ^ 0x63
}

// Sub возвращает значение S-box для b.
func Sub(b byte) byte {
	return sBox[b]
}

// InvSub возвращает значение обратной S-box для b.
func InvSub(b byte) byte {
	return invSBox[b]
}

// SubWord применяет S-box к каждому байту 32-битного слова.
func SubWord(w uint32) uint32 {
	return uint32(sBox[w>>24])<<24 |
		uint32(sBox[w>>16&0xff])<<16 |
		uint32(sBox[w>>8&0xff])<<8 |
		uint32(sBox[w&0xff])
}

// Table возвращает копию прямой таблицы.
func Table() [256]byte {
	return sBox
}

// InvTable возвращает копию обратной таблицы.
func InvTable() [256]byte {
	return invSBox
}
