package rijndael

import (
	"github.com/SymmetricChaos/crypto-gui-sub003/gf"
	"github.com/SymmetricChaos/crypto-gui-sub003/sbox"
)

// state хранит матрицу 4×4 построчно: байт строки r и столбца c лежит в
// s[4*r+c]. Во входном блоке и в раундовых ключах матрица записана по
// столбцам, поэтому на входе и выходе блока выполняется транспонирование.
type state [BlockSize]byte

// columnMajor[i] — индекс байта раундового ключа для s[i].
var columnMajor = [BlockSize]int{0, 4, 8, 12, 1, 5, 9, 13, 2, 6, 10, 14, 3, 7, 11, 15}

func (s *state) load(block []byte) {
	copy(s[:], block[:BlockSize])
	s.transpose()
}

func (s *state) store(block []byte) {
	s.transpose()
	copy(block[:BlockSize], s[:])
}

// transpose переводит матрицу между построчной и постолбцовой раскладкой.
// Преобразование является инволюцией.
func (s *state) transpose() {
	for r := 0; r < 4; r++ {
		for c := r + 1; c < 4; c++ {
			s[4*r+c], s[4*c+r] = s[4*c+r], s[4*r+c]
		}
	}
}

func (s *state) addRoundKey(rk *[BlockSize]byte) {
	for i := range s {
		s[i] ^= rk[columnMajor[i]]
	}
}

func (s *state) subBytes() {
	for i, v := range s {
		s[i] = sbox.Sub(v)
	}
}

func (s *state) invSubBytes() {
	for i, v := range s {
		s[i] = sbox.InvSub(v)
	}
}

// shiftRows циклически сдвигает строку r влево на r позиций.
func (s *state) shiftRows() {
	for r := 1; r < 4; r++ {
		row := s[4*r : 4*r+4]
		var tmp [4]byte
		for c := 0; c < 4; c++ {
			tmp[c] = row[(c+r)%4]
		}
		copy(row, tmp[:])
	}
}

func (s *state) invShiftRows() {
	for r := 1; r < 4; r++ {
		row := s[4*r : 4*r+4]
		var tmp [4]byte
		for c := 0; c < 4; c++ {
			tmp[(c+r)%4] = row[c]
		}
		copy(row, tmp[:])
	}
}

func (s *state) mixColumns() {
	for col := 0; col < 4; col++ {
		a, b, c, d := s[col], s[4+col], s[8+col], s[12+col]
		s[col] = gf.Mul2[a] ^ gf.Mul3[b] ^ c ^ d
		s[4+col] = a ^ gf.Mul2[b] ^ gf.Mul3[c] ^ d
		s[8+col] = a ^ b ^ gf.Mul2[c] ^ gf.Mul3[d]
		s[12+col] = gf.Mul3[a] ^ b ^ c ^ gf.Mul2[d]
	}
}

func (s *state) invMixColumns() {
	for col := 0; col < 4; col++ {
		a, b, c, d := s[col], s[4+col], s[8+col], s[12+col]
		s[col] = gf.Mul14[a] ^ gf.Mul11[b] ^ gf.Mul13[c] ^ gf.Mul9[d]
		s[4+col] = gf.Mul9[a] ^ gf.Mul14[b] ^ gf.Mul11[c] ^ gf.Mul13[d]
		s[8+col] = gf.Mul13[a] ^ gf.Mul9[b] ^ gf.Mul14[c] ^ gf.Mul11[d]
		s[12+col] = gf.Mul11[a] ^ gf.Mul13[b] ^ gf.Mul9[c] ^ gf.Mul14[d]
	}
}
