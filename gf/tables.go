package gf

// Таблицы умножения на константы MixColumns и InvMixColumns по модулю AES.
var (
	Mul2  [256]byte
	Mul3  [256]byte
	Mul9  [256]byte
	Mul11 [256]byte
	Mul13 [256]byte
	Mul14 [256]byte
)

func init() {
	for i := 0; i < 256; i++ {
		b := byte(i)
		Mul2[i] = mul(b, 2, AESModulus)
		Mul3[i] = mul(b, 3, AESModulus)
		Mul9[i] = mul(b, 9, AESModulus)
		Mul11[i] = mul(b, 11, AESModulus)
		Mul13[i] = mul(b, 13, AESModulus)
		Mul14[i] = mul(b, 14, AESModulus)
	}
}

// Mul возвращает произведение a и b в поле AES.
func Mul(a, b byte) byte {
	return mul(a, b, AESModulus)
}

// Inv возвращает обратный элемент в поле AES; Inv(0) = 0, как принято для S-box.
func Inv(a byte) byte {
	if a == 0 {
		return 0
	}
	return inverse(a, AESModulus)
}

// Xtime умножает b на x.
func Xtime(b byte) byte {
	return Mul2[b]
}
