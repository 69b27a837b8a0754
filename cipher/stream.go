package cipher

// Потоковые режимы: набивка не нужна, последний неполный блок обрабатывается
// только на свою длину. Неиспользованная часть гаммы этого блока теряется,
// поэтому продолжать сообщение возвращенным значением можно, только если
// длина data кратна размеру блока.

// XORKeyStreamCTR накладывает на data гамму режима счетчика. Шифрование и
// расшифрование совпадают. Счетчик увеличивается как big-endian число один
// раз на блок; возвращается значение счетчика для следующего блока. Если
// последний блок неполный, продолжение с этим счетчиком не совпадет с
// шифрованием за один вызов.
func XORKeyStreamCTR(b Block, data, counter []byte) []byte {
	mustIV(b, counter)
	bs := b.BlockSize()

	ctr := dup(counter)
	mask := make([]byte, bs)
	for len(data) > 0 {
		copy(mask, ctr)
		b.EncryptBlock(mask)
		n := xorBytes(data, mask)
		data = data[n:]
		incrementCounter(ctr)
	}
	return ctr
}

// XORKeyStreamOFB накладывает на data гамму режима обратной связи по выходу.
// Возвращаемый регистр продолжает сообщение только на границе блока.
func XORKeyStreamOFB(b Block, data, iv []byte) []byte {
	mustIV(b, iv)

	register := dup(iv)
	for len(data) > 0 {
		b.EncryptBlock(register)
		n := xorBytes(data, register)
		data = data[n:]
	}
	return register
}

// EncryptCFB шифрует data в режиме обратной связи по шифртексту.
func EncryptCFB(b Block, data, iv []byte) []byte {
	return cfb(b, data, iv, false)
}

// DecryptCFB расшифровывает data, зашифрованные EncryptCFB.
func DecryptCFB(b Block, data, iv []byte) []byte {
	return cfb(b, data, iv, true)
}

// cfb возвращает регистр сдвига. Продолжать им сообщение можно только после
// целого числа блоков: неполный блок сдвигает регистр на свою длину.
func cfb(b Block, data, iv []byte, decrypt bool) []byte {
	mustIV(b, iv)
	bs := b.BlockSize()

	register := dup(iv)
	mask := make([]byte, bs)
	for len(data) > 0 {
		copy(mask, register)
		b.EncryptBlock(mask)

		n := min(bs, len(data))
		chunk := data[:n]
		// в регистр сдвигается шифртекст: при расшифровании он берется до XOR
		copy(register, register[n:])
		if decrypt {
			copy(register[bs-n:], chunk)
			xorBytes(chunk, mask)
		} else {
			xorBytes(chunk, mask)
			copy(register[bs-n:], chunk)
		}
		data = data[n:]
	}
	return register
}
