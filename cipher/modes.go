package cipher

// Блочные режимы: длина data должна быть кратна размеру блока.
// IV вызывающего не изменяется; возвращается значение цепочки после
// последнего блока, чтобы сообщение можно было продолжить следующим вызовом.

// EncryptECB шифрует каждый блок data независимо.
func EncryptECB(b Block, data []byte) {
	mustFullBlocks(b, data)
	bs := b.BlockSize()
	for i := 0; i < len(data); i += bs {
		b.EncryptBlock(data[i : i+bs])
	}
}

// DecryptECB расшифровывает каждый блок data независимо.
func DecryptECB(b Block, data []byte) {
	mustFullBlocks(b, data)
	bs := b.BlockSize()
	for i := 0; i < len(data); i += bs {
		b.DecryptBlock(data[i : i+bs])
	}
}

// EncryptCBC шифрует data в режиме сцепления блоков.
func EncryptCBC(b Block, data, iv []byte) []byte {
	mustFullBlocks(b, data)
	mustIV(b, iv)
	bs := b.BlockSize()

	chain := dup(iv)
	for i := 0; i < len(data); i += bs {
		block := data[i : i+bs]
		xorBytes(block, chain)
		b.EncryptBlock(block)
		// следующее значение цепочки — только что полученный шифртекст
		copy(chain, block)
	}
	return chain
}

// DecryptCBC расшифровывает data, зашифрованные EncryptCBC.
func DecryptCBC(b Block, data, iv []byte) []byte {
	mustFullBlocks(b, data)
	mustIV(b, iv)
	bs := b.BlockSize()

	chain := dup(iv)
	next := make([]byte, bs)
	for i := 0; i < len(data); i += bs {
		block := data[i : i+bs]
		// шифртекст блока сохраняется до того, как буфер будет перезаписан
		// открытым текстом: именно он становится следующим значением цепочки
		copy(next, block)
		b.DecryptBlock(block)
		xorBytes(block, chain)
		chain, next = next, chain
	}
	return chain
}

// EncryptPCBC шифрует data в режиме PCBC: в цепочку входят и открытый текст,
// и шифртекст предыдущего блока.
func EncryptPCBC(b Block, data, iv []byte) []byte {
	mustFullBlocks(b, data)
	mustIV(b, iv)
	bs := b.BlockSize()

	chain := dup(iv)
	plain := make([]byte, bs)
	for i := 0; i < len(data); i += bs {
		block := data[i : i+bs]
		copy(plain, block)
		xorBytes(block, chain)
		b.EncryptBlock(block)
		copy(chain, block)
		xorBytes(chain, plain)
	}
	return chain
}

// DecryptPCBC расшифровывает data, зашифрованные EncryptPCBC.
func DecryptPCBC(b Block, data, iv []byte) []byte {
	mustFullBlocks(b, data)
	mustIV(b, iv)
	bs := b.BlockSize()

	chain := dup(iv)
	next := make([]byte, bs)
	for i := 0; i < len(data); i += bs {
		block := data[i : i+bs]
		copy(next, block)
		b.DecryptBlock(block)
		xorBytes(block, chain)
		xorBytes(next, block)
		chain, next = next, chain
	}
	return chain
}
