// Package gf реализует арифметику поля Галуа GF(2^8).
//
// Модуль поля передается без старшего бита: x^8 подразумевается, поэтому
// полином AES x^8+x^4+x^3+x+1 записывается как 0x1B.
package gf

import (
	"errors"
	"fmt"
)

// AESModulus — приводящий полином AES x^8+x^4+x^3+x+1 без старшего бита.
const AESModulus byte = 0x1B

// ErrZeroInverse возвращается при попытке обратить нулевой элемент.
var ErrZeroInverse = errors.New("обратный элемент для 0 не существует")

// ReducibleModulusError возникает при использовании приводимого модуля
type ReducibleModulusError struct {
	Modulus byte
}

func (e *ReducibleModulusError) Error() string {
	return fmt.Sprintf("модуль 0x%02X (0x1%02X) является приводимым над GF(2^8)", e.Modulus, e.Modulus)
}

// GF256Service предоставляет операции над полем Галуа GF(2^8) с произвольным
// неприводимым модулем.
type GF256Service struct{}

// NewGF256Service создает новый экземпляр сервиса
func NewGF256Service() *GF256Service {
	return &GF256Service{}
}

// Add выполняет сложение элементов в GF(2^8)
func (s *GF256Service) Add(a, b byte) byte {
	return a ^ b
}

// Multiply выполняет умножение элементов в GF(2^8) по модулю
func (s *GF256Service) Multiply(a, b byte, modulus byte) (byte, error) {
	if !s.IsIrreducible(modulus) {
		return 0, &ReducibleModulusError{Modulus: modulus}
	}
	return mul(a, b, modulus), nil
}

// Inverse находит обратный элемент в GF(2^8) расширенным алгоритмом Евклида
func (s *GF256Service) Inverse(a byte, modulus byte) (byte, error) {
	if !s.IsIrreducible(modulus) {
		return 0, &ReducibleModulusError{Modulus: modulus}
	}
	if a == 0 {
		return 0, ErrZeroInverse
	}
	return inverse(a, modulus), nil
}

// IsIrreducible проверяет неприводимость полинома степени 8.
// Достаточно проверить делимость на все полиномы степени от 1 до 4.
func (s *GF256Service) IsIrreducible(modulus byte) bool {
	poly := uint16(modulus) | 0x100
	for div := uint16(0x02); div < 0x20; div++ {
		if polyMod(poly, div) == 0 {
			return false
		}
	}
	return true
}

// GetAllIrreducible возвращает все неприводимые полиномы степени 8
// (без старшего бита x^8).
func (s *GF256Service) GetAllIrreducible() []byte {
	var result []byte
	for poly := 0; poly <= 0xFF; poly++ {
		if s.IsIrreducible(byte(poly)) {
			result = append(result, byte(poly))
		}
	}
	return result
}

func mul(a, b, modulus byte) byte {
	var result byte
	for i := 0; i < 8; i++ {
		if b&1 == 1 {
			result ^= a
		}
		highBit := a & 0x80
		a <<= 1
		if highBit != 0 {
			a ^= modulus
		}
		b >>= 1
	}
	return result
}

// inverse предполагает a != 0 и неприводимый модуль.
func inverse(a, modulus byte) byte {
	r0, r1 := uint16(modulus)|0x100, uint16(a)
	t0, t1 := uint16(0), uint16(1)
	for r1 != 0 {
		q := polyDiv(r0, r1)
		r0, r1 = r1, polyMod(r0, r1)
		t0, t1 = t1, t0^polyMul(q, t1)
	}
	return byte(t0)
}

// Вспомогательные функции над полиномами GF(2)[x]

func degree(poly uint16) int {
	deg := -1
	for poly > 0 {
		poly >>= 1
		deg++
	}
	return deg
}

func polyMul(a, b uint16) uint16 {
	var result uint16
	for b != 0 {
		if b&1 == 1 {
			result ^= a
		}
		a <<= 1
		b >>= 1
	}
	return result
}

func polyDiv(a, b uint16) uint16 {
	if b == 0 {
		return 0
	}
	degB := degree(b)
	var quotient uint16
	for degA := degree(a); degA >= degB; degA = degree(a) {
		shift := degA - degB
		quotient ^= 1 << shift
		a ^= b << shift
	}
	return quotient
}

func polyMod(a, b uint16) uint16 {
	if b == 0 {
		return a
	}
	degB := degree(b)
	for degA := degree(a); degA >= degB; degA = degree(a) {
		a ^= b << (degA - degB)
	}
	return a
}
