package padding

import (
	"fmt"
	"strings"
)

// Scheme — режим набивки.
type Scheme int

const (
	None Scheme = iota
	Bit
	PKCS
	ANSIX923
	ISO10126
	Zero
)

func (s Scheme) String() string {
	switch s {
	case None:
		return "None"
	case Bit:
		return "Bit"
	case PKCS:
		return "PKCS7"
	case ANSIX923:
		return "ANSI X.923"
	case ISO10126:
		return "ISO 10126"
	case Zero:
		return "Zero"
	default:
		return "Unknown"
	}
}

// Padding возвращает реализацию схемы, nil для неизвестной схемы.
func (s Scheme) Padding() Padding {
	switch s {
	case None:
		return &NoPadding{}
	case Bit:
		return &BitPadding{}
	case PKCS:
		return &PKCS7Padding{}
	case ANSIX923:
		return &ANSIX923Padding{}
	case ISO10126:
		return &ISO10126Padding{}
	case Zero:
		return &ZeroPadding{}
	default:
		return nil
	}
}

// Schemes перечисляет все поддерживаемые схемы.
func Schemes() []Scheme {
	return []Scheme{None, Bit, PKCS, ANSIX923, ISO10126, Zero}
}

// ParseScheme разбирает имя схемы без учета регистра.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none":
		return None, nil
	case "bit", "iso7816":
		return Bit, nil
	case "pkcs", "pkcs7", "pkcs5":
		return PKCS, nil
	case "ansix923", "ansi", "x923":
		return ANSIX923, nil
	case "iso10126":
		return ISO10126, nil
	case "zero", "zeros":
		return Zero, nil
	default:
		return 0, fmt.Errorf("неподдерживаемый режим набивки: %q", name)
	}
}
