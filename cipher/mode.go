package cipher

import (
	"fmt"
	"strings"
)

// Mode — режим шифрования.
type Mode int

const (
	ECB Mode = iota
	CBC
	PCBC
	CFB
	OFB
	CTR
)

func (m Mode) String() string {
	switch m {
	case ECB:
		return "ECB"
	case CBC:
		return "CBC"
	case PCBC:
		return "PCBC"
	case CFB:
		return "CFB"
	case OFB:
		return "OFB"
	case CTR:
		return "CTR"
	default:
		return "Unknown"
	}
}

// RequiresPadding сообщает, нужна ли режиму набивка до кратности блоку.
func (m Mode) RequiresPadding() bool {
	return m == ECB || m == CBC || m == PCBC
}

// RequiresIV сообщает, нужен ли режиму IV или начальный счетчик.
func (m Mode) RequiresIV() bool {
	return m != ECB
}

// Modes перечисляет все поддерживаемые режимы.
func Modes() []Mode {
	return []Mode{ECB, CBC, PCBC, CFB, OFB, CTR}
}

// ParseMode разбирает имя режима без учета регистра.
func ParseMode(name string) (Mode, error) {
	for _, m := range Modes() {
		if strings.EqualFold(strings.TrimSpace(name), m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedMode, name)
}
