package editor

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalization selects the Unicode normalization applied to pasted text.
type Normalization uint8

const (
	NormalizeNone Normalization = iota
	NormalizeNFC
	NormalizeNFD
	NormalizeNFKC
	NormalizeNFKD
)

var normalizationNames = [...]string{"none", "nfc", "nfd", "nfkc", "nfkd"}

func (n Normalization) String() string {
	if int(n) < len(normalizationNames) {
		return normalizationNames[n]
	}
	return "unknown"
}

// ParseNormalization maps a form name such as "nfc" to a Normalization.
// The empty string means none.
func ParseNormalization(s string) (Normalization, error) {
	if s == "" {
		return NormalizeNone, nil
	}
	for i, name := range normalizationNames {
		if strings.EqualFold(s, name) {
			return Normalization(i), nil
		}
	}
	return NormalizeNone, fmt.Errorf("%w: %q", ErrUnknownNormalization, s)
}

// Apply normalizes s.
func (n Normalization) Apply(s string) string {
	switch n {
	case NormalizeNFC:
		return norm.NFC.String(s)
	case NormalizeNFD:
		return norm.NFD.String(s)
	case NormalizeNFKC:
		return norm.NFKC.String(s)
	case NormalizeNFKD:
		return norm.NFKD.String(s)
	default:
		return s
	}
}
