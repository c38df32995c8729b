// Package macrange переводит текстовый MAC-диапазон melange
// ("AA:BB:CC/24", "AA-BB-CC-DD", "AABBCCDDEEFF") в CIDR и числовые границы quark.
package macrange

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

const (
	macBits   = 48
	macDigits = macBits / 4

	// Исторические границы длины префикса в quark. Выход за них не ошибка,
	// а отметка для лога (см. StandardLength).
	minPrefixDigits = 6
	maxPrefixDigits = 10
)

var ErrInvalidRange = errors.New("invalid mac address range")

// Range — [First, Last), Last не входит.
type Range struct {
	CIDR      string
	Mask      int
	First     int64
	Last      int64
	PrefixLen int // число hex-цифр префикса до дополнения нулями
}

// Size — количество адресов в диапазоне.
func (r Range) Size() int64 { return r.Last - r.First }

// StandardLength — длина префикса в пределах, которые принимает quark API.
func (r Range) StandardLength() bool {
	return r.PrefixLen >= minPrefixDigits && r.PrefixLen <= maxPrefixDigits
}

// Contains проверяет, что MAC попадает в диапазон.
func (r Range) Contains(mac int64) bool { return mac >= r.First && mac < r.Last }

func invalid(val, reason string) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidRange, val, reason)
}

// Parse разбирает PREFIX[/MASK]. Без маски она выводится из длины префикса.
func Parse(val string) (Range, error) {
	parts := strings.Split(strings.TrimSpace(val), "/")
	if len(parts) > 2 {
		return Range{}, invalid(val, "more than one mask separator")
	}

	prefix := strings.NewReplacer(":", "", "-", "").Replace(parts[0])
	l := len(prefix)
	if l == 0 {
		return Range{}, invalid(val, "empty prefix")
	}
	if l > macDigits {
		return Range{}, invalid(val, fmt.Sprintf("prefix has %d hex digits, max %d", l, macDigits))
	}

	diff := macDigits - l
	mask := macBits - diff*4
	if len(parts) == 2 {
		m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return Range{}, invalid(val, "mask is not an integer")
		}
		mask = m
	}
	if mask < 0 || mask > macBits {
		return Range{}, invalid(val, fmt.Sprintf("mask %d out of range 0..%d", mask, macBits))
	}

	padded := prefix + strings.Repeat("0", diff)
	first, err := strconv.ParseUint(padded, 16, macBits)
	if err != nil {
		return Range{}, invalid(val, "prefix is not hex")
	}

	return Range{
		CIDR:      fmt.Sprintf("%s/%d", format(first), mask),
		Mask:      mask,
		First:     int64(first),
		Last:      int64(first) + int64(1)<<uint(macBits-mask),
		PrefixLen: l,
	}, nil
}

// format: 0xaabbccddeeff -> "aa:bb:cc:dd:ee:ff".
func format(v uint64) string {
	hw := make(net.HardwareAddr, macBits/8)
	for i := len(hw) - 1; i >= 0; i-- {
		hw[i] = byte(v)
		v >>= 8
	}
	return hw.String()
}
