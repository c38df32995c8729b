package ipam

import (
	"fmt"
	"math/big"
	"net/netip"
	"strings"
)

// Addr — разобранный адрес melange в представлении quark.
type Addr struct {
	Version  int      // 4 или 6, по исходной записи
	Readable string   // исходная запись без пробелов по краям
	Int      *big.Int // 128 бит, IPv4 как ::ffff:a.b.c.d
}

// Parse разбирает текстовый адрес. IPv4 переводится в IPv4-mapped IPv6
// до перевода в число, чтобы обе версии жили в одной колонке.
func Parse(literal string) (Addr, error) {
	literal = strings.TrimSpace(literal)
	ip, err := netip.ParseAddr(literal)
	if err != nil {
		return Addr{}, fmt.Errorf("parse ip %q: %w", literal, err)
	}
	if ip.Zone() != "" {
		return Addr{}, fmt.Errorf("parse ip %q: zoned addresses are not supported", literal)
	}
	version := 6
	if ip.Is4() {
		version = 4
	}
	return Addr{Version: version, Readable: literal, Int: addrToBig(ip)}, nil
}

// addrToBig: As16 для IPv4 уже отдаёт ::ffff:a.b.c.d.
func addrToBig(a netip.Addr) *big.Int {
	b := a.As16()
	return new(big.Int).SetBytes(b[:])
}
