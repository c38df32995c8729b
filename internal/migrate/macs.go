package migrate

import (
	"context"
	"fmt"

	"obligate/internal/macrange"
	"obligate/internal/models"
)

// MigrateMacs: первый (самый ранний) mac_address_range и все mac_addresses.
// Тенант MAC-адреса известен только через сеть интерфейса, поэтому MAC
// интерфейса без сети пропускается. MAC ставится на порт интерфейса.
func MigrateMacs(ctx context.Context, env *Env) error {
	env.fill()

	src, err := env.Source.FirstMacRange(ctx)
	if err != nil {
		return fmt.Errorf("load mac address range: %w", err)
	}
	macs, err := env.Source.MacAddresses(ctx)
	if err != nil {
		return fmt.Errorf("load mac addresses: %w", err)
	}
	if src == nil {
		if len(macs) > 0 {
			return fmt.Errorf("%w (%d mac addresses)", ErrNoMacRange, len(macs))
		}
		env.Log.Warn("no mac address ranges to migrate")
		return nil
	}

	rng, err := macrange.Parse(src.CIDR)
	if err != nil {
		return fmt.Errorf("mac address range %s: %w", src.ID, err)
	}
	if !rng.StandardLength() {
		env.Log.WithField("range", src.ID).Warnf("mac range %q has a %d digit prefix, outside 6..10", src.CIDR, rng.PrefixLen)
	}

	env.Sink.AddMacRange(&models.MacAddressRange{
		ID:                src.ID,
		CIDR:              rng.CIDR,
		CreatedAt:         src.CreatedAt,
		FirstAddress:      rng.First,
		NextAutoAssignMac: rng.First,
		LastAddress:       rng.Last,
	})
	env.Stats.MacRanges++

	skipped := 0
	for _, m := range macs {
		if m.InterfaceID == nil {
			skipped++
			continue
		}
		iface := *m.InterfaceID
		if _, ok := env.Cache.Network(iface); !ok {
			skipped++
			continue
		}
		port, ok := env.Cache.Port(iface)
		if !ok {
			return &PortNotFoundError{InterfaceID: iface}
		}
		tenantID, ok := env.Cache.Tenant(iface)
		if !ok {
			return &PortNotFoundError{InterfaceID: iface}
		}
		if !rng.Contains(m.Address) {
			env.Stats.MacsOutOfRange++
			env.Log.WithField("interface", iface).Warnf("mac %012x is outside range %s", m.Address, rng.CIDR)
		}

		env.Sink.AddMac(&models.MacAddress{
			Address:           m.Address,
			TenantID:          tenantID,
			CreatedAt:         m.CreatedAt,
			MacAddressRangeID: src.ID,
		})
		addr := m.Address
		port.MacAddress = &addr
		env.Stats.Macs++
	}

	env.Stats.SkippedMacs += skipped
	if skipped > 0 {
		env.Log.Warnf("skipped %d mac addresses", skipped)
	}
	return nil
}
