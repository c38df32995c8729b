package migrate

import (
	"context"
	"fmt"
	"time"

	"obligate/internal/ipam"
	"obligate/internal/models"

	"github.com/shopspring/decimal"
)

// MigrateAddresses: allocatable_ips и ip_addresses блока -> quark_ip_addresses.
// Попутно заполняет кэш интерфейс -> сеть и интерфейс -> адреса.
func MigrateAddresses(ctx context.Context, env *Env, b *models.IpBlock) error {
	env.fill()

	allocatable, err := env.Source.AllocatableByBlock(ctx, b.ID)
	if err != nil {
		return fmt.Errorf("load allocatable ips for block %s: %w", b.ID, err)
	}
	for _, a := range allocatable {
		// в пуле, никому не выдан
		ip, err := newIPAddress(b, a.ID, a.Address, a.CreatedAt, true, nil)
		if err != nil {
			return err
		}
		env.Sink.AddIPAddress(ip)
		env.Stats.IPAddresses++
		env.Stats.AllocatableIPs++
	}

	addresses, err := env.Source.AddressesByBlock(ctx, b.ID)
	if err != nil {
		return fmt.Errorf("load ip addresses for block %s: %w", b.ID, err)
	}
	for _, a := range addresses {
		var deallocatedAt *time.Time
		if a.MarkedForDeallocation {
			deallocatedAt = a.DeallocatedAt
		}
		ip, err := newIPAddress(b, a.ID, a.Address, a.CreatedAt, a.MarkedForDeallocation, deallocatedAt)
		if err != nil {
			return err
		}

		if a.InterfaceID != nil {
			iface := *a.InterfaceID
			if prev, conflict := env.Cache.BindNetwork(iface, b.NetworkID); conflict {
				env.Stats.InterfaceConflicts++
				env.Log.WithField("interface", iface).
					Warnf("interface found on network %s, was %s; keeping %s", b.NetworkID, prev, b.NetworkID)
			}
			env.Cache.AddAddress(iface, ip)
		}

		env.Sink.AddIPAddress(ip)
		env.Stats.IPAddresses++
	}
	return nil
}

func newIPAddress(b *models.IpBlock, id, literal string, createdAt time.Time, deallocated bool, deallocatedAt *time.Time) (*models.IPAddress, error) {
	addr, err := ipam.Parse(literal)
	if err != nil {
		return nil, fmt.Errorf("ip address %s in block %s: %w", id, b.ID, err)
	}
	return &models.IPAddress{
		ID:              id,
		CreatedAt:       createdAt,
		TenantID:        b.TenantID,
		NetworkID:       b.NetworkID,
		SubnetID:        b.ID,
		Version:         addr.Version,
		AddressReadable: addr.Readable,
		Address:         decimal.NewFromBigInt(addr.Int, 0),
		DeallocatedAt:   deallocatedAt,
		Deallocated:     deallocated,
	}, nil
}
