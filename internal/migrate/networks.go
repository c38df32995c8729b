package migrate

import (
	"context"
	"fmt"
	"slices"

	"obligate/internal/models"
)

type networkInfo struct {
	tenantID string
	name     string
	tenants  []string // все встреченные тенанты, для ошибки
}

// MigrateNetworks: ip_blocks -> quark_networks + quark_subnets, по каждому блоку
// маршруты и адреса. Сеть принадлежит ровно одному тенанту; если блоки
// одной сети расходятся по тенанту, прогон прерывается до записи первой строки.
func MigrateNetworks(ctx context.Context, env *Env) error {
	env.fill()

	blocks, err := env.Source.Blocks(ctx)
	if err != nil {
		return fmt.Errorf("load ip blocks: %w", err)
	}

	// 1) сети: тенант и имя берём у первого блока
	networks := map[string]*networkInfo{}
	order := make([]string, 0)
	for _, b := range blocks {
		info, ok := networks[b.NetworkID]
		if !ok {
			networks[b.NetworkID] = &networkInfo{tenantID: b.TenantID, name: b.NetworkName, tenants: []string{b.TenantID}}
			order = append(order, b.NetworkID)
			continue
		}
		if !slices.Contains(info.tenants, b.TenantID) {
			info.tenants = append(info.tenants, b.TenantID)
		}
	}
	for _, id := range order {
		if info := networks[id]; len(info.tenants) > 1 {
			env.Log.WithField("network", id).Errorf("found different tenants on network: %v", info.tenants)
			return &TenantConflictError{NetworkID: id, Tenants: info.tenants}
		}
	}

	for _, id := range order {
		info := networks[id]
		env.Sink.AddNetwork(&models.Network{ID: id, TenantID: info.tenantID, Name: info.name})
		env.Stats.Networks++
	}

	// 2) подсети, маршруты и адреса поблочно
	for i := range blocks {
		b := &blocks[i]
		if b.ParentID != nil && *b.ParentID != "" {
			env.Stats.NestedBlocks++
			env.Log.WithField("block", b.ID).Warnf("nested block (parent %s) is not supported, migrating flat", *b.ParentID)
		}

		env.Sink.AddSubnet(&models.Subnet{ID: b.ID, NetworkID: b.NetworkID, CIDR: b.CIDR})
		env.Stats.Subnets++

		if err := migrateRoutes(ctx, env, b); err != nil {
			return err
		}
		if err := MigrateAddresses(ctx, env, b); err != nil {
			return err
		}
	}
	return nil
}

func migrateRoutes(ctx context.Context, env *Env, b *models.IpBlock) error {
	routes, err := env.Source.RoutesByBlock(ctx, b.ID)
	if err != nil {
		return fmt.Errorf("load routes for block %s: %w", b.ID, err)
	}
	for _, r := range routes {
		env.Sink.AddRoute(&models.Route{
			ID:        r.ID,
			CIDR:      r.Netmask,
			TenantID:  b.TenantID,
			Gateway:   r.Gateway,
			SubnetID:  b.ID,
			CreatedAt: b.CreatedAt,
		})
		env.Stats.Routes++
	}
	return nil
}
