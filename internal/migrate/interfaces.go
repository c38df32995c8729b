package migrate

import (
	"context"
	"fmt"

	"obligate/internal/models"
)

// MigrateInterfaces: interfaces -> quark_ports. Порт создаётся только для
// интерфейсов, сеть которых известна по адресам; остальные считаются сиротами.
func MigrateInterfaces(ctx context.Context, env *Env) error {
	env.fill()

	ifaces, err := env.Source.Interfaces(ctx)
	if err != nil {
		return fmt.Errorf("load interfaces: %w", err)
	}

	orphans := 0
	for _, iface := range ifaces {
		networkID, ok := env.Cache.Network(iface.ID)
		if !ok {
			orphans++
			env.Log.WithField("interface", iface.ID).Debug("interface has no network, skipping")
			continue
		}
		port := &models.Port{
			ID:         iface.ID,
			TenantID:   iface.TenantID,
			CreatedAt:  iface.CreatedAt,
			BackendKey: models.BackendKeyPlaceholder,
			NetworkID:  networkID,
		}
		if iface.DeviceID != nil {
			port.DeviceID = *iface.DeviceID
		}
		env.Cache.SetTenant(iface.ID, iface.TenantID)
		env.Cache.SetPort(iface.ID, port)
		env.Sink.AddPort(port)
		env.Stats.Ports++
	}

	env.Stats.OrphanInterfaces += orphans
	if orphans > 0 {
		env.Log.Warnf("found %d interfaces with no network", orphans)
	}
	return nil
}
