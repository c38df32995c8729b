package migrate

import (
	"context"
	"testing"

	"obligate/internal/models"

	"github.com/stretchr/testify/require"
)

func portAddresses(p *models.Port) []string {
	ids := make([]string, 0, len(p.IPAddresses))
	for _, ip := range p.IPAddresses {
		ids = append(ids, ip.ID)
	}
	return ids
}

func TestAssociatePorts(t *testing.T) {
	env, sink, _ := migratedEnv(t)
	require.NoError(t, MigrateInterfaces(context.Background(), env))

	require.Equal(t, 3, AssociatePorts(env))

	require.Equal(t, []string{"ip1", "ip2"}, portAddresses(sink.Ports[0]))
	require.Equal(t, []string{"ip3"}, portAddresses(sink.Ports[1]))
	require.Equal(t, 3, sink.Associations())
	require.Equal(t, 3, env.Stats.Associations)

	// повторный вызов не дублирует связи
	require.Zero(t, AssociatePorts(env))
	require.Equal(t, 3, sink.Associations())
}

func TestAssociatePorts_PortWithoutCachedAddresses(t *testing.T) {
	env, _, _ := newTestEnv(t, &MemSource{})
	port := &models.Port{ID: "if-x", NetworkID: "n"}
	env.Cache.SetPort("if-x", port)

	require.Zero(t, AssociatePorts(env))
	require.Empty(t, port.IPAddresses)
}
