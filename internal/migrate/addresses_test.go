package migrate

import (
	"context"
	"testing"

	"obligate/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func byID(ips []*models.IPAddress) map[string]*models.IPAddress {
	out := make(map[string]*models.IPAddress, len(ips))
	for _, ip := range ips {
		out[ip.ID] = ip
	}
	return out
}

func TestMigrateAddresses_IPv4MappedInteger(t *testing.T) {
	block := &models.IpBlock{ID: "b1", TenantID: "t1", NetworkID: "net-1"}
	src := &MemSource{IpAddresses: []models.IpAddress{
		{ID: "ip1", IpBlockID: "b1", Address: "10.0.0.1", CreatedAt: t0},
	}}
	env, sink, _ := newTestEnv(t, src)

	require.NoError(t, MigrateAddresses(context.Background(), env, block))
	require.Len(t, sink.IPAddresses, 1)

	ip := sink.IPAddresses[0]
	require.Equal(t, 4, ip.Version)
	require.Equal(t, "10.0.0.1", ip.AddressReadable)
	require.True(t, decimal.NewFromInt(0xffff0a000001).Equal(ip.Address), "got %s", ip.Address)
	require.Equal(t, "b1", ip.SubnetID)
	require.Equal(t, "net-1", ip.NetworkID)
	require.Equal(t, "t1", ip.TenantID)
	require.Equal(t, t0, ip.CreatedAt)
	require.False(t, ip.Deallocated)
	require.Nil(t, ip.DeallocatedAt)
}

func TestMigrateAddresses_Deallocation(t *testing.T) {
	deallocatedAt := t0.Add(48 * 3600e9)
	block := &models.IpBlock{ID: "b1", TenantID: "t1", NetworkID: "net-1"}
	src := &MemSource{
		AllocatableIps: []models.AllocatableIp{
			{ID: "free", IpBlockID: "b1", Address: "10.0.0.200"},
		},
		IpAddresses: []models.IpAddress{
			{ID: "marked", IpBlockID: "b1", Address: "10.0.0.2", MarkedForDeallocation: true, DeallocatedAt: &deallocatedAt},
			// deallocated_at без флага не переносится
			{ID: "live", IpBlockID: "b1", Address: "10.0.0.3", DeallocatedAt: &deallocatedAt},
		},
	}
	env, sink, _ := newTestEnv(t, src)

	require.NoError(t, MigrateAddresses(context.Background(), env, block))
	got := byID(sink.IPAddresses)
	require.Len(t, got, 3)

	require.True(t, got["free"].Deallocated)
	require.Nil(t, got["free"].DeallocatedAt)

	require.True(t, got["marked"].Deallocated)
	require.Equal(t, &deallocatedAt, got["marked"].DeallocatedAt)

	require.False(t, got["live"].Deallocated)
	require.Nil(t, got["live"].DeallocatedAt)

	require.Equal(t, 1, env.Stats.AllocatableIPs)
	require.Equal(t, 3, env.Stats.IPAddresses)
}

func TestMigrateAddresses_FillsInterfaceCache(t *testing.T) {
	b1 := &models.IpBlock{ID: "b1", TenantID: "t1", NetworkID: "net-1"}
	b2 := &models.IpBlock{ID: "b2", TenantID: "t1", NetworkID: "net-2"}
	src := &MemSource{IpAddresses: []models.IpAddress{
		{ID: "ip1", IpBlockID: "b1", Address: "10.0.0.1", InterfaceID: ptr("if-1")},
		{ID: "ip2", IpBlockID: "b1", Address: "10.0.0.2", InterfaceID: ptr("if-1")},
		{ID: "ip3", IpBlockID: "b1", Address: "10.0.0.3"},
		{ID: "ip4", IpBlockID: "b2", Address: "10.1.0.1", InterfaceID: ptr("if-1")},
	}}
	env, _, hook := newTestEnv(t, src)

	require.NoError(t, MigrateAddresses(context.Background(), env, b1))
	net, ok := env.Cache.Network("if-1")
	require.True(t, ok)
	require.Equal(t, "net-1", net)
	require.Len(t, env.Cache.Addresses("if-1"), 2)
	require.Zero(t, env.Stats.InterfaceConflicts)

	// тот же интерфейс в другой сети: предупреждение, побеждает последняя
	require.NoError(t, MigrateAddresses(context.Background(), env, b2))
	net, _ = env.Cache.Network("if-1")
	require.Equal(t, "net-2", net)
	require.Equal(t, 1, env.Stats.InterfaceConflicts)
	require.True(t, hasLog(hook, logrus.WarnLevel, "interface found on network net-2, was net-1"))

	ids := []string{}
	for _, ip := range env.Cache.Addresses("if-1") {
		ids = append(ids, ip.ID)
	}
	require.Equal(t, []string{"ip1", "ip2", "ip4"}, ids)
}

func TestMigrateAddresses_InvalidLiteral(t *testing.T) {
	block := &models.IpBlock{ID: "b1", TenantID: "t1", NetworkID: "net-1"}
	src := &MemSource{IpAddresses: []models.IpAddress{
		{ID: "bad", IpBlockID: "b1", Address: "10.0.0.256"},
	}}
	env, sink, _ := newTestEnv(t, src)

	err := MigrateAddresses(context.Background(), env, block)
	require.Error(t, err)
	require.Contains(t, err.Error(), "ip address bad in block b1")
	require.Empty(t, sink.IPAddresses)
}
