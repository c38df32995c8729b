package migrate

import (
	"testing"

	"obligate/internal/models"

	"github.com/stretchr/testify/require"
)

func TestCache_BindNetwork_LastWins(t *testing.T) {
	c := NewCache()

	prev, conflict := c.BindNetwork("if-1", "net-a")
	require.False(t, conflict)
	require.Empty(t, prev)

	_, conflict = c.BindNetwork("if-1", "net-a")
	require.False(t, conflict, "same network is a confirmation, not a conflict")

	prev, conflict = c.BindNetwork("if-1", "net-b")
	require.True(t, conflict)
	require.Equal(t, "net-a", prev)

	got, ok := c.Network("if-1")
	require.True(t, ok)
	require.Equal(t, "net-b", got)

	_, ok = c.Network("if-2")
	require.False(t, ok)
}

func TestCache_AddAddress_Dedup(t *testing.T) {
	c := NewCache()
	a := &models.IPAddress{ID: "ip-1"}
	b := &models.IPAddress{ID: "ip-2"}

	require.True(t, c.AddAddress("if-1", a))
	require.True(t, c.AddAddress("if-1", b))
	require.False(t, c.AddAddress("if-1", &models.IPAddress{ID: "ip-1"}))

	require.Equal(t, []*models.IPAddress{a, b}, c.Addresses("if-1"))
	require.Nil(t, c.Addresses("if-unknown"))
}

func TestCache_Ports_Order(t *testing.T) {
	c := NewCache()
	c.SetPort("if-b", &models.Port{ID: "if-b"})
	c.SetPort("if-a", &models.Port{ID: "if-a"})
	c.SetPort("if-b", &models.Port{ID: "if-b"})
	c.SetTenant("if-a", "t1")

	require.Equal(t, []string{"if-b", "if-a"}, c.PortInterfaces())
	p, ok := c.Port("if-a")
	require.True(t, ok)
	require.Equal(t, "if-a", p.ID)
	tenant, ok := c.Tenant("if-a")
	require.True(t, ok)
	require.Equal(t, "t1", tenant)
}
