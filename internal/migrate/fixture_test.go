package migrate

import (
	"strings"
	"testing"
	"time"

	"obligate/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

var t0 = time.Date(2012, 6, 1, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

// melangeFixture — две сети, три блока, три интерфейса (один без адресов)
// и два MAC-диапазона, из которых ранний mr-1.
func melangeFixture() *MemSource {
	return &MemSource{
		IpBlocks: []models.IpBlock{
			{ID: "b3", TenantID: "t2", NetworkID: "net-2", NetworkName: "private", CIDR: "2001:db8::/64", CreatedAt: t0.Add(2 * time.Minute)},
			{ID: "b1", TenantID: "t1", NetworkID: "net-1", NetworkName: "public", CIDR: "10.0.0.0/24", CreatedAt: t0},
			{ID: "b2", TenantID: "t1", NetworkID: "net-1", NetworkName: "public-2", CIDR: "10.0.1.0/24", CreatedAt: t0.Add(time.Minute)},
		},
		IpRoutes: []models.IpRoute{
			{ID: "r1", SourceBlockID: "b1", Netmask: "0.0.0.0/0", Gateway: "10.0.0.1"},
			{ID: "r2", SourceBlockID: "b3", Netmask: "::/0", Gateway: "2001:db8::1"},
		},
		AllocatableIps: []models.AllocatableIp{
			{ID: "al1", IpBlockID: "b1", Address: "10.0.0.50", CreatedAt: t0},
		},
		IpAddresses: []models.IpAddress{
			{ID: "ip1", IpBlockID: "b1", Address: "10.0.0.1", InterfaceID: ptr("if-1"), CreatedAt: t0},
			{ID: "ip2", IpBlockID: "b2", Address: "10.0.1.2", InterfaceID: ptr("if-1"), CreatedAt: t0.Add(time.Second)},
			{ID: "ip3", IpBlockID: "b3", Address: "2001:db8::5", InterfaceID: ptr("if-2"), MarkedForDeallocation: true, DeallocatedAt: ptr(t0.Add(time.Hour)), CreatedAt: t0},
			{ID: "ip4", IpBlockID: "b1", Address: "10.0.0.9", CreatedAt: t0.Add(2 * time.Second)},
		},
		Ifaces: []models.Interface{
			{ID: "if-1", DeviceID: ptr("dev-1"), TenantID: "t1", CreatedAt: t0},
			{ID: "if-2", TenantID: "t2", CreatedAt: t0.Add(time.Second)},
			{ID: "if-3", DeviceID: ptr("dev-3"), TenantID: "t1", CreatedAt: t0.Add(2 * time.Second)},
		},
		MacRanges: []models.MelangeMacAddressRange{
			{ID: "mr-2", CIDR: "BBCCDD/24", CreatedAt: t0.Add(time.Hour)},
			{ID: "mr-1", CIDR: "AABBCC/24", CreatedAt: t0},
		},
		Macs: []models.MelangeMacAddress{
			{ID: "m1", Address: 0xaabbcc000001, InterfaceID: ptr("if-1"), CreatedAt: t0},
			{ID: "m2", Address: 0xaabbcc000003, InterfaceID: ptr("if-3"), CreatedAt: t0.Add(time.Second)},
			{ID: "m3", Address: 0xaabbcc000004, CreatedAt: t0.Add(2 * time.Second)},
			{ID: "m4", Address: 0xbbccdd000002, InterfaceID: ptr("if-2"), CreatedAt: t0.Add(3 * time.Second)},
		},
	}
}

func newTestEnv(t *testing.T, src Source) (*Env, *MemSink, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	sink := NewMemSink()
	return &Env{Source: src, Sink: sink, Cache: NewCache(), Stats: &Stats{}, Log: logger}, sink, hook
}

func hasLog(hook *test.Hook, level logrus.Level, substr string) bool {
	for _, e := range hook.AllEntries() {
		if e.Level == level && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
