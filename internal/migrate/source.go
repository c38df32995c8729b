package migrate

import (
	"context"
	"sort"

	"obligate/internal/models"
)

// Source — контракт чтения схемы melange.
type Source interface {
	Blocks(ctx context.Context) ([]models.IpBlock, error)
	RoutesByBlock(ctx context.Context, blockID string) ([]models.IpRoute, error)
	AddressesByBlock(ctx context.Context, blockID string) ([]models.IpAddress, error)
	AllocatableByBlock(ctx context.Context, blockID string) ([]models.AllocatableIp, error)
	Interfaces(ctx context.Context) ([]models.Interface, error)
	// FirstMacRange возвращает самый ранний по created_at диапазон (nil, если их нет).
	FirstMacRange(ctx context.Context) (*models.MelangeMacAddressRange, error)
	MacAddresses(ctx context.Context) ([]models.MelangeMacAddress, error)
}

// ─────────────────────────── in-memory source ───────────────────────────

// MemSource — Source поверх срезов. Порядок выдачи тот же, что у SQL-реализации.
type MemSource struct {
	IpBlocks       []models.IpBlock
	IpRoutes       []models.IpRoute
	IpAddresses    []models.IpAddress
	AllocatableIps []models.AllocatableIp
	Ifaces         []models.Interface
	MacRanges      []models.MelangeMacAddressRange
	Macs           []models.MelangeMacAddress
}

func (m *MemSource) Blocks(context.Context) ([]models.IpBlock, error) {
	out := append([]models.IpBlock(nil), m.IpBlocks...)
	sort.SliceStable(out, func(i, j int) bool {
		return createdBefore(out[i].CreatedAt.UnixNano(), out[i].ID, out[j].CreatedAt.UnixNano(), out[j].ID)
	})
	return out, nil
}

func (m *MemSource) RoutesByBlock(_ context.Context, blockID string) ([]models.IpRoute, error) {
	var out []models.IpRoute
	for _, r := range m.IpRoutes {
		if r.SourceBlockID == blockID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemSource) AddressesByBlock(_ context.Context, blockID string) ([]models.IpAddress, error) {
	var out []models.IpAddress
	for _, a := range m.IpAddresses {
		if a.IpBlockID == blockID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return createdBefore(out[i].CreatedAt.UnixNano(), out[i].ID, out[j].CreatedAt.UnixNano(), out[j].ID)
	})
	return out, nil
}

func (m *MemSource) AllocatableByBlock(_ context.Context, blockID string) ([]models.AllocatableIp, error) {
	var out []models.AllocatableIp
	for _, a := range m.AllocatableIps {
		if a.IpBlockID == blockID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return createdBefore(out[i].CreatedAt.UnixNano(), out[i].ID, out[j].CreatedAt.UnixNano(), out[j].ID)
	})
	return out, nil
}

func (m *MemSource) Interfaces(context.Context) ([]models.Interface, error) {
	out := append([]models.Interface(nil), m.Ifaces...)
	sort.SliceStable(out, func(i, j int) bool {
		return createdBefore(out[i].CreatedAt.UnixNano(), out[i].ID, out[j].CreatedAt.UnixNano(), out[j].ID)
	})
	return out, nil
}

func (m *MemSource) FirstMacRange(context.Context) (*models.MelangeMacAddressRange, error) {
	var first *models.MelangeMacAddressRange
	for i := range m.MacRanges {
		r := &m.MacRanges[i]
		if first == nil || createdBefore(r.CreatedAt.UnixNano(), r.ID, first.CreatedAt.UnixNano(), first.ID) {
			first = r
		}
	}
	if first == nil {
		return nil, nil
	}
	cp := *first
	return &cp, nil
}

func (m *MemSource) MacAddresses(context.Context) ([]models.MelangeMacAddress, error) {
	out := append([]models.MelangeMacAddress(nil), m.Macs...)
	sort.SliceStable(out, func(i, j int) bool {
		return createdBefore(out[i].CreatedAt.UnixNano(), out[i].ID, out[j].CreatedAt.UnixNano(), out[j].ID)
	})
	return out, nil
}

// createdBefore — ORDER BY created_at, id.
func createdBefore(at1 int64, id1 string, at2 int64, id2 string) bool {
	if at1 != at2 {
		return at1 < at2
	}
	return id1 < id2
}
