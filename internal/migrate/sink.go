package migrate

import (
	"context"
	"fmt"
	"strconv"

	"obligate/internal/models"
)

// Sink — контракт записи в quark. Add* только копят строки,
// Commit сохраняет всё одним разом.
type Sink interface {
	AddNetwork(n *models.Network)
	AddSubnet(s *models.Subnet)
	AddRoute(r *models.Route)
	AddIPAddress(ip *models.IPAddress)
	AddPort(p *models.Port)
	AddMacRange(r *models.MacAddressRange)
	AddMac(m *models.MacAddress)
	Commit(ctx context.Context) error
}

// Pending — набор строк, ожидающих коммита. Встраивается в реализации Sink.
type Pending struct {
	Networks    []*models.Network
	Subnets     []*models.Subnet
	Routes      []*models.Route
	IPAddresses []*models.IPAddress
	Ports       []*models.Port
	MacRanges   []*models.MacAddressRange
	Macs        []*models.MacAddress
}

func (p *Pending) AddNetwork(n *models.Network)          { p.Networks = append(p.Networks, n) }
func (p *Pending) AddSubnet(s *models.Subnet)            { p.Subnets = append(p.Subnets, s) }
func (p *Pending) AddRoute(r *models.Route)              { p.Routes = append(p.Routes, r) }
func (p *Pending) AddIPAddress(ip *models.IPAddress)     { p.IPAddresses = append(p.IPAddresses, ip) }
func (p *Pending) AddPort(port *models.Port)             { p.Ports = append(p.Ports, port) }
func (p *Pending) AddMacRange(r *models.MacAddressRange) { p.MacRanges = append(p.MacRanges, r) }
func (p *Pending) AddMac(m *models.MacAddress)           { p.Macs = append(p.Macs, m) }

// Associations — число связей порт-адрес.
func (p *Pending) Associations() int {
	n := 0
	for _, port := range p.Ports {
		n += len(port.IPAddresses)
	}
	return n
}

func (p *Pending) Empty() bool {
	return len(p.Networks)+len(p.Subnets)+len(p.Routes)+len(p.IPAddresses)+
		len(p.Ports)+len(p.MacRanges)+len(p.Macs) == 0
}

func (p *Pending) Reset() { *p = Pending{} }

// ─────────────────────────── in-memory sink ───────────────────────────

// MemSink — Sink без БД (dry-run и тесты). Как и настоящая БД,
// отвергает повторную вставку того же первичного ключа.
type MemSink struct {
	Pending
	Committed Pending
	Commits   int

	keys map[string]struct{}
}

func NewMemSink() *MemSink {
	return &MemSink{keys: make(map[string]struct{})}
}

func (m *MemSink) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.keys == nil {
		m.keys = make(map[string]struct{})
	}

	// проверяем всё до изменения состояния: коммит либо целиком, либо никак
	staged := make(map[string]struct{})
	for _, k := range m.pendingKeys() {
		if _, ok := m.keys[k.String()]; ok {
			return &DuplicateKeyError{Table: k.table, Key: k.id}
		}
		if _, ok := staged[k.String()]; ok {
			return &DuplicateKeyError{Table: k.table, Key: k.id}
		}
		staged[k.String()] = struct{}{}
	}

	for k := range staged {
		m.keys[k] = struct{}{}
	}
	c := &m.Committed
	c.Networks = append(c.Networks, m.Networks...)
	c.Subnets = append(c.Subnets, m.Subnets...)
	c.Routes = append(c.Routes, m.Routes...)
	c.IPAddresses = append(c.IPAddresses, m.IPAddresses...)
	c.Ports = append(c.Ports, m.Ports...)
	c.MacRanges = append(c.MacRanges, m.MacRanges...)
	c.Macs = append(c.Macs, m.Macs...)
	m.Pending.Reset()
	m.Commits++
	return nil
}

type rowKey struct{ table, id string }

func (k rowKey) String() string { return k.table + "/" + k.id }

func (m *MemSink) pendingKeys() []rowKey {
	var out []rowKey
	for _, r := range m.Networks {
		out = append(out, rowKey{models.Network{}.TableName(), r.ID})
	}
	for _, r := range m.Subnets {
		out = append(out, rowKey{models.Subnet{}.TableName(), r.ID})
	}
	for _, r := range m.Routes {
		out = append(out, rowKey{models.Route{}.TableName(), r.ID})
	}
	for _, r := range m.IPAddresses {
		out = append(out, rowKey{models.IPAddress{}.TableName(), r.ID})
	}
	for _, r := range m.Ports {
		out = append(out, rowKey{models.Port{}.TableName(), r.ID})
		for _, ip := range r.IPAddresses {
			out = append(out, rowKey{"quark_port_ip_address_associations", r.ID + ":" + ip.ID})
		}
	}
	for _, r := range m.MacRanges {
		out = append(out, rowKey{models.MacAddressRange{}.TableName(), r.ID})
	}
	for _, r := range m.Macs {
		out = append(out, rowKey{models.MacAddress{}.TableName(), strconv.FormatInt(r.Address, 10)})
	}
	return out
}

// DuplicateKeyError — строка с таким ключом уже есть (повторный прогон без flush).
type DuplicateKeyError struct {
	Table string
	Key   string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %s in %s", e.Key, e.Table)
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }
