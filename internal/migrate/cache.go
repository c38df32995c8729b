package migrate

import "obligate/internal/models"

// Cache связывает сущности, между которыми в quark нет прямого FK:
// сеть интерфейса известна только по его адресам.
// Принадлежит одному прогону, без блокировок.
type Cache struct {
	networks  map[string]string // interface -> network
	tenants   map[string]string // interface -> tenant
	addrs     map[string]*addrSet
	ports     map[string]*models.Port
	portOrder []string
}

type addrSet struct {
	seen map[string]struct{}
	list []*models.IPAddress
}

func NewCache() *Cache {
	return &Cache{
		networks: make(map[string]string),
		tenants:  make(map[string]string),
		addrs:    make(map[string]*addrSet),
		ports:    make(map[string]*models.Port),
	}
}

// BindNetwork запоминает сеть интерфейса. При расхождении с уже известной
// сетью побеждает последняя, а вызывающий получает прежнее значение.
func (c *Cache) BindNetwork(ifaceID, networkID string) (prev string, conflict bool) {
	prev, ok := c.networks[ifaceID]
	c.networks[ifaceID] = networkID
	return prev, ok && prev != networkID
}

func (c *Cache) Network(ifaceID string) (string, bool) {
	n, ok := c.networks[ifaceID]
	return n, ok
}

// AddAddress добавляет адрес в набор интерфейса; повтор по ID игнорируется.
func (c *Cache) AddAddress(ifaceID string, ip *models.IPAddress) bool {
	set, ok := c.addrs[ifaceID]
	if !ok {
		set = &addrSet{seen: make(map[string]struct{})}
		c.addrs[ifaceID] = set
	}
	if _, dup := set.seen[ip.ID]; dup {
		return false
	}
	set.seen[ip.ID] = struct{}{}
	set.list = append(set.list, ip)
	return true
}

// Addresses — адреса интерфейса в порядке добавления.
func (c *Cache) Addresses(ifaceID string) []*models.IPAddress {
	if set, ok := c.addrs[ifaceID]; ok {
		return set.list
	}
	return nil
}

func (c *Cache) SetTenant(ifaceID, tenantID string) { c.tenants[ifaceID] = tenantID }

func (c *Cache) Tenant(ifaceID string) (string, bool) {
	t, ok := c.tenants[ifaceID]
	return t, ok
}

func (c *Cache) SetPort(ifaceID string, p *models.Port) {
	if _, ok := c.ports[ifaceID]; !ok {
		c.portOrder = append(c.portOrder, ifaceID)
	}
	c.ports[ifaceID] = p
}

func (c *Cache) Port(ifaceID string) (*models.Port, bool) {
	p, ok := c.ports[ifaceID]
	return p, ok
}

// PortInterfaces — интерфейсы с портами в порядке создания портов.
func (c *Cache) PortInterfaces() []string { return c.portOrder }
