package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BackendKeyPlaceholder — ключ бэкенда для портов до первой синхронизации с NVP.
const BackendKeyPlaceholder = "NVP_TEMP_KEY"

// Таблицы quark.

type Network struct {
	ID        string `gorm:"primaryKey;size:36"`
	TenantID  string `gorm:"size:255;index"`
	Name      string `gorm:"size:255"`
	CreatedAt time.Time
}

func (Network) TableName() string { return "quark_networks" }

// Subnet — один к одному с ip_blocks, ID совпадает.
type Subnet struct {
	ID        string `gorm:"primaryKey;size:36"`
	NetworkID string `gorm:"size:36;index"`
	CIDR      string `gorm:"column:cidr;size:64"`
	CreatedAt time.Time
}

func (Subnet) TableName() string { return "quark_subnets" }

type Route struct {
	ID        string `gorm:"primaryKey;size:36"`
	CIDR      string `gorm:"column:cidr;size:64"`
	TenantID  string `gorm:"size:255"`
	Gateway   string `gorm:"size:64"`
	SubnetID  string `gorm:"size:36;index"`
	CreatedAt time.Time
}

func (Route) TableName() string { return "quark_routes" }

// IPAddress хранит адрес как 128-битное число; IPv4 в виде ::ffff:a.b.c.d.
type IPAddress struct {
	ID              string          `gorm:"primaryKey;size:36"`
	TenantID        string          `gorm:"size:255"`
	NetworkID       string          `gorm:"size:36;index"`
	SubnetID        string          `gorm:"size:36;index"`
	Version         int             `gorm:"not null"`
	AddressReadable string          `gorm:"size:128"`
	Address         decimal.Decimal `gorm:"type:decimal(39,0);index"`
	DeallocatedAt   *time.Time
	Deallocated     bool `gorm:"column:_deallocated"`
	CreatedAt       time.Time
}

func (IPAddress) TableName() string { return "quark_ip_addresses" }

// Port — бывший melange interface.
type Port struct {
	ID          string `gorm:"primaryKey;size:36"`
	DeviceID    string `gorm:"size:255;index"`
	TenantID    string `gorm:"size:255"`
	BackendKey  string `gorm:"size:36"`
	NetworkID   string `gorm:"size:36;index"`
	MacAddress  *int64
	IPAddresses []*IPAddress `gorm:"many2many:quark_port_ip_address_associations;joinForeignKey:PortID;joinReferences:IPAddressID"`
	CreatedAt   time.Time
}

func (Port) TableName() string { return "quark_ports" }

// MacAddressRange: [FirstAddress, LastAddress), LastAddress не входит.
type MacAddressRange struct {
	ID                string `gorm:"primaryKey;size:36"`
	CIDR              string `gorm:"column:cidr;size:255"`
	FirstAddress      int64
	NextAutoAssignMac int64
	LastAddress       int64
	CreatedAt         time.Time
}

func (MacAddressRange) TableName() string { return "quark_mac_address_ranges" }

type MacAddress struct {
	Address           int64  `gorm:"primaryKey;autoIncrement:false"`
	TenantID          string `gorm:"size:255"`
	MacAddressRangeID string `gorm:"size:36;index"`
	CreatedAt         time.Time
}

func (MacAddress) TableName() string { return "quark_mac_addresses" }

// QuarkModels — порядок создания таблиц (удаление идёт в обратном порядке).
func QuarkModels() []any {
	return []any{
		&Network{}, &Subnet{}, &Route{}, &IPAddress{},
		&MacAddressRange{}, &Port{}, &MacAddress{},
	}
}
