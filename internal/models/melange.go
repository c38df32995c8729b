package models

import "time"

// Таблицы melange (только чтение). Описаны лишь колонки, нужные миграции.

// IpBlock — блок адресов тенанта в сети.
type IpBlock struct {
	ID          string  `gorm:"primaryKey;size:36"`
	TenantID    string  `gorm:"size:255;index"`
	NetworkID   string  `gorm:"size:255;index"`
	NetworkName string  `gorm:"size:255"`
	CIDR        string  `gorm:"column:cidr;size:255"`
	ParentID    *string `gorm:"size:36"` // вложенные блоки не поддерживаются
	CreatedAt   time.Time
}

func (IpBlock) TableName() string { return "ip_blocks" }

type IpRoute struct {
	ID            string `gorm:"primaryKey;size:36"`
	SourceBlockID string `gorm:"size:36;index"`
	Netmask       string `gorm:"size:255"`
	Gateway       string `gorm:"size:255"`
}

func (IpRoute) TableName() string { return "ip_routes" }

// IpAddress — выданный адрес.
type IpAddress struct {
	ID                    string  `gorm:"primaryKey;size:36"`
	IpBlockID             string  `gorm:"size:36;index"`
	Address               string  `gorm:"size:255"`
	InterfaceID           *string `gorm:"size:36;index"`
	MarkedForDeallocation bool
	DeallocatedAt         *time.Time
	CreatedAt             time.Time
}

func (IpAddress) TableName() string { return "ip_addresses" }

// AllocatableIp — адрес, возвращённый в пул, но ещё не выданный.
type AllocatableIp struct {
	ID        string `gorm:"primaryKey;size:36"`
	IpBlockID string `gorm:"size:36;index"`
	Address   string `gorm:"size:255"`
	CreatedAt time.Time
}

func (AllocatableIp) TableName() string { return "allocatable_ips" }

type Interface struct {
	ID        string  `gorm:"primaryKey;size:36"`
	DeviceID  *string `gorm:"size:255"`
	TenantID  string  `gorm:"size:255"`
	CreatedAt time.Time
}

func (Interface) TableName() string { return "interfaces" }

type MelangeMacAddressRange struct {
	ID        string `gorm:"primaryKey;size:36"`
	CIDR      string `gorm:"column:cidr;size:255"`
	CreatedAt time.Time
}

func (MelangeMacAddressRange) TableName() string { return "mac_address_ranges" }

type MelangeMacAddress struct {
	ID          string  `gorm:"primaryKey;size:36"`
	Address     int64   `gorm:"index"`
	InterfaceID *string `gorm:"size:36;index"`
	CreatedAt   time.Time
}

func (MelangeMacAddress) TableName() string { return "mac_addresses" }

// MelangeModels — порядок для AutoMigrate в тестах.
func MelangeModels() []any {
	return []any{
		&IpBlock{}, &IpRoute{}, &IpAddress{}, &AllocatableIp{},
		&Interface{}, &MelangeMacAddressRange{}, &MelangeMacAddress{},
	}
}
