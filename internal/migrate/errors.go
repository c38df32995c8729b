package migrate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTenantConflict = errors.New("network owned by more than one tenant")
	ErrPortNotFound   = errors.New("port not found for interface")
	ErrNoMacRange     = errors.New("mac addresses present but no mac address range")
	ErrOutOfOrder     = errors.New("migration stage out of order")
	ErrDuplicateKey   = errors.New("duplicate key")
)

// TenantConflictError — блоки одной сети принадлежат разным тенантам.
type TenantConflictError struct {
	NetworkID string
	Tenants   []string
}

func (e *TenantConflictError) Error() string {
	return fmt.Sprintf("network %s: found tenants %s", e.NetworkID, strings.Join(e.Tenants, ", "))
}

func (e *TenantConflictError) Unwrap() error { return ErrTenantConflict }

// PortNotFoundError — у интерфейса есть сеть, но порт не создан.
type PortNotFoundError struct {
	InterfaceID string
}

func (e *PortNotFoundError) Error() string {
	return fmt.Sprintf("%v %s", ErrPortNotFound, e.InterfaceID)
}

func (e *PortNotFoundError) Unwrap() error { return ErrPortNotFound }
