package migrate

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Env — всё, что нужно стадии: откуда читать, куда писать и общий кэш прогона.
type Env struct {
	Source Source
	Sink   Sink
	Cache  *Cache
	Stats  *Stats
	Log    logrus.FieldLogger
}

// Stats — счётчики прогона, попадают в итоговый отчёт.
type Stats struct {
	Networks       int `yaml:"networks"`
	Subnets        int `yaml:"subnets"`
	Routes         int `yaml:"routes"`
	IPAddresses    int `yaml:"ip_addresses"`
	AllocatableIPs int `yaml:"allocatable_ips"`
	Ports          int `yaml:"ports"`
	Associations   int `yaml:"port_ip_associations"`
	MacRanges      int `yaml:"mac_ranges"`
	Macs           int `yaml:"macs"`

	// диагностика, не ошибки
	NestedBlocks       int `yaml:"nested_blocks"`
	InterfaceConflicts int `yaml:"interface_network_conflicts"`
	OrphanInterfaces   int `yaml:"orphan_interfaces"`
	SkippedMacs        int `yaml:"skipped_macs"`
	MacsOutOfRange     int `yaml:"macs_out_of_range"`
}

func (e *Env) fill() {
	if e.Cache == nil {
		e.Cache = NewCache()
	}
	if e.Stats == nil {
		e.Stats = &Stats{}
	}
	if e.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		e.Log = l
	}
}
