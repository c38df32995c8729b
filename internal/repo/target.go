package repo

import (
	"context"
	"errors"
	"fmt"

	"obligate/internal/migrate"

	"gorm.io/gorm"
)

const DefaultBatchSize = 500

// TargetStore копит строки quark и пишет их в Commit одной транзакцией.
// До Commit в БД ничего не попадает.
type TargetStore struct {
	migrate.Pending

	db        *gorm.DB
	batchSize int
}

func NewTargetStore(db *gorm.DB, batchSize int) *TargetStore {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &TargetStore{db: db, batchSize: batchSize}
}

// Commit: сети, подсети, маршруты, адреса, диапазоны, порты (со связями), MAC.
// При ошибке транзакция откатывается целиком, накопленное остаётся.
func (s *TargetStore) Commit(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := createInBatches(tx, "networks", s.Networks, s.batchSize); err != nil {
			return err
		}
		if err := createInBatches(tx, "subnets", s.Subnets, s.batchSize); err != nil {
			return err
		}
		if err := createInBatches(tx, "routes", s.Routes, s.batchSize); err != nil {
			return err
		}
		if err := createInBatches(tx, "ip addresses", s.IPAddresses, s.batchSize); err != nil {
			return err
		}
		if err := createInBatches(tx, "mac address ranges", s.MacRanges, s.batchSize); err != nil {
			return err
		}
		// адреса уже вставлены выше: для связей пишем только join-строки
		if len(s.Ports) > 0 {
			if err := tx.Omit("IPAddresses.*").CreateInBatches(s.Ports, s.batchSize).Error; err != nil {
				return fmt.Errorf("insert ports: %w", err)
			}
		}
		return createInBatches(tx, "mac addresses", s.Macs, s.batchSize)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// повторный прогон без flush
			return fmt.Errorf("%w: %w", migrate.ErrDuplicateKey, err)
		}
		return err
	}
	s.Reset()
	return nil
}

func createInBatches[T any](tx *gorm.DB, what string, rows []*T, size int) error {
	if len(rows) == 0 {
		return nil
	}
	if err := tx.CreateInBatches(rows, size).Error; err != nil {
		return fmt.Errorf("insert %s: %w", what, err)
	}
	return nil
}
