package repo

import (
	"context"
	"errors"

	"obligate/internal/models"

	"gorm.io/gorm"
)

// SourceStore читает схему melange. Порядок выдачи: created_at, затем id.
type SourceStore struct {
	db *gorm.DB
}

func NewSourceStore(db *gorm.DB) *SourceStore {
	return &SourceStore{db: db}
}

func (s *SourceStore) Blocks(ctx context.Context) ([]models.IpBlock, error) {
	var out []models.IpBlock
	err := s.db.WithContext(ctx).Order("created_at, id").Find(&out).Error
	return out, err
}

func (s *SourceStore) RoutesByBlock(ctx context.Context, blockID string) ([]models.IpRoute, error) {
	var out []models.IpRoute
	err := s.db.WithContext(ctx).
		Where("source_block_id = ?", blockID).
		Order("id").
		Find(&out).Error
	return out, err
}

func (s *SourceStore) AddressesByBlock(ctx context.Context, blockID string) ([]models.IpAddress, error) {
	var out []models.IpAddress
	err := s.db.WithContext(ctx).
		Where("ip_block_id = ?", blockID).
		Order("created_at, id").
		Find(&out).Error
	return out, err
}

func (s *SourceStore) AllocatableByBlock(ctx context.Context, blockID string) ([]models.AllocatableIp, error) {
	var out []models.AllocatableIp
	err := s.db.WithContext(ctx).
		Where("ip_block_id = ?", blockID).
		Order("created_at, id").
		Find(&out).Error
	return out, err
}

func (s *SourceStore) Interfaces(ctx context.Context) ([]models.Interface, error) {
	var out []models.Interface
	err := s.db.WithContext(ctx).Order("created_at, id").Find(&out).Error
	return out, err
}

// FirstMacRange — самый ранний диапазон; nil, если таблица пуста.
func (s *SourceStore) FirstMacRange(ctx context.Context) (*models.MelangeMacAddressRange, error) {
	var m models.MelangeMacAddressRange
	err := s.db.WithContext(ctx).Order("created_at, id").First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (s *SourceStore) MacAddresses(ctx context.Context) ([]models.MelangeMacAddress, error) {
	var out []models.MelangeMacAddress
	err := s.db.WithContext(ctx).Order("created_at, id").Find(&out).Error
	return out, err
}
