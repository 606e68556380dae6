package store

import (
	"context"
	"errors"

	"simplecache/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBackend implements Backend on top of a GORM connection.
type GormBackend struct {
	db *gorm.DB
}

// NewGormBackend wraps an open GORM connection.
func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db}
}

func (b *GormBackend) FindByKey(ctx context.Context, key string) (*models.CacheElement, error) {
	var element models.CacheElement
	err := b.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: "key"}, Value: key}).
		Take(&element).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &element, nil
}

func (b *GormBackend) FindWhere(ctx context.Context, query string, args ...any) ([]models.CacheElement, error) {
	var elements []models.CacheElement
	tx := b.db.WithContext(ctx).Model(&models.CacheElement{})
	if query != "" {
		tx = tx.Where(query, args...)
	}
	if err := tx.Find(&elements).Error; err != nil {
		return nil, err
	}
	return elements, nil
}

func (b *GormBackend) Upsert(ctx context.Context, element *models.CacheElement) (int64, error) {
	result := b.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			UpdateAll: true,
		}).
		Create(element)
	return result.RowsAffected, result.Error
}

func (b *GormBackend) Delete(ctx context.Context, element *models.CacheElement) (int64, error) {
	result := b.db.WithContext(ctx).Delete(element)
	return result.RowsAffected, result.Error
}

func (b *GormBackend) DeleteWhere(ctx context.Context, query string, args ...any) (int64, error) {
	result := b.db.WithContext(ctx).Where(query, args...).Delete(&models.CacheElement{})
	return result.RowsAffected, result.Error
}

func (b *GormBackend) Execute(ctx context.Context, statement string, args ...any) (int64, error) {
	result := b.db.WithContext(ctx).Exec(statement, args...)
	return result.RowsAffected, result.Error
}

func (b *GormBackend) EnsureTable(ctx context.Context) error {
	return b.db.WithContext(ctx).AutoMigrate(&models.CacheElement{})
}

func (b *GormBackend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ensure GormBackend implements Backend at compile time.
var _ Backend = (*GormBackend)(nil)
