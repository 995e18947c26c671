package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/neoenginex/gemsutopia/internal/domain/shipping/model"
)

type SettingRepository interface {
	GetAll() (map[string]string, error)
	Upsert(key, value string) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) GetAll() (map[string]string, error) {
	var rows []model.ShippingSetting
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	pairs := make(map[string]string, len(rows))
	for _, row := range rows {
		pairs[row.Key] = row.Value
	}
	return pairs, nil
}

func (r *settingRepository) Upsert(key, value string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&model.ShippingSetting{Key: key, Value: value}).Error
}
