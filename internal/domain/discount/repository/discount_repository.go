package repository

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/neoenginex/gemsutopia/internal/domain/discount/model"
)

type DiscountRepository interface {
	Create(code *model.DiscountCode) error
	GetByID(id string) (*model.DiscountCode, error)
	FindActiveByCode(code string) (*model.DiscountCode, error)
	GetList(offset, limit int) ([]model.DiscountCode, int64, error)
	Update(code *model.DiscountCode) error
	Delete(id string) error

	// InsertUsage returns false when a usage row for this (code, order) pair
	// already exists; the conflict is swallowed, not surfaced as an error.
	InsertUsage(usage *model.DiscountUsage) (bool, error)

	// IncrementUsedCount bumps used_count only while under the usage limit.
	IncrementUsedCount(codeID string) error
}

type discountRepository struct {
	db *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) Create(code *model.DiscountCode) error {
	code.Code = strings.ToUpper(code.Code)
	return r.db.Create(code).Error
}

func (r *discountRepository) GetByID(id string) (*model.DiscountCode, error) {
	var code model.DiscountCode
	if err := r.db.First(&code, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *discountRepository) FindActiveByCode(code string) (*model.DiscountCode, error) {
	var found model.DiscountCode
	err := r.db.
		Where("UPPER(code) = ? AND is_active = ?", strings.ToUpper(code), true).
		First(&found).Error
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *discountRepository) GetList(offset, limit int) ([]model.DiscountCode, int64, error) {
	var codes []model.DiscountCode
	var total int64

	if err := r.db.Model(&model.DiscountCode{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&codes).Error
	return codes, total, err
}

func (r *discountRepository) Update(code *model.DiscountCode) error {
	code.Code = strings.ToUpper(code.Code)
	return r.db.Save(code).Error
}

func (r *discountRepository) Delete(id string) error {
	return r.db.Delete(&model.DiscountCode{}, "id = ?", id).Error
}

func (r *discountRepository) InsertUsage(usage *model.DiscountUsage) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "discount_code_id"}, {Name: "order_id"}},
		DoNothing: true,
	}).Create(usage)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *discountRepository) IncrementUsedCount(codeID string) error {
	return r.db.Model(&model.DiscountCode{}).
		Where("id = ? AND (usage_limit IS NULL OR used_count < usage_limit)", codeID).
		UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error
}
