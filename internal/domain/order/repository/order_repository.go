package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/neoenginex/gemsutopia/internal/domain/order/model"
)

type OrderRepository interface {
	// Insert writes the order unless one with the same payment_intent_id
	// already exists; returns false for the duplicate case. The conflict is
	// resolved by the database, not by a prior existence check, so two
	// concurrent deliveries of the same payment cannot both insert.
	Insert(order *model.Order) (bool, error)

	GetByID(id string) (*model.Order, error)
	GetByPaymentIntentID(paymentIntentID string) (*model.Order, error)
	List(isTest bool, offset, limit int) ([]model.Order, int64, error)
	Delete(id string) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Insert(order *model.Order) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "payment_intent_id"}},
		DoNothing: true,
	}).Create(order)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *orderRepository) GetByID(id string) (*model.Order, error) {
	var order model.Order
	if err := r.db.First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByPaymentIntentID(paymentIntentID string) (*model.Order, error) {
	var order model.Order
	if err := r.db.First(&order, "payment_intent_id = ?", paymentIntentID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(isTest bool, offset, limit int) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	query := r.db.Model(&model.Order{}).Where("is_test_order = ?", isTest)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error
	return orders, total, err
}

func (r *orderRepository) Delete(id string) error {
	return r.db.Delete(&model.Order{}, "id = ?", id).Error
}
