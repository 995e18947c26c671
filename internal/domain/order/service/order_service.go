package service

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/neoenginex/gemsutopia/internal/domain/order/model"
	"github.com/neoenginex/gemsutopia/internal/domain/order/repository"
	"github.com/neoenginex/gemsutopia/internal/pkg/middleware"
	"github.com/neoenginex/gemsutopia/pkg/logger"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	// ErrLiveOrderDelete guards real-money orders: they are immutable.
	ErrLiveOrderDelete = errors.New("live orders cannot be deleted")
)

type OrderService interface {
	// Record writes a normalized order. Classification runs first, then the
	// insert; a duplicate payment id is reported as created=false and is not
	// an error (the payment was already recorded by the other delivery path).
	Record(order *model.Order, details PaymentDetails) (created bool, err error)

	List(mode string, offset, limit int) ([]model.Order, int64, error)
	Delete(id string) error
}

type orderService struct {
	repo       repository.OrderRepository
	classifier ClassifierConfig
	metrics    *middleware.Metrics
}

func NewOrderService(repo repository.OrderRepository, classifier ClassifierConfig, metrics *middleware.Metrics) OrderService {
	return &orderService{repo: repo, classifier: classifier, metrics: metrics}
}

func (s *orderService) Record(order *model.Order, details PaymentDetails) (bool, error) {
	order.IsTestOrder = ClassifyTestOrder(details, s.classifier)

	created, err := s.repo.Insert(order)
	if err != nil {
		return false, err
	}

	if s.metrics != nil {
		if created {
			s.metrics.OrdersRecorded.WithLabelValues(details.Method).Inc()
		} else {
			s.metrics.OrdersDuplicate.WithLabelValues(details.Method).Inc()
		}
	}
	if !created && logger.Log != nil {
		logger.Log.Info("order already recorded, skipping duplicate",
			zap.String("payment_intent_id", order.PaymentIntentID),
			zap.String("method", details.Method))
	}
	return created, nil
}

// List returns live orders for mode "live", test orders otherwise.
func (s *orderService) List(mode string, offset, limit int) ([]model.Order, int64, error) {
	return s.repo.List(mode != "live", offset, limit)
}

func (s *orderService) Delete(id string) error {
	order, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	if !order.IsTestOrder {
		return ErrLiveOrderDelete
	}
	return s.repo.Delete(id)
}
