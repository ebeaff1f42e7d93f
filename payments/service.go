package payments

import (
	"github.com/Mina-Sayed/tocaan-payment-api/models"
	"github.com/Mina-Sayed/tocaan-payment-api/utils"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service orchestrates a payment attempt: it records a pending payment,
// charges the resolved gateway and settles the payment, all inside one
// transaction. Any error on the way rolls the pending row back.
type Service struct {
	db       *gorm.DB
	resolver *Resolver
}

func NewService(db *gorm.DB, resolver *Resolver) *Service {
	return &Service{db: db, resolver: resolver}
}

// Process runs a charge for the order and returns the settled payment.
// The order row is locked for the duration of the transaction so two
// concurrent calls cannot both commit a successful payment; the loser of
// the race gets the already-paid conflict. A failed gateway outcome is a
// valid terminal state, not an error.
func (s *Service) Process(order *models.Order, req ChargeRequest) (*models.Payment, error) {
	var payment models.Payment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var locked models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&locked, order.ID).Error; err != nil {
			return err
		}

		if locked.Status != models.OrderStatusConfirmed {
			return utils.ConflictError("Payments can only be processed for confirmed orders.", nil)
		}

		var paid int64
		if err := tx.Model(&models.Payment{}).
			Where("order_id = ? AND status = ?", locked.ID, models.PaymentStatusSuccessful).
			Count(&paid).Error; err != nil {
			return err
		}
		if paid > 0 {
			return utils.ConflictError("Order already has a successful payment.", nil)
		}

		payment = models.Payment{
			OrderID:          locked.ID,
			PaymentReference: uuid.New().String(),
			Status:           models.PaymentStatusPending,
			Method:           req.Method,
			Gateway:          req.Method,
			Amount:           locked.Total,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		gateway, err := s.resolver.Resolve(req.Method)
		if err != nil {
			return err
		}

		result, err := gateway.Charge(&locked, &payment, req)
		if err != nil {
			return err
		}

		// The gateway reports its own key, which the contract allows to
		// differ from the requested method.
		payment.Status = result.Status
		payment.Gateway = gateway.Key()
		payment.Meta = datatypes.JSONMap(result.Meta)

		return tx.Save(&payment).Error
	})
	if err != nil {
		return nil, err
	}

	return &payment, nil
}
