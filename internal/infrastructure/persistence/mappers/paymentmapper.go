package mappers

import (
	"kursly/internal/domain/payment"
	"kursly/internal/infrastructure/persistence/models"
)

// PaymentMapper handles conversion between Payment domain and model.
type PaymentMapper interface {
	ToModel(p *payment.Payment) *models.PaymentModel
	ToEntity(model *models.PaymentModel) (*payment.Payment, error)
}

type PaymentMapperImpl struct{}

// NewPaymentMapper creates a new PaymentMapper.
func NewPaymentMapper() PaymentMapper {
	return &PaymentMapperImpl{}
}

// ToModel converts domain entity to GORM model
func (m *PaymentMapperImpl) ToModel(p *payment.Payment) *models.PaymentModel {
	return &models.PaymentModel{
		ID:        p.ID(),
		UserID:    p.UserID(),
		Amount:    p.Amount(),
		Currency:  p.Currency(),
		Provider:  p.Provider(),
		ChargeID:  p.ChargeID(),
		CreatedAt: p.CreatedAt(),
	}
}

// ToEntity converts GORM model to domain entity
func (m *PaymentMapperImpl) ToEntity(model *models.PaymentModel) (*payment.Payment, error) {
	return payment.ReconstructPayment(
		model.ID,
		model.UserID,
		model.Amount,
		model.Currency,
		model.Provider,
		model.ChargeID,
		model.CreatedAt,
	)
}
