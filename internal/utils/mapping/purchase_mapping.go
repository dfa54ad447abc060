package mapping

import (
	"github.com/dokani-app/dokani_backend/internal/core/domain"
	"github.com/dokani-app/dokani_backend/internal/models"
)

// ToModelPurchase converts a domain Purchase to a model Purchase.
func ToModelPurchase(d domain.Purchase) models.Purchase {
	return models.Purchase{
		PurchaseID:         d.PurchaseID,
		SupplierID:         d.SupplierID,
		ProductName:        d.ProductName,
		Quantity:           d.Quantity,
		UnitPrice:          d.UnitPrice,
		BaseAmount:         d.BaseAmount,
		TransportFee:       d.TransportFee,
		PurchaseDate:       d.PurchaseDate,
		AmountPaid:         d.AmountPaid,
		RemainingAmount:    d.RemainingAmount,
		OverpaidAmount:     d.OverpaidAmount,
		TransportPaid:      d.TransportPaid,
		TransportRemaining: d.TransportRemaining,
		TransportOverpaid:  d.TransportOverpaid,
		Status:             models.PurchaseStatus(d.Status),
		Notes:              d.Notes,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPurchase converts a model Purchase to a domain Purchase.
func ToDomainPurchase(m models.Purchase) domain.Purchase {
	return domain.Purchase{
		PurchaseID:   m.PurchaseID,
		SupplierID:   m.SupplierID,
		ProductName:  m.ProductName,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
		BaseAmount:   m.BaseAmount,
		TransportFee: m.TransportFee,
		PurchaseDate: m.PurchaseDate,
		Status:       domain.PurchaseStatus(m.Status),
		Notes:        m.Notes,
		Balances: domain.Balances{
			AmountPaid:         m.AmountPaid,
			RemainingAmount:    m.RemainingAmount,
			OverpaidAmount:     m.OverpaidAmount,
			TransportPaid:      m.TransportPaid,
			TransportRemaining: m.TransportRemaining,
			TransportOverpaid:  m.TransportOverpaid,
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPurchasePayment converts a domain PurchasePayment to its model.
func ToModelPurchasePayment(d domain.PurchasePayment) models.PurchasePayment {
	return models.PurchasePayment{
		PaymentID:       d.PaymentID,
		PurchaseID:      d.PurchaseID,
		Amount:          d.Amount,
		TransportAmount: d.TransportAmount,
		Method:          string(d.Method),
		Notes:           d.Notes,
		PaidAt:          d.PaidAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPurchasePayment converts a model PurchasePayment to its domain type.
func ToDomainPurchasePayment(m models.PurchasePayment) domain.PurchasePayment {
	return domain.PurchasePayment{
		PaymentID:       m.PaymentID,
		PurchaseID:      m.PurchaseID,
		Amount:          m.Amount,
		TransportAmount: m.TransportAmount,
		Method:          domain.PaymentMethod(m.Method),
		Notes:           m.Notes,
		PaidAt:          m.PaidAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPurchasePaymentSlice converts a slice of model PurchasePayments.
func ToDomainPurchasePaymentSlice(ms []models.PurchasePayment) []domain.PurchasePayment {
	ds := make([]domain.PurchasePayment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPurchasePayment(m)
	}
	return ds
}
