package mapping

import (
	"github.com/dokani-app/dokani_backend/internal/core/domain"
	"github.com/dokani-app/dokani_backend/internal/models"
)

// ToModelSale converts a domain Sale to a model Sale.
func ToModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		SaleID:          d.SaleID,
		CustomerID:      d.CustomerID,
		SaleDate:        d.SaleDate,
		Subtotal:        d.Subtotal,
		Discount:        d.Discount,
		Profit:          d.Profit,
		TotalAmount:     d.TotalAmount,
		AmountPaid:      d.AmountPaid,
		RemainingAmount: d.RemainingAmount,
		OverpaidAmount:  d.OverpaidAmount,
		Status:          models.SaleStatus(d.Status),
		DueDate:         d.DueDate,
		Notes:           d.Notes,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSale converts a model Sale to a domain Sale.
func ToDomainSale(m models.Sale) domain.Sale {
	return domain.Sale{
		SaleID:      m.SaleID,
		CustomerID:  m.CustomerID,
		SaleDate:    m.SaleDate,
		Subtotal:    m.Subtotal,
		Discount:    m.Discount,
		Profit:      m.Profit,
		TotalAmount: m.TotalAmount,
		Status:      domain.SaleStatus(m.Status),
		DueDate:     m.DueDate,
		Notes:       m.Notes,
		Balances: domain.Balances{
			AmountPaid:      m.AmountPaid,
			RemainingAmount: m.RemainingAmount,
			OverpaidAmount:  m.OverpaidAmount,
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSaleItem converts a domain SaleItem to a model SaleItem.
func ToModelSaleItem(d domain.SaleItem) models.SaleItem {
	return models.SaleItem{
		SaleItemID:  d.SaleItemID,
		SaleID:      d.SaleID,
		ProductID:   d.ProductID,
		ProductName: d.ProductName,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		Subtotal:    d.Subtotal,
	}
}

// ToDomainSaleItem converts a model SaleItem to a domain SaleItem.
func ToDomainSaleItem(m models.SaleItem) domain.SaleItem {
	return domain.SaleItem{
		SaleItemID:  m.SaleItemID,
		SaleID:      m.SaleID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Subtotal:    m.Subtotal,
	}
}

// ToDomainSaleItemSlice converts a slice of model SaleItems.
func ToDomainSaleItemSlice(ms []models.SaleItem) []domain.SaleItem {
	ds := make([]domain.SaleItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSaleItem(m)
	}
	return ds
}

// ToModelSalePayment converts a domain SalePayment to a model SalePayment.
func ToModelSalePayment(d domain.SalePayment) models.SalePayment {
	return models.SalePayment{
		PaymentID:   d.PaymentID,
		SaleID:      d.SaleID,
		Amount:      d.Amount,
		Method:      string(d.Method),
		Notes:       d.Notes,
		PaidAt:      d.PaidAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSalePayment converts a model SalePayment to a domain SalePayment.
func ToDomainSalePayment(m models.SalePayment) domain.SalePayment {
	return domain.SalePayment{
		PaymentID:   m.PaymentID,
		SaleID:      m.SaleID,
		Amount:      m.Amount,
		Method:      domain.PaymentMethod(m.Method),
		Notes:       m.Notes,
		PaidAt:      m.PaidAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSalePaymentSlice converts a slice of model SalePayments.
func ToDomainSalePaymentSlice(ms []models.SalePayment) []domain.SalePayment {
	ds := make([]domain.SalePayment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSalePayment(m)
	}
	return ds
}

// ToModelReturn converts a domain Return to a model Return.
func ToModelReturn(d domain.Return) models.Return {
	return models.Return{
		ReturnID:      d.ReturnID,
		SaleID:        d.SaleID,
		PaymentID:     d.PaymentID,
		Reason:        d.Reason,
		RefundAmount:  d.RefundAmount,
		SubtotalShare: d.SubtotalShare,
		ProfitShare:   d.ProfitShare,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReturn converts a model Return to a domain Return.
func ToDomainReturn(m models.Return) domain.Return {
	return domain.Return{
		ReturnID:      m.ReturnID,
		SaleID:        m.SaleID,
		PaymentID:     m.PaymentID,
		Reason:        m.Reason,
		RefundAmount:  m.RefundAmount,
		SubtotalShare: m.SubtotalShare,
		ProfitShare:   m.ProfitShare,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelReturnItem converts a domain ReturnItem to a model ReturnItem.
func ToModelReturnItem(d domain.ReturnItem) models.ReturnItem {
	return models.ReturnItem{
		ReturnItemID: d.ReturnItemID,
		ReturnID:     d.ReturnID,
		ProductID:    d.ProductID,
		Quantity:     d.Quantity,
		UnitPrice:    d.UnitPrice,
	}
}

// ToDomainReturnItem converts a model ReturnItem to a domain ReturnItem.
func ToDomainReturnItem(m models.ReturnItem) domain.ReturnItem {
	return domain.ReturnItem{
		ReturnItemID: m.ReturnItemID,
		ReturnID:     m.ReturnID,
		ProductID:    m.ProductID,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
	}
}
