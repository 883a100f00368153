package mapping

import (
	"github.com/SscSPs/property_billing_app/internal/core/domain"
	"github.com/SscSPs/property_billing_app/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:      d.PaymentID,
		OccupantID:     d.OccupantID,
		Amount:         d.Amount,
		PaymentDate:    d.PaymentDate,
		PaymentType:    string(d.PaymentType),
		ForMonth:       d.ForMonth,
		Status:         string(d.Status),
		Method:         string(d.Method),
		TransactionRef: d.TransactionRef,
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:      m.PaymentID,
		OccupantID:     m.OccupantID,
		Amount:         m.Amount,
		PaymentDate:    m.PaymentDate,
		PaymentType:    domain.PaymentType(m.PaymentType),
		ForMonth:       m.ForMonth,
		Status:         domain.PaymentRecordStatus(m.Status),
		Method:         domain.PaymentMethod(m.Method),
		TransactionRef: m.TransactionRef,
		Notes:          m.Notes,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPaymentEdit converts a domain PaymentEdit to a model PaymentEdit
func ToModelPaymentEdit(d domain.PaymentEdit) models.PaymentEdit {
	return models.PaymentEdit{
		EditID:         d.EditID,
		PaymentID:      d.PaymentID,
		Reason:         d.Reason,
		EditedBy:       d.EditedBy,
		EditedAt:       d.EditedAt,
		PreviousAmount: d.PreviousAmount,
		NewAmount:      d.NewAmount,
		PreviousDate:   d.PreviousDate,
		NewDate:        d.NewDate,
		PreviousNotes:  d.PreviousNotes,
		NewNotes:       d.NewNotes,
		PreviousStatus: string(d.PreviousStatus),
		NewStatus:      string(d.NewStatus),
	}
}

// ToDomainPaymentEdit converts a model PaymentEdit to a domain PaymentEdit
func ToDomainPaymentEdit(m models.PaymentEdit) domain.PaymentEdit {
	return domain.PaymentEdit{
		EditID:         m.EditID,
		PaymentID:      m.PaymentID,
		Reason:         m.Reason,
		EditedBy:       m.EditedBy,
		EditedAt:       m.EditedAt,
		PreviousAmount: m.PreviousAmount,
		NewAmount:      m.NewAmount,
		PreviousDate:   m.PreviousDate,
		NewDate:        m.NewDate,
		PreviousNotes:  m.PreviousNotes,
		NewNotes:       m.NewNotes,
		PreviousStatus: domain.PaymentRecordStatus(m.PreviousStatus),
		NewStatus:      domain.PaymentRecordStatus(m.NewStatus),
	}
}
