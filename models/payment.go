package models

import "time"

type Payment struct {
	ID            uint       `gorm:"primaryKey"             json:"id"`
	StudentID     string     `gorm:"size:20;index;not null" json:"student_id"`
	Amount        float64    `gorm:"not null"               json:"amount"`
	Method        string     `gorm:"size:20;not null"       json:"method"`
	TransactionID string     `gorm:"size:60"                json:"transaction_id,omitempty"`
	Screenshot    string     `gorm:"size:255"               json:"screenshot,omitempty"` // stored file path
	Status        string     `gorm:"size:20;not null;index" json:"status"`
	ApprovedBy    string     `gorm:"size:20"                json:"approved_by,omitempty"` // admin teacher_id
	PaidAt        time.Time  `gorm:"autoCreateTime"         json:"paid_at"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

const (
	PaymentPending  = "pending"
	PaymentApproved = "approved"
	PaymentRejected = "rejected"
)

var paymentMethods = []string{"CBE", "Telebirr", "Awash", "Other"}

func ValidPaymentMethod(m string) bool {
	for _, v := range paymentMethods {
		if v == m {
			return true
		}
	}
	return false
}

// CanTransition reports whether a payment may move from its current
// status to the target one. pending → approved|rejected only; approved
// and rejected are terminal.
func (p *Payment) CanTransition(to string) bool {
	if p.Status != PaymentPending {
		return false
	}
	return to == PaymentApproved || to == PaymentRejected
}
