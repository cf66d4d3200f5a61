package models

import "time"

// Transaction records one confirmed payment. Creation also initializes the
// buyer's course progress and appends an enrollment; the three writes are
// sequential with no compensation, see the transactions controller.
type Transaction struct {
	TransactionID   string    `gorm:"primaryKey" json:"transactionId"`
	UserID          string    `gorm:"index" json:"userId"`
	CourseID        string    `gorm:"index" json:"courseId"`
	PaymentProvider string    `json:"paymentProvider"`
	Amount          int       `json:"amount"` // minor currency units
	DateTime        time.Time `json:"dateTime"`
}
