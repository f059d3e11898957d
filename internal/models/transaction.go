package models

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// PaymentMethod is the way a transaction was paid.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCredit   PaymentMethod = "credit"
	PaymentMethodDebit    PaymentMethod = "debit"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

// PaymentMethods are all valid payment methods.
var PaymentMethods = []PaymentMethod{PaymentMethodCash, PaymentMethodCredit, PaymentMethodDebit, PaymentMethodTransfer}

// Valid returns whether the payment method is one of the known values.
func (p PaymentMethod) Valid() bool {
	return slices.Contains(PaymentMethods, p)
}

// Transaction represents a single recorded expense.
//
// The category is a soft reference to a Budget: spend tracking only applies
// when a budget with the same category exists, and neither side enforces
// the relation.
type Transaction struct {
	DefaultModel
	Date          time.Time       `json:"date" example:"2024-01-15T00:00:00Z"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"14.03"`
	Description   string          `json:"description" example:"Lunch"`
	Category      string          `json:"category" example:"Food"`
	PaymentMethod PaymentMethod   `json:"paymentMethod" example:"cash"`
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	_ = t.DefaultModel.AfterFind(tx)
	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave sets the timezone for the Date to UTC.
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}
