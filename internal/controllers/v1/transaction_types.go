package v1

import (
	"fmt"
	"time"

	"github.com/budgetbook/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type TransactionEditable struct {
	Date          time.Time            `json:"date" example:"2024-01-15T00:00:00Z"`    // Date of the transaction. Time is only used for sorting
	Amount        decimal.Decimal      `json:"amount" example:"14.03" minimum:"0.01"`  // The expense amount. Always positive
	Description   string               `json:"description" example:"Lunch"`            // A label for the expense
	Category      string               `json:"category" example:"Food"`                // The category the expense counts against
	PaymentMethod models.PaymentMethod `json:"paymentMethod" example:"cash" enums:"cash,credit,debit,transfer"` // How the expense was paid

	// PreviousAmount is only read on updates. The stored amount is
	// authoritative for spend tracking; a mismatch is logged.
	PreviousAmount *decimal.Decimal `json:"previousAmount,omitempty" example:"12.00"`
}

// model returns the database resource for the API representation of the editable fields
func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Date:          editable.Date,
		Amount:        editable.Amount,
		Description:   editable.Description,
		Category:      editable.Category,
		PaymentMethod: editable.PaymentMethod,
	}
}

// validate checks all required fields before anything reaches the database.
func (editable TransactionEditable) validate() error {
	if !editable.Amount.IsPositive() {
		return models.ErrTransactionAmountNotPositive
	}

	if editable.Description == "" {
		return models.ErrTransactionDescriptionRequired
	}

	if editable.Category == "" {
		return models.ErrTransactionCategoryRequired
	}

	if !editable.PaymentMethod.Valid() {
		return models.ErrPaymentMethodInvalid
	}

	return nil
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

// Transaction is the representation of a Transaction in API v1.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Links TransactionLinks `json:"links"`
}

// newTransaction returns the API v1 representation of the resource
func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Date:          model.Date,
			Amount:        model.Amount,
			Description:   model.Description,
			Category:      model.Category,
			PaymentMethod: model.PaymentMethod,
		},
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
	}
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the transaction category must be set"` // The error, if any occurred
	Data  *Transaction `json:"data"`                                                 // The Transaction data
}

type TransactionListResponse struct {
	Data  []Transaction `json:"data"`                                                 // List of transactions, newest date first
	Error *string       `json:"error" example:"the transaction category must be set"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	Category      string               `form:"category"`      // Filter by category, exact match
	PaymentMethod models.PaymentMethod `form:"paymentMethod"` // Filter by payment method
	FromDate      time.Time            `form:"fromDate"`      // Transactions at and after this date. Ignores exact time, matches on the day of the RFC3339 timestamp provided.
	UntilDate     time.Time            `form:"untilDate"`     // Transactions before and at this date. Ignores exact time, matches on the day of the RFC3339 timestamp provided.
}
