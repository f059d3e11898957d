package models_test

import (
	"time"

	"github.com/budgetbook/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestPaymentMethodValid() {
	for _, method := range models.PaymentMethods {
		assert.True(suite.T(), method.Valid(), "%s should be valid", method)
	}

	assert.False(suite.T(), models.PaymentMethod("cheque").Valid())
	assert.False(suite.T(), models.PaymentMethod("").Valid())
}

// TestTransactionDateDefault verifies that a transaction without a date is
// saved with the current time.
func (suite *TestSuiteStandard) TestTransactionDateDefault() {
	transaction := suite.createTestTransaction(models.Transaction{
		Amount:        decimal.NewFromFloat(17.23),
		Description:   "Lunch",
		Category:      "Food",
		PaymentMethod: models.PaymentMethodCash,
	})

	assert.False(suite.T(), transaction.Date.IsZero(), "Date should have been defaulted")
	assert.WithinDuration(suite.T(), time.Now().In(time.UTC), transaction.Date, time.Minute)
}

// TestTransactionDateUTC verifies that dates are stored and read in UTC.
func (suite *TestSuiteStandard) TestTransactionDateUTC() {
	tz, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		suite.Assert().FailNow("Loading the timezone failed")
	}

	transaction := suite.createTestTransaction(models.Transaction{
		Date:          time.Date(2024, 1, 15, 14, 0, 0, 0, tz),
		Amount:        decimal.NewFromFloat(17.23),
		Description:   "Lunch",
		Category:      "Food",
		PaymentMethod: models.PaymentMethodCash,
	})

	assert.Equal(suite.T(), time.UTC, transaction.Date.Location())

	var read models.Transaction
	err = models.DB.First(&read, "id = ?", transaction.ID).Error
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), time.UTC, read.Date.Location())
}

// TestTransactionNotFoundError verifies that the user facing error is
// returned when a transaction does not exist.
func (suite *TestSuiteStandard) TestTransactionNotFoundError() {
	var transaction models.Transaction
	err := models.DB.First(&transaction, "id = ?", "d430d7c3-d14c-4712-9336-ee56965a6673").Error

	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Contains(suite.T(), err.Error(), "transaction")
}
