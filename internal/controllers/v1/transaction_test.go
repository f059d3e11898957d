package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/budgetbook/backend/internal/controllers/v1"
	"github.com/budgetbook/backend/internal/models"
	"github.com/budgetbook/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// testTransaction returns a valid TransactionEditable for the category with
// sensible defaults.
func testTransaction(category string, amount float64) v1.TransactionEditable {
	return v1.TransactionEditable{
		Date:          time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.NewFromFloat(amount),
		Description:   "Lunch",
		Category:      category,
		PaymentMethod: models.PaymentMethodCash,
	}
}

func (suite *TestSuiteStandard) TestTransactionOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, POST", r.Header().Get("allow"))

	transaction := suite.createTestTransaction(testTransaction("Food", 17.23))
	r = test.Request(suite.T(), http.MethodOptions, transaction.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestTransactionOptionsNotFound() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/transactions/5b95e1a9-522d-4a36-9074-32f7c15846a9", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransactionCreate() {
	transaction := suite.createTestTransaction(testTransaction("Food", 17.23))

	suite.Assert().Equal("Lunch", transaction.Description)
	suite.Assert().Equal("Food", transaction.Category)
	suite.Assert().Equal(models.PaymentMethodCash, transaction.PaymentMethod)
	suite.Assert().True(transaction.Amount.Equal(decimal.NewFromFloat(17.23)), "Amount is %s, should be 17.23", transaction.Amount)
	suite.Assert().NotEmpty(transaction.ID)
	suite.Assert().Equal(fmt.Sprintf("http://example.com/v1/transactions/%s", transaction.ID), transaction.Links.Self)
}

// TestTransactionCreateUpdatesBudget verifies that creating a transaction
// increases the running total of the matching budget.
func (suite *TestSuiteStandard) TestTransactionCreateUpdatesBudget() {
	suite.createTestBudget(v1.BudgetEditable{Category: "Food", Limit: decimal.NewFromFloat(500)})

	suite.createTestTransaction(testTransaction("Food", 17.23))
	suite.createTestTransaction(testTransaction("Food", 10))

	budget := suite.getTestBudget("Food")
	suite.Assert().True(budget.ActualSpent.Equal(decimal.NewFromFloat(27.23)), "ActualSpent is %s, should be 27.23", budget.ActualSpent)
}

// TestTransactionCreateWithoutBudget verifies that a transaction for a
// category without a budget is accepted.
func (suite *TestSuiteStandard) TestTransactionCreateWithoutBudget() {
	transaction := suite.createTestTransaction(testTransaction("Windfall", 100))
	suite.Assert().Equal("Windfall", transaction.Category)
}

func (suite *TestSuiteStandard) TestTransactionCreateInvalid() {
	tests := []struct {
		name        string
		transaction v1.TransactionEditable
	}{
		{"Amount zero", v1.TransactionEditable{Description: "Lunch", Category: "Food", PaymentMethod: models.PaymentMethodCash}},
		{"Amount negative", v1.TransactionEditable{Amount: decimal.NewFromFloat(-1), Description: "Lunch", Category: "Food", PaymentMethod: models.PaymentMethodCash}},
		{"No description", v1.TransactionEditable{Amount: decimal.NewFromFloat(1), Category: "Food", PaymentMethod: models.PaymentMethodCash}},
		{"No category", v1.TransactionEditable{Amount: decimal.NewFromFloat(1), Description: "Lunch", PaymentMethod: models.PaymentMethodCash}},
		{"Invalid payment method", v1.TransactionEditable{Amount: decimal.NewFromFloat(1), Description: "Lunch", Category: "Food", PaymentMethod: "cheque"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", tt.transaction)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionCreateBrokenJSON() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", `{ "amount": 2" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestTransactionGetSingle() {
	transaction := suite.createTestTransaction(testTransaction("Food", 17.23))

	r := test.Request(suite.T(), http.MethodGet, transaction.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(transaction.ID, response.Data.ID)
}

func (suite *TestSuiteStandard) TestTransactionGetNotFound() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions/5b95e1a9-522d-4a36-9074-32f7c15846a9", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransactionGetInvalidUUID() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions/not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestTransactionSorting verifies that the transaction list is sorted by
// date, newest first.
func (suite *TestSuiteStandard) TestTransactionSorting() {
	older := testTransaction("Food", 10)
	older.Date = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.createTestTransaction(older)

	newer := testTransaction("Food", 20)
	newer.Date = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	suite.createTestTransaction(newer)

	middle := testTransaction("Food", 30)
	middle.Date = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	suite.createTestTransaction(middle)

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 3)
	suite.Assert().True(response.Data[0].Amount.Equal(decimal.NewFromFloat(20)))
	suite.Assert().True(response.Data[1].Amount.Equal(decimal.NewFromFloat(30)))
	suite.Assert().True(response.Data[2].Amount.Equal(decimal.NewFromFloat(10)))
}

func (suite *TestSuiteStandard) TestTransactionGetFiltered() {
	food := testTransaction("Food", 10)
	food.PaymentMethod = models.PaymentMethodCash
	suite.createTestTransaction(food)

	rent := testTransaction("Rent", 1000)
	rent.PaymentMethod = models.PaymentMethodTransfer
	rent.Date = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	suite.createTestTransaction(rent)

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Category match", "category=Food", 1},
		{"Category no match", "category=Vacation", 0},
		{"Payment method", "paymentMethod=transfer", 1},
		{"From date", "fromDate=2024-03-01T00:00:00Z", 1},
		{"Until date", "untilDate=2024-03-01T00:00:00Z", 1},
		{"Date range all", "fromDate=2024-01-01T00:00:00Z&untilDate=2024-12-31T00:00:00Z", 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/transactions?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionGetFilterInvalidPaymentMethod() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions?paymentMethod=cheque", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestTransactionUpdateAmount verifies that editing the amount adjusts the
// budget running total by the difference.
func (suite *TestSuiteStandard) TestTransactionUpdateAmount() {
	suite.createTestBudget(v1.BudgetEditable{Category: "Food", Limit: decimal.NewFromFloat(500)})
	transaction := suite.createTestTransaction(testTransaction("Food", 17.23))

	update := testTransaction("Food", 20)
	r := test.Request(suite.T(), http.MethodPatch, transaction.Links.Self, update)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	budget := suite.getTestBudget("Food")
	suite.Assert().True(budget.ActualSpent.Equal(decimal.NewFromFloat(20)), "ActualSpent is %s, should be 20", budget.ActualSpent)
}

// TestTransactionUpdateCategory verifies that moving a transaction between
// categories debits the old budget and credits the new one.
func (suite *TestSuiteStandard) TestTransactionUpdateCategory() {
	suite.createTestBudget(v1.BudgetEditable{Category: "Food", Limit: decimal.NewFromFloat(500)})
	suite.createTestBudget(v1.BudgetEditable{Category: "Entertainment", Limit: decimal.NewFromFloat(100)})
	transaction := suite.createTestTransaction(testTransaction("Food", 17.23))

	update := testTransaction("Entertainment", 25)
	r := test.Request(suite.T(), http.MethodPatch, transaction.Links.Self, update)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	food := suite.getTestBudget("Food")
	suite.Assert().True(food.ActualSpent.IsZero(), "Food ActualSpent is %s, should be 0", food.ActualSpent)

	entertainment := suite.getTestBudget("Entertainment")
	suite.Assert().True(entertainment.ActualSpent.Equal(decimal.NewFromFloat(25)), "Entertainment ActualSpent is %s, should be 25", entertainment.ActualSpent)
}

// TestTransactionUpdateStalePreviousAmount verifies that a wrong
// previousAmount from a stale client does not corrupt the running total.
func (suite *TestSuiteStandard) TestTransactionUpdateStalePreviousAmount() {
	suite.createTestBudget(v1.BudgetEditable{Category: "Food", Limit: decimal.NewFromFloat(500)})
	transaction := suite.createTestTransaction(testTransaction("Food", 17.23))

	stale := decimal.NewFromFloat(5)
	update := testTransaction("Food", 20)
	update.PreviousAmount = &stale

	r := test.Request(suite.T(), http.MethodPatch, transaction.Links.Self, update)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	budget := suite.getTestBudget("Food")
	suite.Assert().True(budget.ActualSpent.Equal(decimal.NewFromFloat(20)), "ActualSpent is %s, should be 20", budget.ActualSpent)
}

func (suite *TestSuiteStandard) TestTransactionUpdateInvalid() {
	transaction := suite.createTestTransaction(testTransaction("Food", 17.23))

	update := testTransaction("Food", 17.23)
	update.Description = ""

	r := test.Request(suite.T(), http.MethodPatch, transaction.Links.Self, update)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestTransactionUpdateNotFound() {
	r := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/transactions/5b95e1a9-522d-4a36-9074-32f7c15846a9", testTransaction("Food", 1))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestTransactionDelete verifies that deleting a transaction decreases the
// budget running total by the transaction amount.
func (suite *TestSuiteStandard) TestTransactionDelete() {
	suite.createTestBudget(v1.BudgetEditable{Category: "Food", Limit: decimal.NewFromFloat(500)})
	transaction := suite.createTestTransaction(testTransaction("Food", 17.23))
	suite.createTestTransaction(testTransaction("Food", 10))

	r := test.Request(suite.T(), http.MethodDelete, transaction.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, transaction.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	budget := suite.getTestBudget("Food")
	suite.Assert().True(budget.ActualSpent.Equal(decimal.NewFromFloat(10)), "ActualSpent is %s, should be 10", budget.ActualSpent)
}

func (suite *TestSuiteStandard) TestTransactionDeleteNotFound() {
	r := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1/transactions/5b95e1a9-522d-4a36-9074-32f7c15846a9", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransactionDBClosed() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(models.ErrGeneral.Error(), *response.Error)
}

// TestTransactionLifecycleConvergence runs a sequence of creates, edits and
// deletes and verifies that the running total always matches the sum of the
// remaining transactions.
func (suite *TestSuiteStandard) TestTransactionLifecycleConvergence() {
	suite.createTestBudget(v1.BudgetEditable{Category: "Food", Limit: decimal.NewFromFloat(500)})
	suite.createTestBudget(v1.BudgetEditable{Category: "Shopping", Limit: decimal.NewFromFloat(200)})

	first := suite.createTestTransaction(testTransaction("Food", 12.50))
	second := suite.createTestTransaction(testTransaction("Food", 30))
	third := suite.createTestTransaction(testTransaction("Shopping", 49.99))

	// Move the second transaction to Shopping with a new amount
	update := testTransaction("Shopping", 25)
	r := test.Request(suite.T(), http.MethodPatch, second.Links.Self, update)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	// Delete the third transaction
	r = test.Request(suite.T(), http.MethodDelete, third.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	// Change the amount of the first transaction
	update = testTransaction("Food", 15)
	r = test.Request(suite.T(), http.MethodPatch, first.Links.Self, update)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	food := suite.getTestBudget("Food")
	suite.Assert().True(food.ActualSpent.Equal(decimal.NewFromFloat(15)), "Food ActualSpent is %s, should be 15", food.ActualSpent)

	shopping := suite.getTestBudget("Shopping")
	suite.Assert().True(shopping.ActualSpent.Equal(decimal.NewFromFloat(25)), "Shopping ActualSpent is %s, should be 25", shopping.ActualSpent)

	// The reconcile endpoint must agree with the incrementally tracked
	// totals
	r = test.Request(suite.T(), http.MethodPost, food.Links.Reconcile, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().True(response.Data.ActualSpent.Equal(decimal.NewFromFloat(15)), "Reconciled ActualSpent is %s, should be 15", response.Data.ActualSpent)
}
