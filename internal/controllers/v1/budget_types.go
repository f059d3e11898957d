package v1

import (
	"fmt"

	"github.com/budgetbook/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BudgetEditable struct {
	Category string          `json:"category" example:"Food"`             // The category the budget applies to. One budget per category
	Limit    decimal.Decimal `json:"limit" example:"500" minimum:"0.01"`  // The spending ceiling for the period
	Period   models.BudgetPeriod `json:"period" example:"monthly" enums:"monthly,yearly" default:"monthly"` // Informational only, the running total is never reset automatically
	Notes    string          `json:"notes" example:"Groceries and eating out" default:""`                   // Free-text notes

	// ActualSpent overrides the tracked running total when set. This
	// bypasses spend tracking, the reconcile endpoint restores the total
	// from the ledger.
	ActualSpent *decimal.Decimal `json:"actualSpent,omitempty" example:"273.49"`
}

// model returns the database resource for the API representation of the editable fields
func (editable BudgetEditable) model() models.Budget {
	period := editable.Period
	if period == "" {
		period = models.PeriodMonthly
	}

	budget := models.Budget{
		Category: editable.Category,
		Limit:    editable.Limit,
		Period:   period,
		Notes:    editable.Notes,
	}

	if editable.ActualSpent != nil {
		budget.ActualSpent = *editable.ActualSpent
	}

	return budget
}

// validate checks all required fields before anything reaches the database.
func (editable BudgetEditable) validate() error {
	if editable.Category == "" {
		return models.ErrBudgetCategoryRequired
	}

	if !editable.Limit.IsPositive() {
		return models.ErrBudgetLimitNotPositive
	}

	if editable.Period != "" && !editable.Period.Valid() {
		return models.ErrBudgetPeriodInvalid
	}

	return nil
}

type BudgetLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/budgets/Food"`                           // The budget itself
	Reconcile    string `json:"reconcile" example:"https://example.com/api/v1/budgets/Food/reconcile"`            // Endpoint recomputing the running total from the ledger
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?category=Food"`     // The transactions counting against this budget
}

// Budget is the representation of a Budget in API v1.
type Budget struct {
	models.DefaultModel
	Category    string              `json:"category" example:"Food"`
	Limit       decimal.Decimal     `json:"limit" example:"500"`
	ActualSpent decimal.Decimal     `json:"actualSpent" example:"273.49"`
	Period      models.BudgetPeriod `json:"period" example:"monthly"`
	Notes       string              `json:"notes" example:"Groceries and eating out"`
	Links       BudgetLinks         `json:"links"`
}

// newBudget returns the API v1 representation of the resource
func newBudget(c *gin.Context, model models.Budget) Budget {
	url := c.GetString(string(models.DBContextURL))

	return Budget{
		DefaultModel: model.DefaultModel,
		Category:     model.Category,
		Limit:        model.Limit,
		ActualSpent:  model.ActualSpent,
		Period:       model.Period,
		Notes:        model.Notes,
		Links: BudgetLinks{
			Self:         fmt.Sprintf("%s/v1/budgets/%s", url, model.Category),
			Reconcile:    fmt.Sprintf("%s/v1/budgets/%s/reconcile", url, model.Category),
			Transactions: fmt.Sprintf("%s/v1/transactions?category=%s", url, model.Category),
		},
	}
}

type BudgetResponse struct {
	Error *string `json:"error" example:"the budget category must be set"` // The error, if any occurred
	Data  *Budget `json:"data"`                                            // The Budget data
}

type BudgetListResponse struct {
	Data  []Budget `json:"data"`                                            // List of budgets, sorted by category
	Error *string  `json:"error" example:"the budget category must be set"` // The error, if any occurred
}

// BudgetUpdate are the fields that can be changed with a partial update.
// The running total is deliberately not among them.
type BudgetUpdate struct {
	Limit  *decimal.Decimal     `json:"limit,omitempty" example:"650"`     // New spending ceiling
	Period *models.BudgetPeriod `json:"period,omitempty" example:"yearly"` // New period
}

type BudgetQueryFilter struct {
	Category string              `form:"category"` // Filter by category. Supports glob patterns like Food*
	Period   models.BudgetPeriod `form:"period"`   // Filter by period
}
