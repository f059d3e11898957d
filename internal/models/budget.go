package models

import (
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// BudgetPeriod is the period a budget limit applies to.
//
// It is informational only, the running total is never reset automatically.
type BudgetPeriod string

const (
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// BudgetPeriods are all valid budget periods.
var BudgetPeriods = []BudgetPeriod{PeriodMonthly, PeriodYearly}

// Valid returns whether the period is one of the known values.
func (p BudgetPeriod) Valid() bool {
	return slices.Contains(BudgetPeriods, p)
}

// Budget represents a per-category spending ceiling.
//
// ActualSpent is a derived running total: at any quiescent point it equals
// the sum of the amounts of all transactions with the same category. It is
// maintained incrementally by AddSpent and can be repaired from the ledger
// with ReconcileSpent.
type Budget struct {
	DefaultModel
	Category    string          `json:"category" gorm:"uniqueIndex" example:"Food"`
	Limit       decimal.Decimal `json:"limit" gorm:"type:DECIMAL(20,8)" example:"500"`
	ActualSpent decimal.Decimal `json:"actualSpent" gorm:"type:DECIMAL(20,8)" example:"273.49"`
	Period      BudgetPeriod    `json:"period" example:"monthly" default:"monthly"`
	Notes       string          `json:"notes,omitempty" example:"Groceries and eating out"`
}

// AddSpent adjusts the running total of the budget for the category by delta.
//
// The adjustment is a single UPDATE with an in-database addition, not a
// read-modify-write in application code, so concurrent adjustments for the
// same category converge.
//
// A category without a budget is a valid state, so a missing budget is
// logged and not an error.
func AddSpent(category string, delta decimal.Decimal) error {
	res := DB.Model(&Budget{}).
		Where("category = ?", category).
		Update("actual_spent", gorm.Expr("actual_spent + ?", delta))
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		log.Debug().Str("category", category).Msg("no budget for category, skipping spend tracking")
	}

	return nil
}

// ReconcileSpent recomputes the running total of the budget for the category
// from the transaction ledger, correcting any drift between the two.
//
// The recomputation runs as a single UPDATE with a SUM subquery so that no
// concurrent transaction write can get lost between reading the sum and
// writing the total.
func ReconcileSpent(category string) (Budget, error) {
	var budget Budget

	err := DB.Where("category = ?", category).First(&budget).Error
	if err != nil {
		return Budget{}, err
	}

	err = DB.Model(&budget).
		Update("actual_spent", gorm.Expr(
			"(SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE category = ? AND deleted_at IS NULL)",
			category,
		)).Error
	if err != nil {
		return Budget{}, err
	}

	err = DB.First(&budget, "id = ?", budget.ID).Error
	return budget, err
}
