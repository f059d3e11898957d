package v1

import (
	"net/http"

	"github.com/budgetbook/backend/internal/aggregation"
	"github.com/budgetbook/backend/internal/httputil"
	"github.com/budgetbook/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterAnalyticsRoutes registers the routes for analytics with
// the RouterGroup that is passed.
func RegisterAnalyticsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/monthly", OptionsAnalytics)
	r.GET("/monthly", GetMonthlyTotals)
	r.OPTIONS("/categories", OptionsAnalytics)
	r.GET("/categories", GetCategoryTotals)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Analytics
// @Success		204
// @Router			/v1/analytics/monthly [options]
func OptionsAnalytics(c *gin.Context) {
	httputil.OptionsGet(c)
}

type MonthlyTotalsResponse struct {
	Data  []decimal.Decimal `json:"data"`  // Twelve totals, indexed January to December
	Error *string           `json:"error"` // The error, if any occurred
}

type CategoryTotalsResponse struct {
	Data  []aggregation.CategoryTotal `json:"data"`  // One {name, value} pair per category. Order is display-only
	Error *string                     `json:"error"` // The error, if any occurred
}

// @Summary		Monthly totals
// @Description	Returns the sum of all transaction amounts per calendar month, indexed January to December. Transactions from different years in the same month are summed together.
// @Tags			Analytics
// @Produce		json
// @Success		200	{object}	MonthlyTotalsResponse
// @Failure		500	{object}	MonthlyTotalsResponse
// @Router			/v1/analytics/monthly [get]
func GetMonthlyTotals(c *gin.Context) {
	var transactions []models.Transaction
	err := models.DB.Find(&transactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthlyTotalsResponse{
			Error: &e,
		})
		return
	}

	totals := aggregation.MonthlyTotals(transactions)
	c.JSON(http.StatusOK, MonthlyTotalsResponse{
		Data: totals[:],
	})
}

// @Summary		Category totals
// @Description	Returns the sum of all transaction amounts per category as {name, value} pairs for charting.
// @Tags			Analytics
// @Produce		json
// @Success		200	{object}	CategoryTotalsResponse
// @Failure		500	{object}	CategoryTotalsResponse
// @Router			/v1/analytics/categories [get]
func GetCategoryTotals(c *gin.Context) {
	var transactions []models.Transaction
	err := models.DB.Find(&transactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryTotalsResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, CategoryTotalsResponse{
		Data: aggregation.CategoryTotals(transactions),
	})
}
