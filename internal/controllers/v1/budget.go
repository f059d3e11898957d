package v1

import (
	"errors"
	"net/http"

	"github.com/budgetbook/backend/internal/httputil"
	"github.com/budgetbook/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgetList)
		r.GET("", GetBudgets)
		r.POST("", UpsertBudget)
	}

	// Budget by category
	{
		r.OPTIONS("/:category", OptionsBudgetDetail)
		r.GET("/:category", GetBudget)
		r.PATCH("/:category", UpdateBudget)
		r.DELETE("/:category", DeleteBudget)
		r.OPTIONS("/:category/reconcile", OptionsBudgetReconcile)
		r.POST("/:category/reconcile", ReconcileBudget)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets [options]
func OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			category	path	string	true	"Category of the budget"
// @Router			/v1/budgets/{category} [options]
func OptionsBudgetDetail(c *gin.Context) {
	var uri URICategory
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Budget{}, "category = ?", uri.Category).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			category	path	string	true	"Category of the budget"
// @Router			/v1/budgets/{category}/reconcile [options]
func OptionsBudgetReconcile(c *gin.Context) {
	var uri URICategory
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Budget{}, "category = ?", uri.Category).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsPost(c)
}

// @Summary		List budgets
// @Description	Returns the list of budgets, sorted by category
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetListResponse
// @Failure		400	{object}	BudgetListResponse
// @Failure		500	{object}	BudgetListResponse
// @Router			/v1/budgets [get]
// @Param			category	query	string	false	"Filter by category. Supports glob patterns like Food*"
// @Param			period		query	string	false	"Filter by period"
func GetBudgets(c *gin.Context) {
	var filter BudgetQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	if filter.Period != "" && !filter.Period.Valid() {
		s := models.ErrBudgetPeriodInvalid.Error()
		c.JSON(http.StatusBadRequest, BudgetListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.Order("budgets.category ASC")
	if filter.Period != "" {
		q = q.Where("budgets.period = ?", filter.Period)
	}

	var budgets []models.Budget
	err := q.Find(&budgets).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Budget, 0)
	for _, budget := range budgets {
		// The category filter matches glob patterns, which sqlite LIKE
		// cannot express, so it is applied here
		if filter.Category != "" && !glob.Glob(filter.Category, budget.Category) {
			continue
		}

		data = append(data, newBudget(c, budget))
	}

	c.JSON(http.StatusOK, BudgetListResponse{
		Data: data,
	})
}

// @Summary		Get budget
// @Description	Returns the budget for a category
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Failure		404	{object}	BudgetResponse
// @Failure		500	{object}	BudgetResponse
// @Param			category	path	string	true	"Category of the budget"
// @Router			/v1/budgets/{category} [get]
func GetBudget(c *gin.Context) {
	var uri URICategory
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	var budget models.Budget
	err = models.DB.First(&budget, "category = ?", uri.Category).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	data := newBudget(c, budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// @Summary		Upsert budget
// @Description	Creates the budget for the category or replaces it if one exists. Submitting an explicit actualSpent value overwrites the tracked running total.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Success		201		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budgets [post]
func UpsertBudget(c *gin.Context) {
	var editable BudgetEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	err = editable.validate()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	var budget models.Budget
	err = models.DB.First(&budget, "category = ?", editable.Category).Error
	if err != nil && !errors.Is(err, models.ErrResourceNotFound) {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	// No budget for the category yet, create one
	if errors.Is(err, models.ErrResourceNotFound) {
		budget = editable.model()

		err = models.DB.Create(&budget).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), BudgetResponse{
				Error: &e,
			})
			return
		}

		data := newBudget(c, budget)
		c.JSON(http.StatusCreated, BudgetResponse{Data: &data})
		return
	}

	// Replace the existing budget. The running total is only touched when
	// the request sets it explicitly.
	replacement := editable.model()
	columns := []string{"Limit", "Period", "Notes"}
	if editable.ActualSpent != nil {
		columns = append(columns, "ActualSpent")
	}

	err = models.DB.Model(&budget).Select(columns).Updates(replacement).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	data := newBudget(c, budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// @Summary		Update budget
// @Description	Updates the limit and/or period of an existing budget. The running total cannot be changed here.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		404		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			category	path	string			true	"Category of the budget"
// @Param			budget		body	BudgetUpdate	true	"Budget"
// @Router			/v1/budgets/{category} [patch]
func UpdateBudget(c *gin.Context) {
	var uri URICategory
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	var budget models.Budget
	err = models.DB.First(&budget, "category = ?", uri.Category).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	var update BudgetUpdate
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	if update.Limit != nil && !update.Limit.IsPositive() {
		e := models.ErrBudgetLimitNotPositive.Error()
		c.JSON(http.StatusBadRequest, BudgetResponse{
			Error: &e,
		})
		return
	}

	if update.Period != nil && !update.Period.Valid() {
		e := models.ErrBudgetPeriodInvalid.Error()
		c.JSON(http.StatusBadRequest, BudgetResponse{
			Error: &e,
		})
		return
	}

	fields := map[string]any{}
	if update.Limit != nil {
		fields["limit"] = *update.Limit
	}
	if update.Period != nil {
		fields["period"] = *update.Period
	}

	if len(fields) > 0 {
		err = models.DB.Model(&budget).Updates(fields).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), BudgetResponse{
				Error: &e,
			})
			return
		}
	}

	err = models.DB.First(&budget, "id = ?", budget.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	data := newBudget(c, budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// @Summary		Delete budget
// @Description	Deletes the budget for a category. Transactions referencing the category are unaffected.
// @Tags			Budgets
// @Success		204
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			category	path	string	true	"Category of the budget"
// @Router			/v1/budgets/{category} [delete]
func DeleteBudget(c *gin.Context) {
	var uri URICategory
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var budget models.Budget
	err = models.DB.First(&budget, "category = ?", uri.Category).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	// The delete is permanent so that the category is free for a later
	// upsert, the category column has a unique index
	err = models.DB.Unscoped().Delete(&budget).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Reconcile budget
// @Description	Recomputes the budget's running total from the transaction ledger, correcting any drift from partial failures or explicit overrides.
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Failure		404	{object}	BudgetResponse
// @Failure		500	{object}	BudgetResponse
// @Param			category	path	string	true	"Category of the budget"
// @Router			/v1/budgets/{category}/reconcile [post]
func ReconcileBudget(c *gin.Context) {
	var uri URICategory
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	budget, err := models.ReconcileSpent(uri.Category)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	data := newBudget(c, budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}
