package v1

import (
	"net/http"

	"github.com/budgetbook/backend/internal/httputil"
	"github.com/budgetbook/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// defaultCategories are the categories offered by the transaction form.
// Transactions are not restricted to them, any non-empty category is valid.
var defaultCategories = []string{
	"Food",
	"Housing",
	"Transportation",
	"Entertainment",
	"Utilities",
	"Shopping",
	"Healthcare",
	"Education",
	"Other",
}

// PaymentMethodOption is a payment method with its display title.
type PaymentMethodOption struct {
	Title string               `json:"title" example:"Credit Card"`
	Value models.PaymentMethod `json:"value" example:"credit"`
}

var paymentMethodOptions = []PaymentMethodOption{
	{Title: "Cash", Value: models.PaymentMethodCash},
	{Title: "Credit Card", Value: models.PaymentMethodCredit},
	{Title: "Debit Card", Value: models.PaymentMethodDebit},
	{Title: "Bank Transfer", Value: models.PaymentMethodTransfer},
}

// RegisterReferenceRoutes registers the routes for the fixed reference data
// with the RouterGroup that is passed.
func RegisterReferenceRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/categories", OptionsReference)
	r.GET("/categories", GetCategories)
	r.OPTIONS("/payment-methods", OptionsReference)
	r.GET("/payment-methods", GetPaymentMethods)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reference
// @Success		204
// @Router			/v1/categories [options]
func OptionsReference(c *gin.Context) {
	httputil.OptionsGet(c)
}

type CategoriesResponse struct {
	Data []string `json:"data"` // The default category list
}

type PaymentMethodsResponse struct {
	Data []PaymentMethodOption `json:"data"` // All payment methods with display titles
}

// @Summary		List categories
// @Description	Returns the default category list for transaction and budget forms
// @Tags			Reference
// @Produce		json
// @Success		200	{object}	CategoriesResponse
// @Router			/v1/categories [get]
func GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, CategoriesResponse{Data: defaultCategories})
}

// @Summary		List payment methods
// @Description	Returns all payment methods with their display titles
// @Tags			Reference
// @Produce		json
// @Success		200	{object}	PaymentMethodsResponse
// @Router			/v1/payment-methods [get]
func GetPaymentMethods(c *gin.Context) {
	c.JSON(http.StatusOK, PaymentMethodsResponse{Data: paymentMethodOptions})
}
