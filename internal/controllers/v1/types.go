package v1

import (
	bb_uuid "github.com/budgetbook/backend/internal/uuid"
)

type URIID struct {
	ID bb_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type URICategory struct {
	Category string `uri:"category" binding:"required"` // Category of the budget
}
