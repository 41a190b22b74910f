package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/vighnaharta/internal/domain"
)

// NewCircle creates a new active circle with a generated ID
func NewCircle(name, code string, sortOrder int) *domain.Circle {
	return &domain.Circle{
		ID:        uuid.New().String(),
		Name:      name,
		Code:      code,
		IsActive:  true,
		SortOrder: sortOrder,
		CreatedAt: time.Now().UTC(),
	}
}
