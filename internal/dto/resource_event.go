package dto

import "github.com/bilgisen/bookshall-sub000/internal/core/domain"

// ResourceEventRequest is sent by the application when a billable resource is created or deleted.
type ResourceEventRequest struct {
	Event        domain.ResourceEventKind `json:"event" binding:"required,oneof=created deleted" example:"created"`
	ResourceType domain.ResourceType      `json:"resourceType" binding:"required,oneof=book chapter ebook" example:"book"`
	ResourceID   string                   `json:"resourceId" binding:"required"`
	UserID       string                   `json:"userId" binding:"required"`
	Metadata     domain.Metadata          `json:"metadata" binding:"omitempty,flatmetadata" swaggertype:"object"`
}
