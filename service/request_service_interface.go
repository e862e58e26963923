package service

import (
	"context"

	"merch-intake/models"
)

// RequestServiceInterface defines the contract for merch request operations
type RequestServiceInterface interface {
	CreateRequest(ctx context.Context, req *models.CreateMerchRequestRequest) (*models.MerchRequest, error)
	GetRequest(ctx context.Context, id string) (*models.MerchRequest, error)
	// AddFiles appends files to an existing request. Files already attached are kept.
	AddFiles(ctx context.Context, id string, files []models.UploadedFile) (*models.MerchRequest, error)
}
