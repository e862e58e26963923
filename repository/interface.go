package repository

import (
	"context"
	"errors"

	"merch-intake/models"
)

// ErrNotFound is returned when a merch request id does not exist
var ErrNotFound = errors.New("request not found")

// MerchRequestRepositoryInterface defines the contract for merch request storage
type MerchRequestRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateMerchRequestRequest) (*models.MerchRequest, error)
	GetByID(ctx context.Context, id string) (*models.MerchRequest, error)
	// AddFiles appends files to the request's existing files and returns the updated request
	AddFiles(ctx context.Context, id string, files []models.UploadedFile) (*models.MerchRequest, error)
}
