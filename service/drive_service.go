package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// ArtworkArchiver stores the original artwork of an uploaded file
type ArtworkArchiver interface {
	ArchiveArtwork(ctx context.Context, requestID, fileName, mimeType string, data []byte) (string, error)
}

// DriveService uploads artwork into a Google Drive folder
type DriveService struct {
	client   *drive.Service
	folderID string
}

var _ ArtworkArchiver = (*DriveService)(nil)

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath, folderID string) (*DriveService, error) {
	client, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &DriveService{client: client, folderID: folderID}, nil
}

// ArchiveArtwork uploads data as <requestID>_<fileName> and returns the Drive file id
func (ds *DriveService) ArchiveArtwork(ctx context.Context, requestID, fileName, mimeType string, data []byte) (string, error) {
	file := &drive.File{
		Name:     fmt.Sprintf("%s_%s", requestID, fileName),
		MimeType: mimeType,
		Parents:  []string{ds.folderID},
	}

	created, err := ds.client.Files.Create(file).
		Media(bytes.NewReader(data)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", file.Name, err)
	}

	log.Info().Str("driveFileId", created.Id).Str("name", file.Name).Msg("✓ Artwork archived to Drive")
	return created.Id, nil
}
