package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sfsergim/CivicReport/internal/logging"
	"github.com/sfsergim/CivicReport/internal/models"
	"github.com/sfsergim/CivicReport/internal/objectstore"
	"github.com/sfsergim/CivicReport/internal/utils"
	"go.uber.org/zap"
)

// DefaultUploadContentType is used when the client sends none
const DefaultUploadContentType = "image/jpeg"

var uploadExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
}

// UploadService issues pre-signed photo upload URLs
type UploadService struct {
	presigner objectstore.Presigner
	ttl       time.Duration
	logger    *logging.SafeLogger
}

func NewUploadService(presigner objectstore.Presigner, ttl time.Duration, logger *logging.SafeLogger) *UploadService {
	return &UploadService{
		presigner: presigner,
		ttl:       ttl,
		logger:    logger.Named("upload"),
	}
}

// RequestUpload returns a PUT URL for a new object owned by userID
func (s *UploadService) RequestUpload(ctx context.Context, userID, contentType string) (*models.UploadURLResponse, error) {
	if contentType == "" {
		contentType = DefaultUploadContentType
	}
	ext, ok := uploadExtensions[contentType]
	if !ok {
		return nil, models.InvalidInput(models.CodeInvalidContentType)
	}

	fileKey := fmt.Sprintf("%s/%s.%s", userID, utils.NewCompactID(), ext)

	uploadURL, err := s.presigner.PresignUpload(ctx, fileKey, contentType, s.ttl)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("issued upload url", zap.String("user_id", userID), zap.String("file_key", fileKey))
	return &models.UploadURLResponse{UploadURL: uploadURL, FileKey: fileKey}, nil
}
