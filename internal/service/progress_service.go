package service

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/repository"
	"alcyxob/gym-app/internal/storage"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrProgressNotFound  = errors.New("progress record not found")
	ErrInvalidObjectKey  = errors.New("invalid photo object key")
	ErrUploadURLFailure  = errors.New("failed to generate upload URL")
	ErrDownloadURLFailed = errors.New("failed to generate download URL")
)

// PhotoUploadTicket pairs a presigned PUT URL with the object key the client
// should store on the progress record after uploading.
type PhotoUploadTicket struct {
	ObjectKey string
	UploadURL string
	ExpiresIn time.Duration
}

type ProgressService interface {
	Create(ctx context.Context, progress *domain.Progress) (*domain.Progress, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Progress, error)
	List(ctx context.Context, filter repository.ProgressFilter) ([]domain.Progress, error)
	Update(ctx context.Context, progress *domain.Progress) (*domain.Progress, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// PhotoUploadURL issues a presigned URL for uploading a progress photo
	// directly to object storage.
	PhotoUploadURL(ctx context.Context, memberID primitive.ObjectID, contentType string) (*PhotoUploadTicket, error)
	// PhotoDownloadURL issues a presigned URL for fetching a stored photo.
	PhotoDownloadURL(ctx context.Context, objectKey string) (string, error)
}

type progressService struct {
	progressRepo repository.ProgressRepository
	fileStorage  storage.FileStorage
}

func NewProgressService(progressRepo repository.ProgressRepository, fileStorage storage.FileStorage) ProgressService {
	return &progressService{
		progressRepo: progressRepo,
		fileStorage:  fileStorage,
	}
}

func (s *progressService) Create(ctx context.Context, progress *domain.Progress) (*domain.Progress, error) {
	if progress.Date.IsZero() {
		progress.Date = time.Now()
	}
	id, err := s.progressRepo.Create(ctx, progress)
	if err != nil {
		return nil, err
	}
	progress.ID = id
	return progress, nil
}

func (s *progressService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Progress, error) {
	progress, err := s.progressRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	return progress, nil
}

func (s *progressService) List(ctx context.Context, filter repository.ProgressFilter) ([]domain.Progress, error) {
	return s.progressRepo.List(ctx, filter)
}

func (s *progressService) Update(ctx context.Context, progress *domain.Progress) (*domain.Progress, error) {
	if err := s.progressRepo.Update(ctx, progress); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	return s.progressRepo.GetByID(ctx, progress.ID)
}

func (s *progressService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.progressRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProgressNotFound
	}
	return err
}

func (s *progressService) PhotoUploadURL(ctx context.Context, memberID primitive.ObjectID, contentType string) (*PhotoUploadTicket, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	objectKey := fmt.Sprintf("progress/%s/%s", memberID.Hex(), uuid.NewString())

	url, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLFailure
	}
	return &PhotoUploadTicket{
		ObjectKey: objectKey,
		UploadURL: url,
		ExpiresIn: storage.DefaultPresignedURLExpiry,
	}, nil
}

func (s *progressService) PhotoDownloadURL(ctx context.Context, objectKey string) (string, error) {
	if objectKey == "" {
		return "", ErrInvalidObjectKey
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrDownloadURLFailed
	}
	return url, nil
}
