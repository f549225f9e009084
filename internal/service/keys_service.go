package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/postplannerhq/postplanner/internal/models"
	"github.com/postplannerhq/postplanner/internal/repository"
	"github.com/postplannerhq/postplanner/pkg/utils"
)

const maxApiKeysPerUser = 5

type ApiKeyService interface {
	Create(ctx context.Context, userID int64, name string) (*models.ApiKey, error)
	List(ctx context.Context, userID int64) ([]*models.ApiKey, error)
	GetUserID(ctx context.Context, apiKey string) (int64, error)
	Remove(ctx context.Context, userID, keyID int64) error
}

type apiKeyService struct {
	k repository.ApiKeyRepository
}

func NewApiKeyService(k repository.ApiKeyRepository) ApiKeyService {
	return &apiKeyService{
		k: k,
	}
}

func (s *apiKeyService) Create(ctx context.Context, userID int64, name string) (*models.ApiKey, error) {
	keys, err := s.k.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(keys) >= maxApiKeysPerUser {
		err = fmt.Errorf("%w: at most %d API keys per account", ErrValidation, maxApiKeysPerUser)
		slog.Info(err.Error())
		return nil, err
	}

	key, err := utils.GenerateRandomKey(16)
	if err != nil {
		slog.Info(err.Error())
		return nil, errors.New("error generating API key")
	}

	if name == "" {
		name = "default"
	}
	apiKey := &models.ApiKey{
		UserID: userID,
		Name:   name,
		ApiKey: key,
	}

	id, err := s.k.Create(ctx, apiKey)
	if err != nil {
		return nil, errors.New("error saving API key")
	}
	apiKey.ID = id
	return apiKey, nil
}

func (s *apiKeyService) GetUserID(ctx context.Context, apiKey string) (int64, error) {
	key, isExist, err := s.k.GetByKey(ctx, apiKey)
	if err != nil {
		return 0, err
	}
	if !isExist {
		return 0, errors.New("key doesn't exist")
	}
	return key.UserID, nil
}

func (s *apiKeyService) List(ctx context.Context, userID int64) ([]*models.ApiKey, error) {
	return s.k.GetByUserID(ctx, userID)
}

func (s *apiKeyService) Remove(ctx context.Context, userID, keyID int64) error {
	if userID == 0 || keyID == 0 {
		return fmt.Errorf("%w: key id is required", ErrValidation)
	}

	isValid, err := s.k.CheckByUserID(ctx, keyID, userID)
	if err != nil {
		return err
	}
	if !isValid {
		return ErrNotFound
	}

	return s.k.Remove(ctx, keyID)
}
