package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"pg-backend/internal/cache"
	"pg-backend/internal/models"
	"pg-backend/internal/repositories"
)

const settingCacheTTL = 10 * time.Minute

type SystemSettingService struct {
	settings *repositories.SystemSettingRepository
}

func NewSystemSettingService(settings *repositories.SystemSettingRepository) *SystemSettingService {
	return &SystemSettingService{settings: settings}
}

// Get reads a setting, served from Redis when warm.
func (s *SystemSettingService) Get(ctx context.Context, key string) (*models.SystemSetting, error) {
	cacheKey := "settings:" + key
	if data, ok := cache.GetCached(ctx, cacheKey); ok {
		setting := &models.SystemSetting{}
		if err := json.Unmarshal(data, setting); err == nil {
			return setting, nil
		}
	}

	setting, err := s.settings.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(setting); err == nil {
		cache.SetCached(ctx, cacheKey, data, settingCacheTTL)
	}
	return setting, nil
}

func (s *SystemSettingService) List(ctx context.Context) ([]*models.SystemSetting, error) {
	return s.settings.List(ctx)
}

func (s *SystemSettingService) Update(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("setting key is required")
	}
	if err := s.settings.Upsert(ctx, key, value); err != nil {
		return err
	}
	cache.InvalidateSettingCaches(ctx)
	return nil
}
