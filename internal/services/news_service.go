package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/naitfess/prak-tpm-projek-akhir/internal/models"
	apperrors "github.com/naitfess/prak-tpm-projek-akhir/pkg/errors"
)

// NewsService handles news article management
type NewsService struct {
	db *gorm.DB
}

// NewNewsService creates a new NewsService
func NewNewsService(db *gorm.DB) *NewsService {
	return &NewsService{db: db}
}

// ListNews returns a page of news articles, newest first
func (s *NewsService) ListNews(ctx context.Context, page, limit int) ([]models.News, models.Pagination, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.News{}).Count(&total).Error; err != nil {
		return nil, models.Pagination{}, apperrors.Internal("failed to count news", err)
	}

	var news []models.News
	err := s.db.WithContext(ctx).
		Order("date DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&news).Error
	if err != nil {
		return nil, models.Pagination{}, apperrors.Internal("failed to list news", err)
	}

	return news, models.NewPagination(total, page, limit), nil
}

// GetNewsByID retrieves a news article by ID
func (s *NewsService) GetNewsByID(ctx context.Context, newsID uint) (*models.News, error) {
	var news models.News
	if err := s.db.WithContext(ctx).Where("id = ?", newsID).First(&news).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("news not found")
		}
		return nil, apperrors.Internal("failed to load news", err)
	}
	return &news, nil
}

// CreateNews creates a news article
func (s *NewsService) CreateNews(ctx context.Context, req *models.NewsRequest) (*models.News, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	news := models.News{
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		Date:     date,
	}

	if err := s.db.WithContext(ctx).Create(&news).Error; err != nil {
		return nil, apperrors.Internal("failed to create news", err)
	}

	return &news, nil
}

// UpdateNews updates a news article
func (s *NewsService) UpdateNews(ctx context.Context, newsID uint, req *models.NewsRequest) (*models.News, error) {
	news, err := s.GetNewsByID(ctx, newsID)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	news.Title = req.Title
	news.Content = req.Content
	news.ImageURL = req.ImageURL
	news.Date = date

	if err := s.db.WithContext(ctx).Save(news).Error; err != nil {
		return nil, apperrors.Internal("failed to update news", err)
	}

	return news, nil
}

// DeleteNews deletes a news article
func (s *NewsService) DeleteNews(ctx context.Context, newsID uint) error {
	news, err := s.GetNewsByID(ctx, newsID)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(news).Error; err != nil {
		return apperrors.Internal("failed to delete news", err)
	}

	return nil
}

func parseDate(value string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, apperrors.InvalidInput("date must be in YYYY-MM-DD format")
	}
	return date, nil
}
