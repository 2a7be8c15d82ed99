package services

import (
	"context"
	"net/url"
	"strings"

	"phantoms-store/logger"
	"phantoms-store/models"
	"phantoms-store/repositories"

	"go.uber.org/zap"
)

type YoutubeResourceService interface {
	List(ctx context.Context, viewer *models.Principal, params models.ListParams) ([]models.YoutubeResource, int64, error)
	ListByCategory(ctx context.Context, viewer *models.Principal, category string, params models.ListParams) ([]models.YoutubeResource, int64, error)
	Search(ctx context.Context, viewer *models.Principal, query string, params models.ListParams) ([]models.YoutubeResource, int64, error)
	Get(ctx context.Context, viewer *models.Principal, id uint) (*models.YoutubeResource, error)
	Create(ctx context.Context, principal models.Principal, req models.CreateYoutubeResourceRequest) (*models.YoutubeResource, error)
	Update(ctx context.Context, principal models.Principal, id uint, req models.UpdateYoutubeResourceRequest) (*models.YoutubeResource, error)
	Delete(ctx context.Context, principal models.Principal, id uint) error
}

type youtubeResourceService struct {
	repo repositories.YoutubeResourceRepository
}

func NewYoutubeResourceService(repo repositories.YoutubeResourceRepository) YoutubeResourceService {
	return &youtubeResourceService{repo: repo}
}

func (s *youtubeResourceService) List(ctx context.Context, viewer *models.Principal, params models.ListParams) ([]models.YoutubeResource, int64, error) {
	params.Normalize()
	params.Category = strings.TrimSpace(params.Category)
	params.Search = strings.TrimSpace(params.Search)
	return s.repo.List(ctx, listScope(viewer, params.IncludeInactive), params)
}

func (s *youtubeResourceService) ListByCategory(ctx context.Context, viewer *models.Principal, category string, params models.ListParams) ([]models.YoutubeResource, int64, error) {
	params.Category = category
	return s.List(ctx, viewer, params)
}

func (s *youtubeResourceService) Search(ctx context.Context, viewer *models.Principal, query string, params models.ListParams) ([]models.YoutubeResource, int64, error) {
	params.Search = query
	return s.List(ctx, viewer, params)
}

func (s *youtubeResourceService) Get(ctx context.Context, viewer *models.Principal, id uint) (*models.YoutubeResource, error) {
	return s.repo.GetByID(ctx, id, models.ScopeFor(viewer))
}

func (s *youtubeResourceService) Create(ctx context.Context, principal models.Principal, req models.CreateYoutubeResourceRequest) (*models.YoutubeResource, error) {
	thumbnail := req.ThumbnailURL
	if thumbnail == "" {
		thumbnail = ThumbnailURL(req.YoutubeURL)
	}

	resource := &models.YoutubeResource{
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		YoutubeURL:   strings.TrimSpace(req.YoutubeURL),
		ThumbnailURL: thumbnail,
		Category:     models.VideoCategory(req.Category),
		Duration:     req.Duration,
		Views:        req.Views,
		Status:       models.StatusActive,
		OwnerID:      principal.UserID,
	}
	if err := s.repo.Create(ctx, resource); err != nil {
		return nil, err
	}

	logger.Info(ctx, "youtube resource created",
		zap.Uint("id", resource.ID),
		zap.String("owner_id", resource.OwnerID))
	return resource, nil
}

func (s *youtubeResourceService) Update(ctx context.Context, principal models.Principal, id uint, req models.UpdateYoutubeResourceRequest) (*models.YoutubeResource, error) {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.YoutubeURL != nil {
		updates["youtube_url"] = strings.TrimSpace(*req.YoutubeURL)
		if req.ThumbnailURL == nil {
			if thumb := ThumbnailURL(*req.YoutubeURL); thumb != "" {
				updates["thumbnail_url"] = thumb
			}
		}
	}
	if req.ThumbnailURL != nil {
		updates["thumbnail_url"] = *req.ThumbnailURL
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.Views != nil {
		updates["views"] = *req.Views
	}
	if req.Status != nil {
		status, err := models.ParseLifecycleStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		updates["status"] = status
	}

	return s.repo.Update(ctx, id, models.ScopeFor(&principal), updates)
}

func (s *youtubeResourceService) Delete(ctx context.Context, principal models.Principal, id uint) error {
	return s.repo.SoftDelete(ctx, id, models.ScopeFor(&principal))
}

// VideoID extracts the id from watch, short-link, embed and shorts URLs.
func VideoID(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	path := strings.Trim(u.Path, "/")

	switch host {
	case "youtu.be":
		return firstSegment(path)
	case "youtube.com", "youtube-nocookie.com":
		if v := u.Query().Get("v"); v != "" {
			return v
		}
		for _, prefix := range []string{"embed/", "shorts/", "live/", "v/"} {
			if strings.HasPrefix(path, prefix) {
				return firstSegment(strings.TrimPrefix(path, prefix))
			}
		}
	}
	return ""
}

func firstSegment(path string) string {
	if i := strings.Index(path, "/"); i >= 0 {
		return path[:i]
	}
	return path
}

// ThumbnailURL returns the hqdefault image for a video URL, or "" when no id is found.
func ThumbnailURL(videoURL string) string {
	id := VideoID(videoURL)
	if id == "" {
		return ""
	}
	return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg"
}
