package imagesearch

import (
	"context"
	"net/http"
	"strings"

	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// PlaceholderImage 查無圖片或服務未啟用時的佔位圖
const PlaceholderImage = "data:image/svg+xml;base64,PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHdpZHRoPSI0MDAiIGhlaWdodD0iMzAwIj48cmVjdCB3aWR0aD0iNDAwIiBoZWlnaHQ9IjMwMCIgZmlsbD0iI2VlZWVlZSIvPjx0ZXh0IHg9IjIwMCIgeT0iMTUwIiBmb250LXNpemU9IjQ4IiB0ZXh0LWFuY2hvcj0ibWlkZGxlIiBkb21pbmFudC1iYXNlbGluZT0ibWlkZGxlIj7wn429PC90ZXh0Pjwvc3ZnPg=="

// Service 食譜圖片搜尋服務
// 圖片永遠是輔助資訊，任何失敗都回退佔位圖而不往外傳錯誤
type Service struct {
	config *config.Config
	client *resty.Client
}

// NewService 創建圖片搜尋服務
func NewService(cfg *config.Config) *Service {
	client := resty.New().
		SetBaseURL(cfg.ImageSearch.BaseURL).
		SetTimeout(cfg.ImageSearch.Timeout)

	return &Service{
		config: cfg,
		client: client,
	}
}

// SearchRecipeImage 以食譜名稱搜尋代表圖片
func (s *Service) SearchRecipeImage(ctx context.Context, recipeName string) string {
	if !s.config.ImageSearch.Enabled() {
		return PlaceholderImage
	}

	query := cleanQuery(recipeName) + " food dish"

	var result struct {
		Items []struct {
			Link string `json:"link"`
		} `json:"items"`
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key":        s.config.ImageSearch.APIKey,
			"cx":         s.config.ImageSearch.EngineID,
			"q":          query,
			"searchType": "image",
			"num":        "1",
			"safe":       "active",
		}).
		SetResult(&result).
		Get("")

	if err != nil {
		common.LogWarn("圖片搜尋請求失敗",
			zap.Error(err),
			zap.String("query", query),
		)
		return PlaceholderImage
	}
	if resp.StatusCode() != http.StatusOK {
		common.LogWarn("圖片搜尋回傳錯誤",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("query", query),
		)
		return PlaceholderImage
	}
	if len(result.Items) == 0 || result.Items[0].Link == "" {
		common.LogDebug("圖片搜尋無結果", zap.String("query", query))
		return PlaceholderImage
	}

	return result.Items[0].Link
}

// cleanQuery 移除名稱中的標點，只留字詞
func cleanQuery(name string) string {
	fields := strings.FieldsFunc(name, func(r rune) bool {
		return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9')
	})
	return strings.Join(fields, " ")
}
