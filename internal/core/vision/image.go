package vision

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"strings"
	"time"

	"fridgechef/internal/pkg/common"

	_ "image/gif" // 支援 GIF
	_ "image/png" // 支援 PNG

	_ "golang.org/x/image/webp" // 支援 WebP
)

// ImageService 圖片前處理服務
// 上傳的冰箱照片不論來源（URL 或 base64）一律轉成 JPEG data URI
type ImageService struct {
	maxSizeBytes int64
	httpClient   *http.Client
}

// NewImageService 創建圖片前處理服務
func NewImageService(maxSizeBytes int64) *ImageService {
	return &ImageService{
		maxSizeBytes: maxSizeBytes,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Prepare 載入、驗證並統一轉碼為 JPEG data URI
func (s *ImageService) Prepare(imageData string) (string, error) {
	raw, err := s.load(imageData)
	if err != nil {
		return "", err
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", common.NewError(common.ErrInvalidImageFormat.Code, "無法解碼圖片", common.ErrInvalidImageFormat.Status, err)
	}
	if !isSupportedFormat(format) {
		return "", common.NewError(common.ErrInvalidImageFormat.Code, fmt.Sprintf("不支援的圖片格式: %s", format), common.ErrInvalidImageFormat.Status, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode image as JPEG: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	return fmt.Sprintf("data:image/jpeg;base64,%s", encoded), nil
}

// load 取得原始圖片位元組並檢查大小上限
// 支援 http(s) URL 與 data:image base64 兩種來源
func (s *ImageService) load(imageData string) ([]byte, error) {
	if strings.HasPrefix(imageData, "http://") || strings.HasPrefix(imageData, "https://") {
		resp, err := s.httpClient.Get(imageData)
		if err != nil {
			return nil, fmt.Errorf("failed to download image: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to download image: status code %d", resp.StatusCode)
		}

		raw, err := io.ReadAll(io.LimitReader(resp.Body, s.maxSizeBytes+1))
		if err != nil {
			return nil, fmt.Errorf("failed to read image data: %w", err)
		}
		if int64(len(raw)) > s.maxSizeBytes {
			return nil, common.NewError(common.ErrInvalidImageSize.Code, fmt.Sprintf("圖片超過大小上限 %d bytes", s.maxSizeBytes), common.ErrInvalidImageSize.Status, nil)
		}
		return raw, nil
	}

	if !strings.HasPrefix(imageData, "data:image/") {
		return nil, common.NewError(common.ErrInvalidImageFormat.Code, "無效的圖片資料格式", common.ErrInvalidImageFormat.Status, nil)
	}

	parts := strings.SplitN(imageData, ",", 2)
	if len(parts) != 2 {
		return nil, common.NewError(common.ErrInvalidImageFormat.Code, "無效的 base64 資料格式", common.ErrInvalidImageFormat.Status, nil)
	}

	raw, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, common.NewError(common.ErrInvalidImageFormat.Code, "base64 解碼失敗", common.ErrInvalidImageFormat.Status, err)
	}
	if int64(len(raw)) > s.maxSizeBytes {
		return nil, common.NewError(common.ErrInvalidImageSize.Code, fmt.Sprintf("圖片超過大小上限 %d bytes", s.maxSizeBytes), common.ErrInvalidImageSize.Status, nil)
	}
	return raw, nil
}

// isSupportedFormat 檢查圖片格式是否支援
func isSupportedFormat(format string) bool {
	supportedFormats := map[string]bool{
		"jpeg": true,
		"jpg":  true,
		"png":  true,
		"gif":  true,
		"webp": true,
	}
	return supportedFormats[format]
}
