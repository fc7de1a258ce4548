package vision

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"fridgechef/internal/core/ingredient"
	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// 各偵測方式的信心門檻
// 文字（包裝標示）最可信，物件定位次之，泛用標籤最低
const (
	textConfidenceFloor   = 0.80
	objectConfidenceFloor = 0.55
	labelConfidenceFloor  = 0.60
)

// Service 影像辨識服務
// 未設定 API Key 時回傳示範資料，流程其餘部分完全相同
type Service struct {
	config *config.Config
	client *resty.Client
	images *ImageService
}

// NewService 創建影像辨識服務
func NewService(cfg *config.Config) *Service {
	client := resty.New().
		SetBaseURL(cfg.Vision.BaseURL).
		SetTimeout(cfg.Vision.Timeout)

	return &Service{
		config: cfg,
		client: client,
		images: NewImageService(cfg.Image.MaxSizeBytes),
	}
}

// annotateRequest 影像標注請求
type annotateRequest struct {
	Requests []annotateEntry `json:"requests"`
}

type annotateEntry struct {
	Image    annotateImage     `json:"image"`
	Features []annotateFeature `json:"features"`
}

type annotateImage struct {
	Content string `json:"content"`
}

type annotateFeature struct {
	Type       string `json:"type"`
	MaxResults int    `json:"maxResults,omitempty"`
}

// annotateResponse 影像標注回應
type annotateResponse struct {
	Responses []struct {
		TextAnnotations []struct {
			Description string `json:"description"`
		} `json:"textAnnotations"`
		LocalizedObjectAnnotations []struct {
			Name  string  `json:"name"`
			Score float64 `json:"score"`
		} `json:"localizedObjectAnnotations"`
		LabelAnnotations []struct {
			Description string  `json:"description"`
			Score       float64 `json:"score"`
		} `json:"labelAnnotations"`
	} `json:"responses"`
}

// candidate 單筆待正規化的偵測結果
type candidate struct {
	label  string
	score  float64
	method common.DetectionMethod
}

// AnalyzeImage 辨識冰箱照片中的食材
// 回傳正規化且去重後的清單，雜訊標籤與低信心結果會被丟棄
func (s *Service) AnalyzeImage(ctx context.Context, imageData string) ([]common.DetectedIngredient, error) {
	prepared, err := s.images.Prepare(imageData)
	if err != nil {
		return nil, err
	}

	if !s.config.Vision.Enabled() {
		common.LogInfo("影像辨識走示範模式")
		return demoDetections(), nil
	}

	content := strings.TrimPrefix(prepared, "data:image/jpeg;base64,")
	req := annotateRequest{
		Requests: []annotateEntry{
			{
				Image: annotateImage{Content: content},
				Features: []annotateFeature{
					{Type: "TEXT_DETECTION"},
					{Type: "OBJECT_LOCALIZATION", MaxResults: 30},
					{Type: "LABEL_DETECTION", MaxResults: 30},
				},
			},
		},
	}

	var result annotateResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("key", s.config.Vision.APIKey).
		SetBody(req).
		SetResult(&result).
		Post("/images:annotate")

	if err != nil {
		common.LogError("影像辨識請求失敗", zap.Error(err))
		return nil, common.NewError(common.ErrVisionServiceError.Code, "影像辨識請求失敗", common.ErrVisionServiceError.Status, err)
	}
	if resp.StatusCode() != http.StatusOK {
		common.LogError("影像辨識服務回傳錯誤",
			zap.Int("status_code", resp.StatusCode()),
		)
		return nil, common.NewError(common.ErrVisionServiceError.Code,
			fmt.Sprintf("影像辨識服務回傳錯誤 (status %d)", resp.StatusCode()),
			common.ErrVisionServiceError.Status, nil)
	}
	if len(result.Responses) == 0 {
		return nil, common.NewError(common.ErrVisionServiceError.Code, "影像辨識回應為空", common.ErrVisionServiceError.Status, nil)
	}

	detected := mergeDetections(collectCandidates(&result))
	common.LogInfo("影像辨識完成",
		zap.Int("ingredient_count", len(detected)),
	)
	return detected, nil
}

// collectCandidates 依方式優先序展開原始標注
// 文字標注不附信心分數，視為可信（包裝標示即白紙黑字）
func collectCandidates(result *annotateResponse) []candidate {
	r := result.Responses[0]
	var out []candidate

	// textAnnotations[0] 是整張圖的全文，逐行拆開
	if len(r.TextAnnotations) > 0 {
		for _, line := range strings.Split(r.TextAnnotations[0].Description, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, candidate{label: line, score: 1.0, method: common.DetectionText})
			}
		}
	}
	for _, obj := range r.LocalizedObjectAnnotations {
		out = append(out, candidate{label: obj.Name, score: obj.Score, method: common.DetectionObject})
	}
	for _, lbl := range r.LabelAnnotations {
		out = append(out, candidate{label: lbl.Description, score: lbl.Score, method: common.DetectionLabel})
	}
	return out
}

// mergeDetections 套用信心門檻、正規化並以標準鍵去重
// 候選清單已依方式優先序排列，先到先贏
func mergeDetections(candidates []candidate) []common.DetectedIngredient {
	seen := make(map[string]struct{})
	var out []common.DetectedIngredient

	for _, c := range candidates {
		if c.score < confidenceFloor(c.method) {
			continue
		}
		name, ok := ingredient.Normalize(c.label)
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, common.DetectedIngredient{
			RawLabel:   c.label,
			Name:       name,
			Confidence: c.score,
			Category:   string(ingredient.CategoryOf(name)),
			Method:     c.method,
		})
	}
	return out
}

func confidenceFloor(method common.DetectionMethod) float64 {
	switch method {
	case common.DetectionText:
		return textConfidenceFloor
	case common.DetectionObject:
		return objectConfidenceFloor
	default:
		return labelConfidenceFloor
	}
}

// demoDetections 示範模式的固定偵測結果
func demoDetections() []common.DetectedIngredient {
	names := []string{"tomato", "egg", "milk", "onion", "cheese", "carrot"}
	out := make([]common.DetectedIngredient, 0, len(names))
	for _, name := range names {
		out = append(out, common.DetectedIngredient{
			RawLabel:   name,
			Name:       name,
			Confidence: 0.95,
			Category:   string(ingredient.CategoryOf(name)),
			Method:     common.DetectionDemo,
		})
	}
	return out
}
