package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"fridgechef/internal/core/ai/cache"
	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client 遠端食譜生成客戶端
// 逾時或失敗由呼叫端降級到本地目錄，這裡只負責請求與解析
type Client struct {
	config *config.Config
	client *resty.Client
	cache  *cache.Manager
}

// NewClient 創建遠端生成客戶端
func NewClient(cfg *config.Config, cacheManager *cache.Manager) *Client {
	client := resty.New().
		SetBaseURL(cfg.OpenRouter.BaseURL).
		SetTimeout(cfg.OpenRouter.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenRouter.APIKey)).
		SetHeader("HTTP-Referer", "https://fridgechef.app").
		SetHeader("X-Title", "FridgeChef")

	return &Client{
		config: cfg,
		client: client,
		cache:  cacheManager,
	}
}

// Enabled 是否啟用遠端生成
func (c *Client) Enabled() bool {
	return c.config.OpenRouter.Enabled()
}

// GenerateRecipes 依食材清單生成食譜
// 回應先走快取，未命中才打遠端模型
func (c *Client) GenerateRecipes(ctx context.Context, ingredients []string, count int) ([]common.CatalogEntry, error) {
	prompt := buildPrompt(ingredients, count)

	if cached, err := c.cache.Get(ctx, prompt); err == nil {
		recipes, parseErr := parseRecipes(cached)
		if parseErr == nil {
			return recipes, nil
		}
		common.LogWarn("快取內容解析失敗，改打遠端", zap.Error(parseErr))
	}

	content, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	recipes, err := parseRecipes(content)
	if err != nil {
		common.LogError("遠端回應解析失敗",
			zap.Error(err),
			zap.Int("content_length", len(content)),
		)
		return nil, common.NewError(common.ErrAIServiceError.Code, "遠端回應解析失敗", common.ErrAIServiceError.Status, err)
	}

	if err := c.cache.Set(ctx, prompt, content); err != nil {
		common.LogWarn("快取寫入失敗", zap.Error(err))
	}

	common.LogInfo("遠端生成完成",
		zap.Int("recipe_count", len(recipes)),
		zap.String("model", c.config.OpenRouter.Model),
	)
	return recipes, nil
}

// complete 呼叫 chat completions 端點並取出首個回應內容
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	req := map[string]interface{}{
		"model": c.config.OpenRouter.Model,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": prompt,
			},
		},
		"max_tokens": c.config.OpenRouter.MaxTokens,
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/chat/completions")

	if err != nil {
		return "", common.NewError(common.ErrAIServiceError.Code, "遠端生成請求失敗", common.ErrAIServiceError.Status, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", common.NewError(common.ErrAIServiceError.Code,
			fmt.Sprintf("遠端生成回傳錯誤 (status %d)", resp.StatusCode()),
			common.ErrAIServiceError.Status, nil)
	}
	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", common.NewError(common.ErrAIServiceError.Code, "遠端生成回應為空", common.ErrAIServiceError.Status, nil)
	}

	return result.Choices[0].Message.Content, nil
}

// buildPrompt 組出嚴格 JSON 輸出的生成提示
func buildPrompt(ingredients []string, count int) string {
	var sb strings.Builder
	sb.WriteString("You are a recipe assistant. Given the ingredients below, suggest up to ")
	fmt.Fprintf(&sb, "%d", count)
	sb.WriteString(" realistic home recipes that use as many of them as possible.\n\n")
	sb.WriteString("Available ingredients:\n")
	sb.WriteString(common.FormatIngredientList(ingredients))
	sb.WriteString("\nRespond with ONLY a JSON array, no markdown, no commentary. Each element:\n")
	sb.WriteString(`{"name":"...","time":"20 min","difficulty":"Easy|Medium|Hard","calories":350,` +
		`"nutrition_benefits":"...","used_ingredients":["..."],"ingredients":["..."],` +
		`"instructions":[{"title":"...","detail":"..."}]}`)
	sb.WriteString("\nused_ingredients must only contain items from the available list.")
	return sb.String()
}

// parseRecipes 清理並解析模型輸出
// 先當純陣列解析，失敗再試 {"recipes":[...]} 物件包裝
func parseRecipes(content string) ([]common.CatalogEntry, error) {
	cleaned := common.QuoteJSONKeys(common.ExtractJSONArray(content))

	var recipes []common.CatalogEntry
	if err := common.ParseJSON(cleaned, &recipes); err != nil {
		obj := common.QuoteJSONKeys(common.ExtractJSONObject(content))
		var wrapper struct {
			Recipes []common.CatalogEntry `json:"recipes"`
		}
		if wrapErr := common.ParseJSON(obj, &wrapper); wrapErr != nil {
			return nil, fmt.Errorf("failed to parse recipe array: %w", err)
		}
		recipes = wrapper.Recipes
	}
	if len(recipes) == 0 {
		return nil, fmt.Errorf("empty recipe array")
	}
	return recipes, nil
}
