package recipe

import (
	"context"
	"strings"
	"time"

	"fridgechef/internal/core/imagesearch"
	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/infrastructure/store"
	"fridgechef/internal/pkg/common"

	"go.uber.org/zap"
)

// EventKind 生成事件種類
type EventKind string

const (
	EventProgress   EventKind = "progress"
	EventBatchReady EventKind = "batch_ready"
	EventDone       EventKind = "done"
	EventFailed     EventKind = "failed"
)

// GenerationEvent 漸進式生成事件
// BatchReady 帶該批新食譜，Done 帶完整結果，批次送出前必定已持久化
type GenerationEvent struct {
	Kind    EventKind                `json:"kind"`
	Message string                   `json:"message,omitempty"`
	Batch   []common.GeneratedRecipe `json:"batch,omitempty"`
	Recipes []common.GeneratedRecipe `json:"recipes,omitempty"`
	Err     error                    `json:"-"`
}

// RemoteGenerator 遠端食譜生成介面
type RemoteGenerator interface {
	Enabled() bool
	GenerateRecipes(ctx context.Context, ingredients []string, count int) ([]common.CatalogEntry, error)
}

// Service 食譜生成協調器
// 遠端生成只是加分項：逾時或失敗一律靜默降級到本地目錄
type Service struct {
	config   *config.Config
	store    store.Store
	remote   RemoteGenerator
	images   ImageSearcher
	backfill *Backfiller
}

// NewService 創建生成協調器
func NewService(cfg *config.Config, st store.Store, remote RemoteGenerator, images ImageSearcher) *Service {
	return &Service{
		config:   cfg,
		store:    st,
		remote:   remote,
		images:   images,
		backfill: NewBackfiller(cfg.Generation.BackfillWorkers, images),
	}
}

// Generate 同步生成，收齊所有事件後回傳最終結果
func (s *Service) Generate(ctx context.Context, userID string, ingredients []string) ([]common.GeneratedRecipe, error) {
	for ev := range s.GenerateEvents(ctx, userID, ingredients) {
		switch ev.Kind {
		case EventDone:
			return ev.Recipes, nil
		case EventFailed:
			return nil, ev.Err
		}
	}
	return nil, ctx.Err()
}

// GenerateEvents 漸進式生成
// 事件順序：Progress* → BatchReady* → Done，或任意時點以 Failed 結束
func (s *Service) GenerateEvents(ctx context.Context, userID string, ingredients []string) <-chan GenerationEvent {
	events := make(chan GenerationEvent, 16)

	go func() {
		defer close(events)

		emit := func(ev GenerationEvent) bool {
			select {
			case events <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if len(ingredients) == 0 {
			if err := s.store.SaveRecipes(ctx, userID, []common.GeneratedRecipe{}); err != nil {
				emit(GenerationEvent{Kind: EventFailed, Err: asStoreError(err)})
				return
			}
			emit(GenerationEvent{Kind: EventDone, Recipes: []common.GeneratedRecipe{}})
			return
		}

		if !emit(GenerationEvent{Kind: EventProgress, Message: "分析食材中"}) {
			return
		}

		candidates := s.collectCandidates(ctx, ingredients)
		scored := s.scoreCandidates(candidates, ingredients)
		final := FilterSimilar(scored)
		if len(final) > s.config.Generation.MaxRecipes {
			final = final[:s.config.Generation.MaxRecipes]
		}

		if !emit(GenerationEvent{Kind: EventProgress, Message: "挑選食譜圖片中"}) {
			return
		}

		// 前幾份同步取得圖片，其餘先放佔位圖交給背景補齊
		var backfillTasks []BackfillTask
		for i := range final {
			if i < s.config.Generation.PriorityImages {
				final[i].Image = s.images.SearchRecipeImage(ctx, final[i].Name)
			} else {
				final[i].Image = imagesearch.PlaceholderImage
				backfillTasks = append(backfillTasks, BackfillTask{RecipeID: final[i].ID, Name: final[i].Name})
			}
		}

		// 分批持久化再送事件，消費端收到的批次一定查得回來
		batchSize := s.config.Generation.BatchSize
		for start := 0; start < len(final); start += batchSize {
			end := start + batchSize
			if end > len(final) {
				end = len(final)
			}
			if err := s.store.SaveRecipes(ctx, userID, final[:end]); err != nil {
				common.LogError("食譜持久化失敗", zap.Error(err), zap.String("user_id", userID))
				emit(GenerationEvent{Kind: EventFailed, Err: asStoreError(err)})
				return
			}
			if !emit(GenerationEvent{Kind: EventBatchReady, Batch: final[start:end]}) {
				return
			}
		}

		if len(final) == 0 {
			if err := s.store.SaveRecipes(ctx, userID, []common.GeneratedRecipe{}); err != nil {
				emit(GenerationEvent{Kind: EventFailed, Err: asStoreError(err)})
				return
			}
		}

		emit(GenerationEvent{Kind: EventDone, Recipes: final})

		// 背景補圖掛在獨立 context 上，請求結束不中斷，新一輪生成才會取消
		s.backfill.Run(context.Background(), backfillTasks, func(bctx context.Context, recipeID, image string) {
			s.applyImage(bctx, userID, recipeID, image)
		})
	}()

	return events
}

// collectCandidates 收集候選食譜
// 遠端結果逐筆驗證，不合格者記錄原因後丟棄
// 驗證後一份可用的都沒有才降級到本地目錄，有就只用遠端結果
func (s *Service) collectCandidates(ctx context.Context, ingredients []string) []common.CatalogEntry {
	var candidates []common.CatalogEntry
	seen := make(map[string]struct{})

	if s.remote != nil && s.remote.Enabled() {
		remote, err := s.remote.GenerateRecipes(ctx, ingredients, s.config.Generation.MaxRecipes)
		if err != nil {
			common.LogWarn("遠端生成失敗，降級到本地目錄", zap.Error(err))
		}
		for _, entry := range remote {
			if reasons := ValidateEntry(entry); len(reasons) > 0 {
				common.LogWarn("遠端食譜驗證不通過",
					zap.String("recipe_name", entry.Name),
					zap.Strings("reasons", reasons),
				)
				continue
			}
			key := strings.ToLower(strings.TrimSpace(entry.Name))
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			candidates = append(candidates, entry)
		}
		if len(candidates) > 0 {
			return candidates
		}
	}

	return Catalog
}

// scoreCandidates 計算符合度並過濾低於門檻者
func (s *Service) scoreCandidates(candidates []common.CatalogEntry, ingredients []string) []common.GeneratedRecipe {
	minMatch := s.config.Generation.MinMatchPercentage
	now := time.Now()

	var out []common.GeneratedRecipe
	for _, entry := range candidates {
		result := Match(entry.UsedIngredients, ingredients)
		if result.Percentage < minMatch {
			continue
		}
		out = append(out, common.GeneratedRecipe{
			CatalogEntry:       entry,
			ID:                 common.GenerateUUID(),
			MatchPercentage:    result.Percentage,
			MissingIngredients: result.Missing,
			CreatedAt:          now,
		})
	}
	return out
}

// Suggest 以本地目錄比對食材，回傳排序與去重後的建議清單
// 不落地、不打遠端、不抓圖，過期掃描的建議郵件使用
func (s *Service) Suggest(ctx context.Context, ingredients []string) []common.GeneratedRecipe {
	if len(ingredients) == 0 {
		return nil
	}
	final := FilterSimilar(s.scoreCandidates(Catalog, ingredients))
	if len(final) > s.config.Generation.MaxRecipes {
		final = final[:s.config.Generation.MaxRecipes]
	}
	return final
}

// asStoreError 保證 Failed 事件一律帶儲存層型別錯誤
// 呼叫端據此區分「儲存掛了」和「沒有符合的食譜」
func asStoreError(err error) error {
	if common.IsStoreError(err) {
		return err
	}
	return common.NewError(common.ErrStoreError.Code, "食譜持久化失敗", common.ErrStoreError.Status, err)
}

// applyImage 將補齊的圖片寫回已持久化的食譜
func (s *Service) applyImage(ctx context.Context, userID, recipeID, image string) {
	recipes, err := s.store.GetRecipes(ctx, userID)
	if err != nil {
		common.LogWarn("補圖讀取食譜失敗", zap.Error(err), zap.String("user_id", userID))
		return
	}
	updated := false
	for i := range recipes {
		if recipes[i].ID == recipeID {
			recipes[i].Image = image
			updated = true
			break
		}
	}
	if !updated {
		return
	}
	if err := s.store.SaveRecipes(ctx, userID, recipes); err != nil {
		common.LogWarn("補圖寫回失敗", zap.Error(err), zap.String("user_id", userID))
	}
}

// StopBackfill 取消進行中的背景補圖
func (s *Service) StopBackfill() {
	s.backfill.Stop()
}
