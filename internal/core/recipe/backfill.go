package recipe

import (
	"context"
	"sync"

	"fridgechef/internal/pkg/common"

	"go.uber.org/zap"
)

// ImageSearcher 食譜圖片查詢介面
type ImageSearcher interface {
	SearchRecipeImage(ctx context.Context, recipeName string) string
}

// BackfillTask 單筆補圖工作
type BackfillTask struct {
	RecipeID string
	Name     string
}

// Backfiller 背景圖片補齊器
// 一次只跑一輪：新一輪啟動時取消還在跑的前一輪，避免舊結果覆蓋新食譜
type Backfiller struct {
	workers  int
	searcher ImageSearcher

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewBackfiller 創建補圖器
func NewBackfiller(workers int, searcher ImageSearcher) *Backfiller {
	if workers <= 0 {
		workers = 1
	}
	return &Backfiller{
		workers:  workers,
		searcher: searcher,
	}
}

// Run 啟動新一輪補圖，前一輪若未完成會先被取消
// apply 在每張圖取得後被呼叫，由呼叫端負責寫回儲存
func (b *Backfiller) Run(ctx context.Context, tasks []BackfillTask, apply func(ctx context.Context, recipeID, image string)) {
	if len(tasks) == 0 {
		return
	}

	b.mu.Lock()
	if b.cancel != nil {
		b.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	b.mu.Unlock()

	queue := make(chan BackfillTask)
	var wg sync.WaitGroup

	for i := 0; i < b.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range queue {
				image := b.searcher.SearchRecipeImage(runCtx, task.Name)
				if runCtx.Err() != nil {
					return
				}
				apply(runCtx, task.RecipeID, image)
			}
		}()
	}

	go func() {
		defer close(queue)
		for _, task := range tasks {
			select {
			case queue <- task:
			case <-runCtx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		cancel()
		common.LogDebug("圖片補齊完成", zap.Int("task_count", len(tasks)))
	}()
}

// Stop 取消進行中的補圖
func (b *Backfiller) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}
