package store

import (
	"context"

	"fridgechef/internal/pkg/common"
)

// Store 每位使用者的文件集合：食材清單、庫存、待處理區、食譜、餐期計畫
// 寫入採 last-write-wins，不做樂觀鎖
type Store interface {
	GetIngredients(ctx context.Context, userID string) ([]string, error)
	SaveIngredients(ctx context.Context, userID string, names []string) error

	GetRecipes(ctx context.Context, userID string) ([]common.GeneratedRecipe, error)
	SaveRecipes(ctx context.Context, userID string, recipes []common.GeneratedRecipe) error

	GetInventory(ctx context.Context, userID string) ([]common.InventoryItem, error)
	SaveInventory(ctx context.Context, userID string, items []common.InventoryItem) error

	GetWasteBin(ctx context.Context, userID string) ([]common.WasteItem, error)
	SaveWasteBin(ctx context.Context, userID string, items []common.WasteItem) error

	GetMealPlan(ctx context.Context, userID string) ([]common.MealPlanEntry, error)
	SaveMealPlan(ctx context.Context, userID string, entries []common.MealPlanEntry) error

	// Users 回傳所有寫入過資料的使用者，供過期提醒掃描使用
	Users(ctx context.Context) ([]string, error)

	Close() error
}
