package store

import (
	"context"
	"encoding/json"
	"fmt"

	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	keyPrefix = "fridgechef"
	usersKey  = "fridgechef:users"

	docIngredients = "ingredients"
	docRecipes     = "recipes"
	docInventory   = "inventory"
	docWasteBin    = "wastebin"
	docMealPlan    = "mealplan"
)

// RedisStore Redis 文件儲存
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 建立 Redis 儲存並測試連線
func NewRedisStore(cfg config.StoreConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("Redis 儲存已初始化",
		zap.String("addr", cfg.RedisAddr),
		zap.Int("db", cfg.RedisDB),
	)

	return &RedisStore{client: client}, nil
}

func docKey(userID, doc string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, userID, doc)
}

// getDoc 讀取並解析單一文件，鍵不存在時視為空文件
func (s *RedisStore) getDoc(ctx context.Context, userID, doc string, v interface{}) error {
	data, err := s.client.Get(ctx, docKey(userID, doc)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return common.NewError(common.ErrStoreError.Code, "failed to read document", common.ErrStoreError.Status, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return common.NewError(common.ErrStoreError.Code, "failed to decode document", common.ErrStoreError.Status, err)
	}
	return nil
}

// setDoc 序列化並覆寫單一文件（last-write-wins），同時登記使用者
func (s *RedisStore) setDoc(ctx context.Context, userID, doc string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return common.NewError(common.ErrStoreError.Code, "failed to encode document", common.ErrStoreError.Status, err)
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, docKey(userID, doc), data, 0)
	pipe.SAdd(ctx, usersKey, userID)
	if _, err := pipe.Exec(ctx); err != nil {
		return common.NewError(common.ErrStoreError.Code, "failed to write document", common.ErrStoreError.Status, err)
	}
	return nil
}

// GetIngredients 取得食材清單
func (s *RedisStore) GetIngredients(ctx context.Context, userID string) ([]string, error) {
	var names []string
	if err := s.getDoc(ctx, userID, docIngredients, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// SaveIngredients 儲存食材清單
func (s *RedisStore) SaveIngredients(ctx context.Context, userID string, names []string) error {
	return s.setDoc(ctx, userID, docIngredients, names)
}

// GetRecipes 取得生成的食譜
func (s *RedisStore) GetRecipes(ctx context.Context, userID string) ([]common.GeneratedRecipe, error) {
	var recipes []common.GeneratedRecipe
	if err := s.getDoc(ctx, userID, docRecipes, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// SaveRecipes 儲存生成的食譜
func (s *RedisStore) SaveRecipes(ctx context.Context, userID string, recipes []common.GeneratedRecipe) error {
	return s.setDoc(ctx, userID, docRecipes, recipes)
}

// GetInventory 取得庫存
func (s *RedisStore) GetInventory(ctx context.Context, userID string) ([]common.InventoryItem, error) {
	var items []common.InventoryItem
	if err := s.getDoc(ctx, userID, docInventory, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveInventory 儲存庫存
func (s *RedisStore) SaveInventory(ctx context.Context, userID string, items []common.InventoryItem) error {
	return s.setDoc(ctx, userID, docInventory, items)
}

// GetWasteBin 取得待處理區
func (s *RedisStore) GetWasteBin(ctx context.Context, userID string) ([]common.WasteItem, error) {
	var items []common.WasteItem
	if err := s.getDoc(ctx, userID, docWasteBin, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveWasteBin 儲存待處理區
func (s *RedisStore) SaveWasteBin(ctx context.Context, userID string, items []common.WasteItem) error {
	return s.setDoc(ctx, userID, docWasteBin, items)
}

// GetMealPlan 取得餐期計畫
func (s *RedisStore) GetMealPlan(ctx context.Context, userID string) ([]common.MealPlanEntry, error) {
	var entries []common.MealPlanEntry
	if err := s.getDoc(ctx, userID, docMealPlan, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SaveMealPlan 儲存餐期計畫
func (s *RedisStore) SaveMealPlan(ctx context.Context, userID string, entries []common.MealPlanEntry) error {
	return s.setDoc(ctx, userID, docMealPlan, entries)
}

// Users 回傳所有登記過的使用者
func (s *RedisStore) Users(ctx context.Context) ([]string, error) {
	users, err := s.client.SMembers(ctx, usersKey).Result()
	if err != nil {
		return nil, common.NewError(common.ErrStoreError.Code, "failed to list users", common.ErrStoreError.Status, err)
	}
	return users, nil
}

// Close 關閉連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}
