package store

import (
	"context"
	"encoding/json"
	"sync"

	"fridgechef/internal/pkg/common"
)

// MemoryStore 記憶體儲存，示範模式與測試使用
// 文件以 JSON 序列化保存，行為與 Redis 實作一致（深拷貝、last-write-wins）
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte // userID:doc -> JSON
}

// NewMemoryStore 建立記憶體儲存
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string][]byte),
	}
}

func (s *MemoryStore) getDoc(userID, doc string, v interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.docs[userID+":"+doc]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return common.NewError(common.ErrStoreError.Code, "failed to decode document", common.ErrStoreError.Status, err)
	}
	return nil
}

func (s *MemoryStore) setDoc(userID, doc string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return common.NewError(common.ErrStoreError.Code, "failed to encode document", common.ErrStoreError.Status, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[userID+":"+doc] = data
	return nil
}

// GetIngredients 取得食材清單
func (s *MemoryStore) GetIngredients(ctx context.Context, userID string) ([]string, error) {
	var names []string
	if err := s.getDoc(userID, docIngredients, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// SaveIngredients 儲存食材清單
func (s *MemoryStore) SaveIngredients(ctx context.Context, userID string, names []string) error {
	return s.setDoc(userID, docIngredients, names)
}

// GetRecipes 取得生成的食譜
func (s *MemoryStore) GetRecipes(ctx context.Context, userID string) ([]common.GeneratedRecipe, error) {
	var recipes []common.GeneratedRecipe
	if err := s.getDoc(userID, docRecipes, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// SaveRecipes 儲存生成的食譜
func (s *MemoryStore) SaveRecipes(ctx context.Context, userID string, recipes []common.GeneratedRecipe) error {
	return s.setDoc(userID, docRecipes, recipes)
}

// GetInventory 取得庫存
func (s *MemoryStore) GetInventory(ctx context.Context, userID string) ([]common.InventoryItem, error) {
	var items []common.InventoryItem
	if err := s.getDoc(userID, docInventory, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveInventory 儲存庫存
func (s *MemoryStore) SaveInventory(ctx context.Context, userID string, items []common.InventoryItem) error {
	return s.setDoc(userID, docInventory, items)
}

// GetWasteBin 取得待處理區
func (s *MemoryStore) GetWasteBin(ctx context.Context, userID string) ([]common.WasteItem, error) {
	var items []common.WasteItem
	if err := s.getDoc(userID, docWasteBin, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveWasteBin 儲存待處理區
func (s *MemoryStore) SaveWasteBin(ctx context.Context, userID string, items []common.WasteItem) error {
	return s.setDoc(userID, docWasteBin, items)
}

// GetMealPlan 取得餐期計畫
func (s *MemoryStore) GetMealPlan(ctx context.Context, userID string) ([]common.MealPlanEntry, error) {
	var entries []common.MealPlanEntry
	if err := s.getDoc(userID, docMealPlan, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SaveMealPlan 儲存餐期計畫
func (s *MemoryStore) SaveMealPlan(ctx context.Context, userID string, entries []common.MealPlanEntry) error {
	return s.setDoc(userID, docMealPlan, entries)
}

// Users 回傳所有寫入過資料的使用者
func (s *MemoryStore) Users(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var users []string
	for key := range s.docs {
		for i := len(key) - 1; i >= 0; i-- {
			if key[i] == ':' {
				userID := key[:i]
				if _, ok := seen[userID]; !ok {
					seen[userID] = struct{}{}
					users = append(users, userID)
				}
				break
			}
		}
	}
	return users, nil
}

// Close 清空儲存
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = make(map[string][]byte)
	return nil
}
