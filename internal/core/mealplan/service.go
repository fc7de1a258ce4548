package mealplan

import (
	"context"

	"fridgechef/internal/infrastructure/store"
	"fridgechef/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 餐期計畫服務
// 一週七天三餐，(day, slot) 為鍵，指派同格即覆蓋
type Service struct {
	store store.Store
}

// NewService 創建餐期計畫服務
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Get 取得整週餐期計畫
func (s *Service) Get(ctx context.Context, userID string) ([]common.MealPlanEntry, error) {
	return s.store.GetMealPlan(ctx, userID)
}

// Assign 將食譜指派到某天某餐
// 食譜必須存在於使用者最近一次生成的清單
func (s *Service) Assign(ctx context.Context, userID, day string, slot common.MealSlot, recipeID string) (common.MealPlanEntry, error) {
	if !common.ValidWeekDay(day) {
		return common.MealPlanEntry{}, common.NewError(common.ErrCodeInvalidRequest, "無效的星期名稱", common.ErrInvalidRequest.Status, nil)
	}
	if !common.ValidMealSlot(slot) {
		return common.MealPlanEntry{}, common.NewError(common.ErrCodeInvalidRequest, "無效的餐別", common.ErrInvalidRequest.Status, nil)
	}

	recipes, err := s.store.GetRecipes(ctx, userID)
	if err != nil {
		return common.MealPlanEntry{}, err
	}
	var target *common.GeneratedRecipe
	for i := range recipes {
		if recipes[i].ID == recipeID {
			target = &recipes[i]
			break
		}
	}
	if target == nil {
		return common.MealPlanEntry{}, common.ErrItemNotFound
	}

	entries, err := s.store.GetMealPlan(ctx, userID)
	if err != nil {
		return common.MealPlanEntry{}, err
	}

	entry := common.MealPlanEntry{
		Day:        day,
		Slot:       slot,
		RecipeID:   target.ID,
		RecipeName: target.Name,
		Image:      target.Image,
	}

	replaced := false
	for i := range entries {
		if entries[i].Day == day && entries[i].Slot == slot {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}

	if err := s.store.SaveMealPlan(ctx, userID, entries); err != nil {
		return common.MealPlanEntry{}, err
	}

	common.LogInfo("餐期計畫已更新",
		zap.String("user_id", userID),
		zap.String("day", day),
		zap.String("slot", string(slot)),
		zap.String("recipe", target.Name),
	)
	return entry, nil
}

// Remove 清空某天某餐
func (s *Service) Remove(ctx context.Context, userID, day string, slot common.MealSlot) error {
	if !common.ValidWeekDay(day) || !common.ValidMealSlot(slot) {
		return common.NewError(common.ErrCodeInvalidRequest, "無效的星期或餐別", common.ErrInvalidRequest.Status, nil)
	}

	entries, err := s.store.GetMealPlan(ctx, userID)
	if err != nil {
		return err
	}

	for i := range entries {
		if entries[i].Day == day && entries[i].Slot == slot {
			entries = append(entries[:i], entries[i+1:]...)
			return s.store.SaveMealPlan(ctx, userID, entries)
		}
	}
	return common.ErrItemNotFound
}
