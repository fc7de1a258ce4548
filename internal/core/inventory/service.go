package inventory

import (
	"context"
	"strings"
	"time"

	"fridgechef/internal/core/ingredient"
	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/infrastructure/store"
	"fridgechef/internal/pkg/common"
	"fridgechef/internal/pkg/mail"

	"go.uber.org/zap"
)

// RecipeSuggester 提供即期食材的食譜建議，過期掃描郵件使用
type RecipeSuggester interface {
	Suggest(ctx context.Context, ingredients []string) []common.GeneratedRecipe
}

// Service 庫存服務
// 庫存與待處理區都是每位使用者一份文件，讀取時重新計算剩餘天數
type Service struct {
	config  *config.Config
	store   store.Store
	mailer  mail.Mailer
	suggest RecipeSuggester
}

// NewService 創建庫存服務，suggester 可為 nil（不寄建議郵件）
func NewService(cfg *config.Config, st store.Store, mailer mail.Mailer, suggester RecipeSuggester) *Service {
	return &Service{
		config:  cfg,
		store:   st,
		mailer:  mailer,
		suggest: suggester,
	}
}

// AddDetected 將影像辨識結果併入庫存
// 已存在的同名項目不重複加入，回傳更新後的完整庫存
func (s *Service) AddDetected(ctx context.Context, userID string, detected []common.DetectedIngredient) ([]common.InventoryItem, error) {
	items, err := s.store.GetInventory(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing := make(map[string]struct{}, len(items))
	for _, it := range items {
		existing[it.Name] = struct{}{}
	}

	now := time.Now()
	added := 0
	for _, d := range detected {
		if _, dup := existing[d.Name]; dup {
			continue
		}
		existing[d.Name] = struct{}{}
		items = append(items, newItem(d.Name, 1, "pcs", d.Category, now))
		added++
	}

	wasEmpty := len(items) == added
	if err := s.saveInventory(ctx, userID, items); err != nil {
		return nil, err
	}
	if wasEmpty && added > 0 {
		s.sendWelcome(ctx, userID)
	}

	common.LogInfo("辨識結果已併入庫存",
		zap.String("user_id", userID),
		zap.Int("detected", len(detected)),
		zap.Int("added", added),
	)
	return refreshDaysLeft(items), nil
}

// Add 手動加入食材
// 名稱能正規化就收斂到標準鍵，不能就以小寫原文入庫
func (s *Service) Add(ctx context.Context, userID, name string, quantity float64, unit string) (common.InventoryItem, error) {
	canonical, ok := ingredient.Normalize(name)
	if !ok {
		canonical = strings.ToLower(strings.TrimSpace(name))
	}
	if canonical == "" {
		return common.InventoryItem{}, common.NewError(common.ErrCodeInvalidRequest, "食材名稱不可為空", common.ErrInvalidRequest.Status, nil)
	}
	if quantity <= 0 {
		quantity = 1
	}

	items, err := s.store.GetInventory(ctx, userID)
	if err != nil {
		return common.InventoryItem{}, err
	}

	wasEmpty := len(items) == 0
	item := newItem(canonical, quantity, unit, string(ingredient.CategoryOf(canonical)), time.Now())
	items = append(items, item)

	if err := s.saveInventory(ctx, userID, items); err != nil {
		return common.InventoryItem{}, err
	}
	if wasEmpty {
		s.sendWelcome(ctx, userID)
	}

	item.DaysLeft = ingredient.DaysLeft(item.ExpiryDate, time.Now())
	return item, nil
}

// Update 更新數量、單位或到期日
// 手動改到期日時連帶重算保存天數與剩餘天數
func (s *Service) Update(ctx context.Context, userID, itemID string, quantity float64, unit string, expiry *time.Time) (common.InventoryItem, error) {
	items, err := s.store.GetInventory(ctx, userID)
	if err != nil {
		return common.InventoryItem{}, err
	}

	idx := indexOf(items, itemID)
	if idx < 0 {
		return common.InventoryItem{}, common.ErrItemNotFound
	}

	if quantity > 0 {
		items[idx].Quantity = quantity
	}
	if unit != "" {
		items[idx].Unit = unit
	}
	if expiry != nil {
		items[idx].ExpiryDate = *expiry
		items[idx].ShelfLifeDays = ingredient.DaysLeft(*expiry, items[idx].AddedDate)
	}

	if err := s.saveInventory(ctx, userID, items); err != nil {
		return common.InventoryItem{}, err
	}

	updated := items[idx]
	updated.DaysLeft = ingredient.DaysLeft(updated.ExpiryDate, time.Now())
	return updated, nil
}

// Delete 刪除庫存項目
func (s *Service) Delete(ctx context.Context, userID, itemID string) error {
	items, err := s.store.GetInventory(ctx, userID)
	if err != nil {
		return err
	}

	idx := indexOf(items, itemID)
	if idx < 0 {
		return common.ErrItemNotFound
	}

	items = append(items[:idx], items[idx+1:]...)
	return s.saveInventory(ctx, userID, items)
}

// List 取得庫存，剩餘天數以當下時間重算
func (s *Service) List(ctx context.Context, userID string) ([]common.InventoryItem, error) {
	items, err := s.store.GetInventory(ctx, userID)
	if err != nil {
		return nil, err
	}
	return refreshDaysLeft(items), nil
}

// IngredientNames 庫存中的食材名稱清單，生成食譜時使用
func (s *Service) IngredientNames(ctx context.Context, userID string) ([]string, error) {
	items, err := s.store.GetInventory(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return names, nil
}

// MoveToWaste 將庫存項目移入待處理區
func (s *Service) MoveToWaste(ctx context.Context, userID, itemID string) (common.WasteItem, error) {
	items, err := s.store.GetInventory(ctx, userID)
	if err != nil {
		return common.WasteItem{}, err
	}

	idx := indexOf(items, itemID)
	if idx < 0 {
		return common.WasteItem{}, common.ErrItemNotFound
	}

	moved := items[idx]
	items = append(items[:idx], items[idx+1:]...)

	wasteItems, err := s.store.GetWasteBin(ctx, userID)
	if err != nil {
		return common.WasteItem{}, err
	}
	waste := common.WasteItem{
		ID:         moved.ID,
		Name:       moved.Name,
		Category:   moved.Category,
		AddedDate:  moved.AddedDate,
		ExpiryDate: moved.ExpiryDate,
		DaysLeft:   ingredient.DaysLeft(moved.ExpiryDate, time.Now()),
	}
	wasteItems = append(wasteItems, waste)

	if err := s.store.SaveWasteBin(ctx, userID, wasteItems); err != nil {
		return common.WasteItem{}, err
	}
	if err := s.saveInventory(ctx, userID, items); err != nil {
		return common.WasteItem{}, err
	}

	common.LogInfo("項目移入待處理區",
		zap.String("user_id", userID),
		zap.String("item", moved.Name),
	)
	return waste, nil
}

// WasteBin 取得待處理區
func (s *Service) WasteBin(ctx context.Context, userID string) ([]common.WasteItem, error) {
	items, err := s.store.GetWasteBin(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range items {
		items[i].DaysLeft = ingredient.DaysLeft(items[i].ExpiryDate, now)
	}
	return items, nil
}

// RemoveFromWaste 從待處理區移除（已處理或已丟棄）
func (s *Service) RemoveFromWaste(ctx context.Context, userID, itemID string) error {
	items, err := s.store.GetWasteBin(ctx, userID)
	if err != nil {
		return err
	}

	for i, it := range items {
		if it.ID == itemID {
			items = append(items[:i], items[i+1:]...)
			return s.store.SaveWasteBin(ctx, userID, items)
		}
	}
	return common.ErrItemNotFound
}

// WasteIngredientNames 待處理區的食材名稱，剩食食譜使用
func (s *Service) WasteIngredientNames(ctx context.Context, userID string) ([]string, error) {
	items, err := s.store.GetWasteBin(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return names, nil
}

// StartExpirySweep 啟動週期性過期掃描，ctx 取消即停止
func (s *Service) StartExpirySweep(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.config.Sweep.Interval)
		defer ticker.Stop()

		common.LogInfo("過期掃描已啟動", zap.Duration("interval", s.config.Sweep.Interval))
		for {
			select {
			case <-ticker.C:
				s.SweepOnce(ctx)
			case <-ctx.Done():
				common.LogInfo("過期掃描已停止")
				return
			}
		}
	}()
}

// SweepOnce 掃描所有使用者，寄出即期食材提醒
// 使用者識別碼就是信箱，不像信箱的略過不寄
func (s *Service) SweepOnce(ctx context.Context) {
	users, err := s.store.Users(ctx)
	if err != nil {
		common.LogError("過期掃描讀取使用者失敗", zap.Error(err))
		return
	}

	for _, userID := range users {
		items, err := s.List(ctx, userID)
		if err != nil {
			common.LogWarn("過期掃描讀取庫存失敗",
				zap.Error(err),
				zap.String("user_id", userID),
			)
			continue
		}

		var expiring []common.InventoryItem
		for _, it := range items {
			if ingredient.ShouldNotify(it.DaysLeft) {
				expiring = append(expiring, it)
			}
		}
		if len(expiring) == 0 {
			continue
		}

		if !strings.Contains(userID, "@") {
			common.LogDebug("使用者識別碼非信箱，略過提醒",
				zap.String("user_id", userID),
				zap.Int("expiring", len(expiring)),
			)
			continue
		}

		if err := s.mailer.SendExpiryReminder(ctx, userID, expiring); err != nil {
			common.LogWarn("提醒郵件寄送失敗",
				zap.Error(err),
				zap.String("user_id", userID),
			)
			continue
		}

		// 提醒之外附上能消化即期食材的食譜建議
		if s.suggest == nil {
			continue
		}
		names := make([]string, 0, len(expiring))
		for _, it := range expiring {
			names = append(names, it.Name)
		}
		suggested := s.suggest.Suggest(ctx, names)
		if len(suggested) == 0 {
			continue
		}
		if err := s.mailer.SendRecipeSuggestion(ctx, userID, suggested); err != nil {
			common.LogWarn("建議郵件寄送失敗",
				zap.Error(err),
				zap.String("user_id", userID),
			)
		}
	}
}

// sendWelcome 首次建立庫存時寄歡迎信，識別碼須為信箱
func (s *Service) sendWelcome(ctx context.Context, userID string) {
	if !strings.Contains(userID, "@") {
		return
	}
	if err := s.mailer.SendWelcome(ctx, userID); err != nil {
		common.LogWarn("歡迎郵件寄送失敗",
			zap.Error(err),
			zap.String("user_id", userID),
		)
	}
}

// saveInventory 儲存庫存並同步更新食材名稱文件
func (s *Service) saveInventory(ctx context.Context, userID string, items []common.InventoryItem) error {
	if err := s.store.SaveInventory(ctx, userID, items); err != nil {
		return err
	}
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return s.store.SaveIngredients(ctx, userID, names)
}

// newItem 建立庫存項目並估算到期日
func newItem(name string, quantity float64, unit, category string, addedDate time.Time) common.InventoryItem {
	if unit == "" {
		unit = "pcs"
	}
	est := ingredient.EstimateExpiry(name, addedDate)
	return common.InventoryItem{
		ID:            common.GenerateUUID(),
		Name:          name,
		Quantity:      quantity,
		Unit:          unit,
		Category:      category,
		AddedDate:     addedDate,
		ExpiryDate:    est.ExpiryDate,
		ShelfLifeDays: est.ShelfLifeDays,
		DaysLeft:      est.DaysLeft,
	}
}

func indexOf(items []common.InventoryItem, itemID string) int {
	for i, it := range items {
		if it.ID == itemID {
			return i
		}
	}
	return -1
}

func refreshDaysLeft(items []common.InventoryItem) []common.InventoryItem {
	now := time.Now()
	for i := range items {
		items[i].DaysLeft = ingredient.DaysLeft(items[i].ExpiryDate, now)
	}
	return items
}
