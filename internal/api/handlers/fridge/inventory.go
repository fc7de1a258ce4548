package fridge

import (
	"net/http"
	"time"

	"fridgechef/internal/core/ingredient"
	"fridgechef/internal/core/inventory"
	"fridgechef/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// InventoryItemView 附緊迫度標記的庫存項目
type InventoryItemView struct {
	common.InventoryItem
	Urgency ingredient.Urgency `json:"urgency"`
}

// AddItemRequest 手動加入食材請求
type AddItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// UpdateItemRequest 更新庫存項目請求
// expiry_date 可選，格式 2006-01-02，用於手動修正到期日
type UpdateItemRequest struct {
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	ExpiryDate string  `json:"expiry_date"`
}

func toViews(items []common.InventoryItem) []InventoryItemView {
	views := make([]InventoryItemView, len(items))
	for i, it := range items {
		views[i] = InventoryItemView{
			InventoryItem: it,
			Urgency:       ingredient.UrgencyOf(it.DaysLeft),
		}
	}
	return views
}

// HandleListInventory 取得庫存
func HandleListInventory(svc *inventory.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context(), userID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": toViews(items)})
	}
}

// HandleAddItem 手動加入食材
func HandleAddItem(svc *inventory.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "缺少 name 欄位")
			return
		}

		item, err := svc.Add(c.Request.Context(), userID(c), req.Name, req.Quantity, req.Unit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, InventoryItemView{
			InventoryItem: item,
			Urgency:       ingredient.UrgencyOf(item.DaysLeft),
		})
	}
}

// HandleUpdateItem 更新數量、單位或到期日
func HandleUpdateItem(svc *inventory.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "請求格式錯誤")
			return
		}

		var expiry *time.Time
		if req.ExpiryDate != "" {
			parsed, err := time.Parse("2006-01-02", req.ExpiryDate)
			if err != nil {
				respondBadRequest(c, "expiry_date 格式須為 2006-01-02")
				return
			}
			expiry = &parsed
		}

		item, err := svc.Update(c.Request.Context(), userID(c), c.Param("id"), req.Quantity, req.Unit, expiry)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, InventoryItemView{
			InventoryItem: item,
			Urgency:       ingredient.UrgencyOf(item.DaysLeft),
		})
	}
}

// HandleDeleteItem 刪除庫存項目
func HandleDeleteItem(svc *inventory.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// HandleMoveToWaste 將庫存項目移入待處理區
func HandleMoveToWaste(svc *inventory.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		waste, err := svc.MoveToWaste(c.Request.Context(), userID(c), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, waste)
	}
}
