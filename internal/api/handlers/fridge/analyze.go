package fridge

import (
	"net/http"

	"fridgechef/internal/core/inventory"
	"fridgechef/internal/core/vision"
	"fridgechef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AnalyzeRequest 冰箱照片分析請求
type AnalyzeRequest struct {
	Image string `json:"image" binding:"required"`
}

// AnalyzeResponse 分析結果：辨識到的食材與更新後的庫存
type AnalyzeResponse struct {
	Detected  []common.DetectedIngredient `json:"detected"`
	Inventory []common.InventoryItem      `json:"inventory"`
}

// HandleAnalyze 分析冰箱照片並把辨識結果併入庫存
func HandleAnalyze(visionSvc *vision.Service, inventorySvc *inventory.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "缺少 image 欄位")
			return
		}

		uid := userID(c)
		detected, err := visionSvc.AnalyzeImage(c.Request.Context(), req.Image)
		if err != nil {
			common.LogError("照片分析失敗",
				zap.Error(err),
				zap.String("user_id", uid),
			)
			respondError(c, err)
			return
		}

		items, err := inventorySvc.AddDetected(c.Request.Context(), uid, detected)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, AnalyzeResponse{
			Detected:  detected,
			Inventory: items,
		})
	}
}
