package fridge

import (
	"net/http"

	"fridgechef/internal/core/mealplan"
	"fridgechef/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// AssignMealRequest 指派餐期請求
type AssignMealRequest struct {
	Day      string          `json:"day" binding:"required"`
	Slot     common.MealSlot `json:"slot" binding:"required"`
	RecipeID string          `json:"recipe_id" binding:"required"`
}

// HandleGetMealPlan 取得整週餐期計畫
func HandleGetMealPlan(svc *mealplan.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := svc.Get(c.Request.Context(), userID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"entries": entries})
	}
}

// HandleAssignMeal 指派食譜到某天某餐
func HandleAssignMeal(svc *mealplan.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AssignMealRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "缺少 day / slot / recipe_id 欄位")
			return
		}

		entry, err := svc.Assign(c.Request.Context(), userID(c), req.Day, req.Slot, req.RecipeID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, entry)
	}
}

// HandleRemoveMeal 清空某天某餐
func HandleRemoveMeal(svc *mealplan.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		day := c.Param("day")
		slot := common.MealSlot(c.Param("slot"))
		if err := svc.Remove(c.Request.Context(), userID(c), day, slot); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
