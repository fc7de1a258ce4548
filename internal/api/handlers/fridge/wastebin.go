package fridge

import (
	"net/http"

	"fridgechef/internal/core/inventory"

	"github.com/gin-gonic/gin"
)

// HandleListWasteBin 取得待處理區
func HandleListWasteBin(svc *inventory.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.WasteBin(c.Request.Context(), userID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

// HandleRemoveFromWaste 從待處理區移除
func HandleRemoveFromWaste(svc *inventory.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.RemoveFromWaste(c.Request.Context(), userID(c), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
