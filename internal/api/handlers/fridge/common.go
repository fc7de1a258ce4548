package fridge

import (
	"errors"
	"net/http"

	"fridgechef/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// defaultUserID 未帶識別標頭時的匿名使用者
const defaultUserID = "default"

// userID 從標頭取出使用者識別碼
// 識別碼即信箱時才會收到過期提醒郵件
func userID(c *gin.Context) string {
	if id := c.GetHeader("X-User-ID"); id != "" {
		return id
	}
	return defaultUserID
}

// respondError 將錯誤轉為統一的錯誤回應
func respondError(c *gin.Context, err error) {
	var ce *common.CustomError
	if errors.As(err, &ce) {
		c.JSON(ce.Status, common.ErrorResponse{
			Code:    ce.Code,
			Message: ce.Message,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, common.ErrorResponse{
		Code:    common.ErrCodeInternalError,
		Message: "服務器內部錯誤",
	})
}

// respondBadRequest 參數錯誤回應
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, common.ErrorResponse{
		Code:    common.ErrCodeInvalidRequest,
		Message: message,
	})
}
