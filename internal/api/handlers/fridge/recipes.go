package fridge

import (
	"io"
	"net/http"

	"fridgechef/internal/core/inventory"
	"fridgechef/internal/core/recipe"
	"fridgechef/internal/infrastructure/store"
	"fridgechef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GenerateResponse 生成結果
type GenerateResponse struct {
	Recipes []common.GeneratedRecipe `json:"recipes"`
}

// HandleGenerateRecipes 依庫存生成食譜
// 帶 ?stream=true 時改走 SSE，逐批推送 progress / batch_ready / done 事件
func HandleGenerateRecipes(generator *recipe.Service, inventorySvc *inventory.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := userID(c)
		names, err := inventorySvc.IngredientNames(c.Request.Context(), uid)
		if err != nil {
			respondError(c, err)
			return
		}
		generate(c, generator, uid, names)
	}
}

// HandleLeftoverRecipes 依待處理區食材生成剩食食譜
func HandleLeftoverRecipes(generator *recipe.Service, inventorySvc *inventory.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := userID(c)
		names, err := inventorySvc.WasteIngredientNames(c.Request.Context(), uid)
		if err != nil {
			respondError(c, err)
			return
		}
		generate(c, generator, uid, names)
	}
}

func generate(c *gin.Context, generator *recipe.Service, uid string, names []string) {
	if c.Query("stream") == "true" {
		streamEvents(c, generator, uid, names)
		return
	}

	recipes, err := generator.Generate(c.Request.Context(), uid, names)
	if err != nil {
		common.LogError("食譜生成失敗",
			zap.Error(err),
			zap.String("user_id", uid),
		)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, GenerateResponse{Recipes: recipes})
}

// streamEvents 以 SSE 推送漸進式生成事件
func streamEvents(c *gin.Context, generator *recipe.Service, uid string, names []string) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	events := generator.GenerateEvents(c.Request.Context(), uid, names)
	c.Stream(func(w io.Writer) bool {
		ev, ok := <-events
		if !ok {
			return false
		}
		if ev.Kind == recipe.EventFailed {
			c.SSEvent(string(ev.Kind), gin.H{"error": ev.Err.Error()})
			return false
		}
		c.SSEvent(string(ev.Kind), ev)
		return ev.Kind != recipe.EventDone
	})
}

// HandleListRecipes 取得最近一次生成的食譜
func HandleListRecipes(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		recipes, err := st.GetRecipes(c.Request.Context(), userID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, GenerateResponse{Recipes: recipes})
	}
}
