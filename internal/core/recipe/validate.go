package recipe

import (
	"fmt"
	"strings"

	"fridgechef/internal/pkg/common"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// recipeRules 遠端食譜的形狀規則
// 驗證採寬鬆策略，只擋明顯壞掉的回應，不追求完美資料
type recipeRules struct {
	Name              string   `validate:"required,min=2,max=120"`
	Time              string   `validate:"required"`
	Difficulty        string   `validate:"required,oneof=Easy Medium Hard"`
	Calories          int      `validate:"gte=0,lte=5000"`
	NutritionBenefits string   `validate:"required"`
	UsedIngredients   []string `validate:"required,min=1,dive,required"`
	Ingredients       []string `validate:"required,min=1"`
}

// ValidateEntry 檢查單份食譜是否可用
// 回傳不合格原因清單，空清單即通過
func ValidateEntry(e common.CatalogEntry) []string {
	rules := recipeRules{
		Name:              strings.TrimSpace(e.Name),
		Time:              strings.TrimSpace(e.Time),
		Difficulty:        e.Difficulty,
		Calories:          e.Calories,
		NutritionBenefits: strings.TrimSpace(e.NutritionBenefits),
		UsedIngredients:   e.UsedIngredients,
		Ingredients:       e.Ingredients,
	}

	var reasons []string
	if err := validate.Struct(rules); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				reasons = append(reasons, fmt.Sprintf("%s failed %s rule", fe.Field(), fe.Tag()))
			}
		} else {
			reasons = append(reasons, err.Error())
		}
	}

	if len(e.Instructions) == 0 {
		reasons = append(reasons, "Instructions is empty")
	}
	for i, step := range e.Instructions {
		if strings.TrimSpace(step.Title) == "" {
			reasons = append(reasons, fmt.Sprintf("Instructions[%d] has no title", i))
		}
		if strings.TrimSpace(step.Detail) == "" {
			reasons = append(reasons, fmt.Sprintf("Instructions[%d] has no detail", i))
		}
	}

	return reasons
}
