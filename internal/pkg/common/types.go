package common

import (
	"strings"
	"time"
)

// DetectionMethod 食材偵測方式
type DetectionMethod string

const (
	DetectionText    DetectionMethod = "TEXT"    // 文字偵測
	DetectionObject  DetectionMethod = "OBJECT"  // 物件定位
	DetectionLabel   DetectionMethod = "LABEL"   // 標籤偵測
	DetectionContext DetectionMethod = "CONTEXT" // 上下文推斷
	DetectionDemo    DetectionMethod = "DEMO"    // 示範模式
)

// DetectedIngredient 影像辨識產出的暫時性食材
// 只有 Name（正規化後）會進入持久儲存
type DetectedIngredient struct {
	RawLabel   string          `json:"raw_label"`
	Name       string          `json:"name"`
	Confidence float64         `json:"confidence"`
	Category   string          `json:"category"`
	Method     DetectionMethod `json:"detection_method"`
}

// InventoryItem 庫存項目
type InventoryItem struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Quantity      float64   `json:"quantity"`
	Unit          string    `json:"unit"`
	Category      string    `json:"category"`
	AddedDate     time.Time `json:"added_date"`
	ExpiryDate    time.Time `json:"expiry_date"`
	ShelfLifeDays int       `json:"shelf_life_days"`
	DaysLeft      int       `json:"days_left"` // 讀取時重新計算
}

// WasteItem 待處理（即期）項目
type WasteItem struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	AddedDate  time.Time `json:"added_date"`
	ExpiryDate time.Time `json:"expiry_date"`
	DaysLeft   int       `json:"days_left"`
}

// 食譜難度
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// InstructionStep 食譜步驟
type InstructionStep struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// CatalogEntry 食譜目錄項目
// UsedIngredients 是比對用的精簡食材清單（signature）
// Ingredients 是顯示用的完整食材清單，兩者用途不同
type CatalogEntry struct {
	Name              string            `json:"name"`
	Time              string            `json:"time"`
	Difficulty        string            `json:"difficulty"`
	Calories          int               `json:"calories"`
	NutritionBenefits string            `json:"nutrition_benefits"`
	UsedIngredients   []string          `json:"used_ingredients"`
	Ingredients       []string          `json:"ingredients"`
	Instructions      []InstructionStep `json:"instructions"`
}

// GeneratedRecipe 生成的食譜，附上比對結果與圖片
type GeneratedRecipe struct {
	CatalogEntry
	ID                 string    `json:"id"`
	MatchPercentage    int       `json:"match_percentage"`
	MissingIngredients []string  `json:"missing_ingredients"`
	Image              string    `json:"image"`
	CreatedAt          time.Time `json:"created_at"`
}

// MealSlot 餐別
type MealSlot string

const (
	MealBreakfast MealSlot = "Breakfast"
	MealLunch     MealSlot = "Lunch"
	MealDinner    MealSlot = "Dinner"
)

// ValidMealSlot 檢查餐別是否合法
func ValidMealSlot(s MealSlot) bool {
	switch s {
	case MealBreakfast, MealLunch, MealDinner:
		return true
	}
	return false
}

// 星期名稱（餐期計畫使用）
var WeekDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ValidWeekDay 檢查星期名稱是否合法
func ValidWeekDay(day string) bool {
	for _, d := range WeekDays {
		if d == day {
			return true
		}
	}
	return false
}

// MealPlanEntry 餐期計畫項目，(day, slot) 對應一份食譜
type MealPlanEntry struct {
	Day        string   `json:"day"`
	Slot       MealSlot `json:"slot"`
	RecipeID   string   `json:"recipe_id"`
	RecipeName string   `json:"recipe_name"`
	Image      string   `json:"image,omitempty"`
}

// FormatIngredientList 將食材清單格式化為 prompt 用字串
func FormatIngredientList(names []string) string {
	var sb strings.Builder
	for _, name := range names {
		sb.WriteString("- ")
		sb.WriteString(name)
		sb.WriteString("\n")
	}
	return sb.String()
}
