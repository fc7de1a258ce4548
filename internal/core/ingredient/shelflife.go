package ingredient

import (
	"sort"
	"strings"
	"time"
)

// DefaultShelfLifeDays 查不到保存期限時的預設值
const DefaultShelfLifeDays = 14

// 緊迫度門檻（天）
// 庫存標記與過期提醒郵件共用這組常數，避免兩邊閾值漂移
const (
	CriticalDays = 1 // 緊迫度 critical
	UrgentDays   = 3 // 緊迫度 urgent
	WarningDays  = 7 // 緊迫度 warning

	// NotifyDays 過期提醒郵件門檻
	NotifyDays = 2
)

// Urgency 緊迫度分級
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyUrgent   Urgency = "urgent"
	UrgencyWarning  Urgency = "warning"
	UrgencyNormal   Urgency = "normal"
)

// shelfLifeTable 保存期限表（天），鍵為標準食材鍵
var shelfLifeTable = map[string]int{
	// 蔬菜
	"tomato":      7,
	"onion":       30,
	"garlic":      60,
	"potato":      21,
	"carrot":      21,
	"lettuce":     5,
	"cucumber":    7,
	"broccoli":    5,
	"spinach":     4,
	"bell pepper": 10,
	"mushroom":    5,
	"cabbage":     14,
	"corn":        3,
	"celery":      14,
	"zucchini":    7,
	"eggplant":    7,

	// 水果
	"apple":      30,
	"banana":     5,
	"lemon":      21,
	"lime":       21,
	"orange":     14,
	"strawberry": 3,
	"avocado":    4,
	"grape":      7,

	// 穀物
	"rice":     180,
	"pasta":    365,
	"bread":    5,
	"flour":    240,
	"oats":     365,
	"tortilla": 14,
	"quinoa":   365,

	// 乳製品
	"milk":   7,
	"cheese": 21,
	"butter": 60,
	"yogurt": 10,
	"cream":  7,

	// 蛋白質
	"egg":     28,
	"chicken": 2,
	"beef":    3,
	"pork":    3,
	"bacon":   7,
	"fish":    2,
	"shrimp":  2,
	"tofu":    5,
	"ham":     5,
	"sausage": 7,
	"beans":   5,

	// 香草
	"basil":    4,
	"cilantro": 5,
	"parsley":  7,
	"mint":     5,
	"rosemary": 10,
	"thyme":    10,

	// 辛香料
	"ginger":       21,
	"chili":        10,
	"black pepper": 365,
	"cinnamon":     365,
	"paprika":      365,

	// 調味料
	"soy sauce":  365,
	"olive oil":  365,
	"ketchup":    180,
	"mayonnaise": 60,
	"mustard":    180,
	"vinegar":    365,
	"honey":      365,
	"salt":       365,
	"sugar":      365,
	"salsa":      14,

	// 其他
	"chocolate": 180,
	"peanut":    90,
	"seaweed":   180,
}

// shelfLifeKeys 排序後的表鍵，模糊比對結果才可重現
var shelfLifeKeys = func() []string {
	keys := make([]string, 0, len(shelfLifeTable))
	for k := range shelfLifeTable {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}()

// Estimate 保存期限估算結果
type Estimate struct {
	ExpiryDate    time.Time
	DaysLeft      int
	ShelfLifeDays int
}

// ShelfLifeDays 查詢保存期限（天）
// 先精確比對，再做雙向子字串模糊比對，最後退回預設 14 天
func ShelfLifeDays(name string) int {
	key := strings.ToLower(strings.TrimSpace(name))
	if days, ok := shelfLifeTable[key]; ok {
		return days
	}
	for _, tableKey := range shelfLifeKeys {
		if strings.Contains(key, tableKey) || strings.Contains(tableKey, key) {
			return shelfLifeTable[tableKey]
		}
	}
	return DefaultShelfLifeDays
}

// EstimateExpiry 依加入時間計算到期日與剩餘天數
func EstimateExpiry(name string, addedDate time.Time) Estimate {
	days := ShelfLifeDays(name)
	expiry := addedDate.AddDate(0, 0, days)
	return Estimate{
		ExpiryDate:    expiry,
		DaysLeft:      DaysLeft(expiry, time.Now()),
		ShelfLifeDays: days,
	}
}

// DaysLeft 計算剩餘天數
// 兩端都截斷到當日零點再取差，過期一律回傳 0 不出現負數
func DaysLeft(expiry, now time.Time) int {
	expiryMidnight := truncateToMidnight(expiry)
	todayMidnight := truncateToMidnight(now)

	diff := expiryMidnight.Sub(todayMidnight)
	days := int((diff + 24*time.Hour - 1) / (24 * time.Hour))
	if days < 0 {
		return 0
	}
	return days
}

func truncateToMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// UrgencyOf 依剩餘天數分級，驅動提醒與介面標記
func UrgencyOf(daysLeft int) Urgency {
	switch {
	case daysLeft <= CriticalDays:
		return UrgencyCritical
	case daysLeft <= UrgentDays:
		return UrgencyUrgent
	case daysLeft <= WarningDays:
		return UrgencyWarning
	default:
		return UrgencyNormal
	}
}

// ShouldNotify 是否達到過期提醒郵件門檻
func ShouldNotify(daysLeft int) bool {
	return daysLeft <= NotifyDays
}
