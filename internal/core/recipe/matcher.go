package recipe

import (
	"math"
	"strings"
)

// DefaultMinMatchPercentage 預設符合度門檻
const DefaultMinMatchPercentage = 30

// MatchResult 單份食譜的比對結果
type MatchResult struct {
	Percentage int
	Missing    []string
}

// Match 計算庫存對食譜 signature 的覆蓋率
// 比對用不分大小寫的字面比對，signature 為空時視為 0 分
func Match(signature, available []string) MatchResult {
	have := make(map[string]struct{}, len(available))
	for _, name := range available {
		have[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}

	hits := 0
	var missing []string
	for _, sig := range signature {
		key := strings.ToLower(strings.TrimSpace(sig))
		if _, ok := have[key]; ok {
			hits++
		} else {
			missing = append(missing, sig)
		}
	}

	pct := int(math.Round(100 * float64(hits) / float64(max(1, len(signature)))))
	return MatchResult{
		Percentage: pct,
		Missing:    missing,
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
