package recipe

import (
	"sort"
	"strings"

	"fridgechef/internal/pkg/common"
)

// 相似度分群預設參數
const (
	DefaultSimilarityThreshold = 0.8
	DefaultMaxPerCluster       = 2
)

// FilterSimilar 以預設參數過濾近似重複的食譜
func FilterSimilar(recipes []common.GeneratedRecipe) []common.GeneratedRecipe {
	return filterSimilar(recipes, DefaultSimilarityThreshold, DefaultMaxPerCluster)
}

// filterSimilar 依符合度由高到低排序（同分維持原順序），逐一與所有已保留的
// signature 比對 Jaccard 相似度，達門檻的已保留份數達上限就略過
func filterSimilar(recipes []common.GeneratedRecipe, threshold float64, maxPerCluster int) []common.GeneratedRecipe {
	sorted := make([]common.GeneratedRecipe, len(recipes))
	copy(sorted, recipes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MatchPercentage > sorted[j].MatchPercentage
	})

	var selected []map[string]struct{}
	var out []common.GeneratedRecipe

	for _, r := range sorted {
		sig := signatureSet(r.UsedIngredients)

		similar := 0
		for _, s := range selected {
			if jaccard(sig, s) >= threshold {
				similar++
			}
		}
		if similar >= maxPerCluster {
			continue
		}
		selected = append(selected, sig)
		out = append(out, r)
	}

	return out
}

// signatureSet 正規化 signature 為小寫集合
func signatureSet(signature []string) map[string]struct{} {
	set := make(map[string]struct{}, len(signature))
	for _, s := range signature {
		set[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	return set
}

// jaccard 兩個集合的交集除以聯集，空集合視為完全相似
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 1
	}
	return float64(inter) / float64(union)
}
