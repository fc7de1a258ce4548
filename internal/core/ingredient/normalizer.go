package ingredient

import (
	"strings"
	"unicode"
)

// Normalize 將雜訊標籤收斂為標準食材鍵
// 規則依優先序：別名精確比對 > 斷詞比對 > 整句子字串比對
// 找不到不是錯誤，回傳 ok=false 由呼叫端忽略該筆偵測
func Normalize(raw string) (string, bool) {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return "", false
	}

	// 忽略清單優先於一切比對
	if _, ignored := ignoreList[text]; ignored {
		return "", false
	}

	// (a) 別名精確比對
	if key, ok := aliasExact[text]; ok {
		return key, true
	}

	// (b) 斷詞比對：長度 > 2 的詞與別名互相包含即視為命中
	for _, token := range tokenize(text) {
		if key, ok := aliasExact[token]; ok {
			return key, true
		}
		for _, ref := range aliasOrdered {
			if strings.Contains(ref.alias, token) || strings.Contains(token, ref.alias) {
				return ref.key, true
			}
		}
	}

	// (c) 整句包含於別名中
	for _, ref := range aliasOrdered {
		if strings.Contains(ref.alias, text) {
			return ref.key, true
		}
	}

	return "", false
}

// NormalizeAll 批次正規化並去重，保留輸入順序
func NormalizeAll(raws []string) []string {
	seen := make(map[string]struct{}, len(raws))
	var out []string
	for _, raw := range raws {
		key, ok := Normalize(raw)
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

// tokenize 以空白與標點斷詞，只保留長度 > 2 的詞
func tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
