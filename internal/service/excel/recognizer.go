package excel

import (
	"regexp"
	"strings"

	"moonsales/internal/model"
)

// SheetNames 三张工作表的约定名称
type SheetNames struct {
	Quantity   string
	Cumulative string
	Growth     string
}

// Name 按角色取约定名称
func (n SheetNames) Name(kind model.SheetKind) string {
	switch kind {
	case model.SheetKindQuantity:
		return n.Quantity
	case model.SheetKindCumulative:
		return n.Cumulative
	case model.SheetKindGrowth:
		return n.Growth
	}
	return ""
}

// Recognizer 按名称识别工作簿中的三张工作表
type Recognizer struct {
	names        SheetNames
	whitespaceRe *regexp.Regexp
}

// NewRecognizer 创建识别器
func NewRecognizer(names SheetNames) *Recognizer {
	return &Recognizer{
		names:        names,
		whitespaceRe: regexp.MustCompile(`\s+`),
	}
}

// Resolve 为每个角色挑选工作表：先精确匹配，再退回包含匹配
// "累計每週銷售數量" 包含 "每週銷售數量"，所以精确匹配必须先于包含匹配全部完成。
func (r *Recognizer) Resolve(sheetList []string) map[model.SheetKind]string {
	result := make(map[model.SheetKind]string, len(model.SheetKinds))
	used := make(map[string]struct{}, len(sheetList))

	for _, kind := range model.SheetKinds {
		want := r.normalize(r.names.Name(kind))
		for _, name := range sheetList {
			if want != "" && r.normalize(name) == want {
				result[kind] = name
				used[name] = struct{}{}
				break
			}
		}
	}

	for _, kind := range model.SheetKinds {
		if _, ok := result[kind]; ok {
			continue
		}
		want := r.normalize(r.names.Name(kind))
		if want == "" {
			continue
		}
		best := ""
		for _, name := range sheetList {
			if _, taken := used[name]; taken {
				continue
			}
			if !strings.Contains(r.normalize(name), want) || r.claimedByLonger(name, want) {
				continue
			}
			// 名称越短越接近约定名
			if best == "" || len(name) < len(best) {
				best = name
			}
		}
		if best != "" {
			result[kind] = best
			used[best] = struct{}{}
		}
	}
	return result
}

func (r *Recognizer) normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "（", "(")
	s = strings.ReplaceAll(s, "）", ")")
	return r.whitespaceRe.ReplaceAllString(s, "")
}

// claimedByLonger 候选名包含另一个更长的约定名时，归属那个角色
// 例如 "累計每週銷售數量(2024)" 不能被当作 "每週銷售數量"
func (r *Recognizer) claimedByLonger(name, want string) bool {
	n := r.normalize(name)
	for _, kind := range model.SheetKinds {
		other := r.normalize(r.names.Name(kind))
		if len(other) > len(want) && strings.Contains(other, want) && strings.Contains(n, other) {
			return true
		}
	}
	return false
}
