package utils

import (
	"regexp"
	"strings"

	"github.com/user/moovie-ingest/internal/model"
)

// 编剧署名中的括号说明，如 "John Smith (story)"
var reParens = regexp.MustCompile(`\((.*?)\)`)

// SplitList 拆分逗号分隔的字段，去掉空白、空项和 N/A
func SplitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" || item == model.NotAvailable {
			continue
		}
		items = append(items, item)
	}
	return items
}

// ParseCredit 从署名中取出括号说明，返回去掉括号后的姓名
func ParseCredit(credit string) (string, []string) {
	var qualifiers []string
	for _, m := range reParens.FindAllStringSubmatch(credit, -1) {
		if q := strings.TrimSpace(m[1]); q != "" {
			qualifiers = append(qualifiers, q)
		}
	}
	name := strings.Join(strings.Fields(reParens.ReplaceAllString(credit, " ")), " ")
	return name, qualifiers
}

// Credit 合并后的署名
type Credit struct {
	Name       string
	Qualifiers []string
}

// MergeCredits 拆分署名列表，同名的合并为一条，说明按出现顺序累加
func MergeCredits(s string) []Credit {
	var credits []Credit
	index := make(map[string]int)
	for _, item := range SplitList(s) {
		name, qualifiers := ParseCredit(item)
		if name == "" || name == model.NotAvailable {
			continue
		}
		if i, ok := index[name]; ok {
			credits[i].Qualifiers = append(credits[i].Qualifiers, qualifiers...)
			continue
		}
		index[name] = len(credits)
		credits = append(credits, Credit{Name: name, Qualifiers: qualifiers})
	}
	return credits
}
