package dataset

import "strings"

// Vocabulary 是 MovieLens 的固定类型词表（19 个），与预处理产出的 genres 列一致。
var Vocabulary = []string{
	"unknown", "Action", "Adventure", "Animation", "Children",
	"Comedy", "Crime", "Documentary", "Drama", "Fantasy",
	"Film-Noir", "Horror", "Musical", "Mystery", "Romance",
	"Sci-Fi", "Thriller", "War", "Western",
}

var knownGenres = func() map[string]bool {
	m := make(map[string]bool, len(Vocabulary))
	for _, g := range Vocabulary {
		m[g] = true
	}
	return m
}()

// IsKnownGenre 报告标签是否属于词表。大小写敏感。
func IsKnownGenre(g string) bool { return knownGenres[g] }

// ParseGenres 解析 '|' 连接的类型串为标签集合。
// 空串（无类型）返回空集合；空白片段被丢弃。
func ParseGenres(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
