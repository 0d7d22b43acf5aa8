package core

import "github.com/rushteam/moviekit/pkg/utils"

// Item 是推荐链路中的统一承载结构：一条电影候选的分数、标题与标签。
// Score 的语义由产出它的模型决定（预测评分 / 相似度 / 平均分），
// 排序约定统一为“分数越大越靠前，同分时 movie_id 升序”。
type Item struct {
	ID     int64
	Title  string
	Score  float64
	Labels map[string]utils.Label
}

func NewItem(id int64) *Item {
	return &Item{
		ID:     id,
		Score:  0,
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// Less 是候选列表的全序比较：分数降序，同分时 ID 升序，保证结果可复现。
func Less(a, b *Item) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.ID < b.ID
}
