package dataset

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/rushteam/moviekit/core"
)

// 各模型输出 CSV 的分数列名。
const (
	ColumnEstimatedRating = "estimated_rating" // SVD / User-CF
	ColumnSimilarityScore = "similarity_score" // Content
	ColumnAverageRating   = "average_rating"   // Cold-Start
)

// WriteRecommendations 将一份排好序的推荐列表写为 CSV：
//
//	movie_id,title,<scoreColumn>
//
// 列表顺序即文件顺序，分数保留完整精度。
func WriteRecommendations(path, scoreColumn string, items []*core.Item) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"movie_id", "title", scoreColumn}); err != nil {
		return err
	}
	for _, it := range items {
		row := []string{
			strconv.FormatInt(it.ID, 10),
			it.Title,
			strconv.FormatFloat(it.Score, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
