package recall

import (
	"context"

	"github.com/rushteam/moviekit/core"
	"github.com/rushteam/moviekit/pipeline"
	"github.com/rushteam/moviekit/pkg/utils"
)

// Ranker 是能为用户产出 TopN 推荐的模型（model.SVD / model.UserCF 实现）。
type Ranker interface {
	Name() string
	TopN(userID int64, n int) []*core.Item
}

// ModelSource 把一个训练好的模型包装成召回源 / Pipeline Node。
// 模型训练完即只读，可被多请求并发调用。
type ModelSource struct {
	Model Ranker

	// TopN 召回条数，<= 0 时默认 20
	TopN int
}

func (r *ModelSource) Name() string        { return "recall.model" }
func (r *ModelSource) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *ModelSource) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *ModelSource) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Model == nil || rctx == nil {
		return nil, nil
	}

	topN := r.TopN
	if topN <= 0 {
		topN = 20
	}

	items := r.Model.TopN(rctx.UserID, topN)
	for _, it := range items {
		it.PutLabel("recall_source", utils.Label{Value: r.Model.Name(), Source: "recall"})
	}
	return items, nil
}
