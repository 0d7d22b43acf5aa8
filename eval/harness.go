package eval

import (
	"encoding/json"
	"math"
	"os"

	"github.com/rushteam/moviekit/dataset"
	"github.com/rushteam/moviekit/model"
)

// Metrics 是单个模型的评估结果，保留 4 位小数。
type Metrics struct {
	RMSE          float64 `json:"rmse"`
	PrecisionAt10 float64 `json:"precision_at_10"`
	NDCGAt10      float64 `json:"ndcg_at_10"`
}

// Report 是 模型名 -> 指标 的评估报告。
type Report map[string]Metrics

// Options 是评估流程的配置。
type Options struct {
	SplitRatio float64 // 测试集比例，默认 0.2
	Seed       int64   // 切分种子，默认 42
	K          int     // 排序指标的 K，默认 10
	Threshold  float64 // 相关阈值，默认 3.5
	SVD        model.SVDConfig
}

// DefaultOptions 返回默认评估配置。
func DefaultOptions() Options {
	return Options{
		SplitRatio: 0.2,
		Seed:       42,
		K:          10,
		Threshold:  3.5,
		SVD:        model.DefaultSVDConfig(),
	}
}

// Evaluate 在给定评分表上离线评估两个预测模型（UserCF 与 SVD）：
// 确定性随机切分 train/test，只在 train 上训练，
// 对每条测试交互收集 (user, movie, 真实分, 预测分)，计算三项指标。
// 同表同 seed 重复运行得到一致的切分、模型与指标。
// 交互太少不足以切出非空测试集时，在任何训练开始前报错。
func Evaluate(t *dataset.Table, opts Options) (Report, error) {
	if opts.SplitRatio == 0 {
		opts.SplitRatio = 0.2
	}
	if opts.K == 0 {
		opts.K = 10
	}
	if opts.Threshold == 0 {
		opts.Threshold = 3.5
	}

	train, test, err := dataset.Split(t, opts.SplitRatio, opts.Seed)
	if err != nil {
		return nil, err
	}
	trainTable, err := t.Subset(train)
	if err != nil {
		return nil, err
	}

	report := make(Report, 2)
	for _, p := range []model.Predictor{
		model.TrainUserCF(trainTable),
		model.TrainSVD(trainTable, opts.SVD),
	} {
		preds := make([]Prediction, 0, len(test))
		for _, in := range test {
			preds = append(preds, Prediction{
				UserID:    in.UserID,
				MovieID:   in.MovieID,
				Actual:    in.Rating,
				Estimated: p.Predict(in.UserID, in.MovieID),
			})
		}
		report[p.Name()] = Metrics{
			RMSE:          round4(RMSE(preds)),
			PrecisionAt10: round4(PrecisionAtK(preds, opts.K, opts.Threshold)),
			NDCGAt10:      round4(NDCGAtK(preds, opts.K, opts.Threshold)),
		}
	}

	return report, nil
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// WriteJSON 将评估报告写为带缩进的 JSON 文件，供外部工具检查。
func (r Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
