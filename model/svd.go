package model

import (
	"fmt"
	"math/rand"

	"github.com/rushteam/moviekit/core"
	"github.com/rushteam/moviekit/dataset"
)

// SVDConfig 是矩阵分解的训练超参数。
// 默认值与基线实现一致：100 因子、20 轮、lr 0.005、reg 0.02、seed 42。
type SVDConfig struct {
	Factors        int     `yaml:"factors" json:"factors"`
	Epochs         int     `yaml:"epochs" json:"epochs"`
	LearningRate   float64 `yaml:"learning_rate" json:"learning_rate"`
	Regularization float64 `yaml:"regularization" json:"regularization"`
	InitStdDev     float64 `yaml:"init_std_dev" json:"init_std_dev"`
	Seed           int64   `yaml:"seed" json:"seed"`
}

// DefaultSVDConfig 返回默认超参数。
func DefaultSVDConfig() SVDConfig {
	return SVDConfig{
		Factors:        100,
		Epochs:         20,
		LearningRate:   0.005,
		Regularization: 0.02,
		InitStdDev:     0.1,
		Seed:           42,
	}
}

// SVD 是带偏置的隐因子模型（矩阵分解）。
//
// 预测公式：
//
//	est = globalMean + bu[u] + bi[i] + dot(P[u], Q[i])
//
// 训练用 SGD 最小化观测交互上的平方误差：对每条 (u,i,r)，
// 残差 e = r - est，然后
//
//	bu[u] += lr*(e - reg*bu[u])
//	bi[i] += lr*(e - reg*bi[i])
//	P[u]  += lr*(e*Q[i] - reg*P[u])
//	Q[i]  += lr*(e*P[u] - reg*Q[i])
//
// 因子初始化与每轮遍历的打乱顺序都由 Seed 决定，同表同 seed 结果逐位一致。
// 训练期间可变，训练结束后只读，可被多请求并发访问。
type SVD struct {
	cfg   SVDConfig
	table *dataset.Table

	globalMean float64
	userIDs    []int64 // 升序，行号即索引
	itemIDs    []int64
	userIndex  map[int64]int
	itemIndex  map[int64]int
	itemRated  []bool // 目录中该物品在训练表里是否有过评分
	bu, bi     []float64
	p, q       [][]float64 // users×k / items×k
}

// TrainSVD 在给定评分表上训练一个隐因子模型。
func TrainSVD(t *dataset.Table, cfg SVDConfig) *SVD {
	if cfg.Factors <= 0 {
		cfg.Factors = 100
	}
	if cfg.InitStdDev == 0 {
		cfg.InitStdDev = 0.1
	}

	s := &SVD{
		cfg:        cfg,
		table:      t,
		globalMean: t.GlobalMean(),
		userIDs:    t.UserIDs(),
		itemIDs:    t.MovieIDs(),
	}
	s.userIndex = indexOf(s.userIDs)
	s.itemIndex = indexOf(s.itemIDs)
	s.itemRated = ratedMask(t, s.itemIDs)
	s.bu = make([]float64, len(s.userIDs))
	s.bi = make([]float64, len(s.itemIDs))

	rng := rand.New(rand.NewSource(cfg.Seed))
	s.p = randomMatrix(rng, len(s.userIDs), cfg.Factors, cfg.InitStdDev)
	s.q = randomMatrix(rng, len(s.itemIDs), cfg.Factors, cfg.InitStdDev)

	interactions := t.Interactions()
	order := make([]int, len(interactions))
	for i := range order {
		order[i] = i
	}

	lr := cfg.LearningRate
	reg := cfg.Regularization
	k := cfg.Factors

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		for _, idx := range order {
			in := interactions[idx]
			u := s.userIndex[in.UserID]
			i := s.itemIndex[in.MovieID]

			pu, qi := s.p[u], s.q[i]
			var dot float64
			for f := 0; f < k; f++ {
				dot += pu[f] * qi[f]
			}
			est := s.globalMean + s.bu[u] + s.bi[i] + dot
			e := in.Rating - est

			s.bu[u] += lr * (e - reg*s.bu[u])
			s.bi[i] += lr * (e - reg*s.bi[i])
			for f := 0; f < k; f++ {
				puf := pu[f]
				pu[f] += lr * (e*qi[f] - reg*puf)
				qi[f] += lr * (e*puf - reg*qi[f])
			}
		}
	}

	return s
}

func indexOf(ids []int64) map[int64]int {
	m := make(map[int64]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

func ratedMask(t *dataset.Table, ids []int64) []bool {
	mask := make([]bool, len(ids))
	for i, id := range ids {
		mask[i] = len(t.MovieRaters(id)) > 0
	}
	return mask
}

func randomMatrix(rng *rand.Rand, rows, cols int, std float64) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		row := make([]float64, cols)
		for j := range row {
			row[j] = rng.NormFloat64() * std
		}
		m[i] = row
	}
	return m
}

func (s *SVD) Name() string { return "svd" }

// Predict 估计用户对电影的评分。
// 未见过的用户/物品回退到全局均值加可用偏置，从不报错。
// 目录中存在但训练时无评分的电影按未知物品处理：
// 其因子仍是随机初始化，不能作为信号。
func (s *SVD) Predict(userID, movieID int64) float64 {
	est := s.globalMean
	u, uok := s.userIndex[userID]
	i, iok := s.itemIndex[movieID]
	if iok && !s.itemRated[i] {
		iok = false
	}
	if uok {
		est += s.bu[u]
	}
	if iok {
		est += s.bi[i]
	}
	if uok && iok {
		pu, qi := s.p[u], s.q[i]
		for f := range pu {
			est += pu[f] * qi[f]
		}
	}
	return finite(est)
}

// TopN 对目录中用户未评分的每部电影预测评分，返回前 n 条推荐。
func (s *SVD) TopN(userID int64, n int) []*core.Item {
	return rankUnrated(s.table, userID, n, func(movieID int64) float64 {
		return s.Predict(userID, movieID)
	})
}

// SVDParams 是训练好的模型参数：有名字的有序浮点集合，可序列化后恢复。
type SVDParams struct {
	GlobalMean  float64     `json:"global_mean"`
	Factors     int         `json:"factors"`
	UserIDs     []int64     `json:"user_ids"`
	ItemIDs     []int64     `json:"item_ids"`
	UserBias    []float64   `json:"user_bias"`
	ItemBias    []float64   `json:"item_bias"`
	UserFactors [][]float64 `json:"user_factors"`
	ItemFactors [][]float64 `json:"item_factors"`
}

// Params 导出模型参数。返回的切片与模型共享底层数组，调用方只读。
func (s *SVD) Params() *SVDParams {
	return &SVDParams{
		GlobalMean:  s.globalMean,
		Factors:     s.cfg.Factors,
		UserIDs:     s.userIDs,
		ItemIDs:     s.itemIDs,
		UserBias:    s.bu,
		ItemBias:    s.bi,
		UserFactors: s.p,
		ItemFactors: s.q,
	}
}

// LoadSVD 从导出的参数恢复模型（serving 侧加载训练产物）。
// 维度不一致视为非法输入。
func LoadSVD(t *dataset.Table, params *SVDParams) (*SVD, error) {
	if params == nil || params.Factors <= 0 ||
		len(params.UserBias) != len(params.UserIDs) ||
		len(params.ItemBias) != len(params.ItemIDs) ||
		len(params.UserFactors) != len(params.UserIDs) ||
		len(params.ItemFactors) != len(params.ItemIDs) {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput,
			"model: svd params have inconsistent dimensions")
	}
	for _, row := range params.UserFactors {
		if len(row) != params.Factors {
			return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput,
				fmt.Sprintf("model: user factor row has %d columns, want %d", len(row), params.Factors))
		}
	}
	for _, row := range params.ItemFactors {
		if len(row) != params.Factors {
			return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput,
				fmt.Sprintf("model: item factor row has %d columns, want %d", len(row), params.Factors))
		}
	}

	s := &SVD{
		cfg:        SVDConfig{Factors: params.Factors},
		table:      t,
		globalMean: params.GlobalMean,
		userIDs:    params.UserIDs,
		itemIDs:    params.ItemIDs,
		userIndex:  indexOf(params.UserIDs),
		itemIndex:  indexOf(params.ItemIDs),
		itemRated:  ratedMask(t, params.ItemIDs),
		bu:         params.UserBias,
		bi:         params.ItemBias,
		p:          params.UserFactors,
		q:          params.ItemFactors,
	}
	return s, nil
}
