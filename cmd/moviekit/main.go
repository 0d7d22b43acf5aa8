// moviekit 批式流水线：加载评分数据、训练四个模型、导出推荐 CSV、
// 运行评估并输出指标 JSON，最后把 serving 所需的产物写入 Store。
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/rushteam/moviekit/config"
	"github.com/rushteam/moviekit/core"
	"github.com/rushteam/moviekit/dataset"
	"github.com/rushteam/moviekit/eval"
	"github.com/rushteam/moviekit/model"
	"github.com/rushteam/moviekit/store"
)

func main() {
	var (
		configPath = flag.String("config", "", "config file path (yaml)")
		userID     = flag.Int64("user", 1, "user to generate recommendations for")
	)
	flag.Parse()

	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.WithError(err).Fatal("load config")
	}

	if err := run(cfg, logger, *userID); err != nil {
		logger.WithError(err).Fatal("pipeline failed")
	}
}

func run(cfg *config.Config, logger *logrus.Logger, userID int64) error {
	ctx := context.Background()

	t, err := dataset.Load(cfg.Data.Path)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"path":         cfg.Data.Path,
		"interactions": t.NumInteractions(),
		"users":        len(t.UserIDs()),
		"movies":       len(t.MovieIDs()),
	}).Info("dataset loaded")

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return err
	}
	outPath := func(name string) string { return filepath.Join(cfg.Output.Dir, name) }

	topN := cfg.TopN
	if topN <= 0 {
		topN = 10
	}

	// 用户协同过滤
	cf := model.TrainUserCF(t)
	logger.Info("user-based cf trained")
	if err := dataset.WriteRecommendations(
		outPath("user_cf_recommendations.csv"),
		dataset.ColumnEstimatedRating,
		cf.TopN(userID, topN),
	); err != nil {
		return err
	}

	// SVD 矩阵分解
	svd := model.TrainSVD(t, cfg.SVD)
	logger.WithFields(logrus.Fields{
		"factors": cfg.SVD.Factors,
		"epochs":  cfg.SVD.Epochs,
	}).Info("svd trained")
	if err := dataset.WriteRecommendations(
		outPath("svd_recommendations.csv"),
		dataset.ColumnEstimatedRating,
		svd.TopN(userID, topN),
	); err != nil {
		return err
	}

	// 基于内容的相似度
	content := model.BuildContent(t)
	logger.Info("content similarity built")
	contentItems, err := content.TopN(userID, topN)
	if err != nil {
		if !core.IsNoProfile(err) {
			return err
		}
		logger.WithField("user_id", userID).Warn("user has no rating profile, skipping content recommendations")
	} else if err := dataset.WriteRecommendations(
		outPath("content_recommendations.csv"),
		dataset.ColumnSimilarityScore,
		contentItems,
	); err != nil {
		return err
	}

	// 冷启动榜单
	cs := &model.ColdStart{}
	ranking := cs.Rank(t, topN)
	if err := dataset.WriteRecommendations(
		outPath("cold_start_rankings.csv"),
		dataset.ColumnAverageRating,
		ranking,
	); err != nil {
		return err
	}
	logger.Info("cold-start ranking written")

	// 离线评估
	opts := eval.DefaultOptions()
	opts.SplitRatio = cfg.Eval.SplitRatio
	opts.Seed = cfg.Eval.Seed
	opts.K = cfg.Eval.K
	opts.Threshold = cfg.Eval.Threshold
	opts.SVD = cfg.SVD

	report, err := eval.Evaluate(t, opts)
	if err != nil {
		return err
	}
	if err := report.WriteJSON(outPath("evaluation_metrics.json")); err != nil {
		return err
	}
	for name, m := range report {
		logger.WithFields(logrus.Fields{
			"model":           name,
			"rmse":            m.RMSE,
			"precision_at_10": m.PrecisionAt10,
			"ndcg_at_10":      m.NDCGAt10,
		}).Info("evaluation")
	}

	// 写入 serving 侧需要的训练产物
	var st core.KeyValueStore
	if cfg.Redis.Addr != "" {
		rs, err := store.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.WithError(err).Warn("redis unavailable, skipping artifact persistence")
			return nil
		}
		st = rs
	} else {
		st = store.NewMemoryStore()
	}
	defer st.Close()

	if err := model.SaveSVD(ctx, st, model.KeySVDParams, svd); err != nil {
		return err
	}
	for _, it := range ranking {
		member := strconv.FormatInt(it.ID, 10)
		if err := st.ZAdd(ctx, model.KeyColdStartTop, it.Score, member); err != nil {
			return err
		}
	}
	logger.WithField("store", st.Name()).Info("artifacts persisted")
	return nil
}
