// Package service 是在线推荐服务：装配数据、模型、Store 与 Pipeline，
// 并通过 HTTP 暴露推荐接口。
package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/rushteam/moviekit/config"
	"github.com/rushteam/moviekit/core"
	"github.com/rushteam/moviekit/dataset"
	"github.com/rushteam/moviekit/filter"
	"github.com/rushteam/moviekit/model"
	"github.com/rushteam/moviekit/pipeline"
	"github.com/rushteam/moviekit/recall"
	"github.com/rushteam/moviekit/rerank"
	"github.com/rushteam/moviekit/store"
)

// App 持有服务运行期的全部状态。
// 模型与数据表在启动时装配完成，之后只读，可被并发请求共享。
type App struct {
	cfg    *config.Config
	logger *logrus.Logger

	table *dataset.Table
	store core.KeyValueStore
	svd   *model.SVD

	// history 面向有评分历史的用户：模型召回 → 已评分过滤 → Top-N 截断
	history *pipeline.Pipeline
	// cold 面向无历史的用户：冷启动榜单召回 → Top-N 截断
	cold *pipeline.Pipeline
}

// NewApp 装配服务：加载数据、准备 Store、恢复或训练模型、构建 Pipeline。
func NewApp(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*App, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	t, err := dataset.Load(cfg.Data.Path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	logger.WithFields(logrus.Fields{
		"path":   cfg.Data.Path,
		"users":  len(t.UserIDs()),
		"movies": len(t.MovieIDs()),
	}).Info("dataset loaded")

	var st core.KeyValueStore
	if cfg.Redis.Addr != "" {
		rs, err := store.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		st = rs
		logger.WithField("addr", cfg.Redis.Addr).Info("using redis store")
	} else {
		st = store.NewMemoryStore()
		logger.Info("using in-memory store")
	}

	app := &App{cfg: cfg, logger: logger, table: t, store: st}

	if err := app.prepareModels(ctx); err != nil {
		app.Close()
		return nil, err
	}
	if err := app.buildPipelines(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// prepareModels 优先从 Store 恢复 SVD 参数，失败则重新训练并写回。
// 冷启动榜单每次启动都重算写入，保证与当前数据一致。
func (a *App) prepareModels(ctx context.Context) error {
	svd, err := model.LoadSVDFromStore(ctx, a.store, model.KeySVDParams, a.table)
	if err != nil {
		if !core.IsStoreNotFound(err) {
			a.logger.WithError(err).Warn("stored svd params unusable, retraining")
		}
		svd = model.TrainSVD(a.table, a.cfg.SVD)
		if err := model.SaveSVD(ctx, a.store, model.KeySVDParams, svd); err != nil {
			a.logger.WithError(err).Warn("persist svd params failed")
		}
		a.logger.Info("svd trained")
	} else {
		a.logger.Info("svd restored from store")
	}
	a.svd = svd

	cs := &model.ColdStart{}
	for _, it := range cs.Rank(a.table, a.cfg.TopN) {
		member := strconv.FormatInt(it.ID, 10)
		if err := a.store.ZAdd(ctx, model.KeyColdStartTop, it.Score, member); err != nil {
			a.logger.WithError(err).Warn("warm cold-start ranking failed")
			break
		}
	}
	return nil
}

// buildPipelines 构建 history/cold 两条 Pipeline。
// 配置了 pipeline.path 时，history 链从 YAML 经 NodeFactory 构建；
// 否则使用内置链。冷启动链固定为榜单召回，保证未知用户总有回退。
func (a *App) buildPipelines() error {
	topN := a.cfg.TopN
	if topN <= 0 {
		topN = 10
	}

	if a.cfg.Pipeline.Path != "" {
		pcfg, err := pipeline.LoadFromYAML(a.cfg.Pipeline.Path)
		if err != nil {
			return fmt.Errorf("load pipeline config: %w", err)
		}
		factory := config.DefaultFactory(config.Deps{
			Table: a.table,
			Store: a.store,
			Models: map[string]recall.Ranker{
				a.svd.Name(): a.svd,
			},
		})
		p, err := pcfg.BuildPipeline(factory)
		if err != nil {
			return fmt.Errorf("build pipeline %q: %w", pcfg.Pipeline.Name, err)
		}
		a.history = p
		a.logger.WithField("pipeline", pcfg.Pipeline.Name).Info("pipeline built from config")
	} else {
		a.history = &pipeline.Pipeline{Nodes: []pipeline.Node{
			// 召回量放大一些，给过滤留余量
			&recall.ModelSource{Model: a.svd, TopN: topN * 2},
			&filter.FilterNode{Filters: []filter.Filter{
				&filter.RatedFilter{Table: a.table},
			}},
			&rerank.TopNNode{N: topN},
		}}
	}

	a.cold = &pipeline.Pipeline{Nodes: []pipeline.Node{
		&recall.Hot{
			Store:   a.store,
			Key:     model.KeyColdStartTop,
			Catalog: a.table,
			TopN:    topN,
		},
		&rerank.TopNNode{N: topN},
	}}
	return nil
}

// Recommend 为用户生成推荐列表。
// 有评分历史的用户走模型 Pipeline；未知用户回退到冷启动榜单。
func (a *App) Recommend(ctx context.Context, userID int64) ([]*core.Item, error) {
	rctx := &core.RecommendContext{UserID: userID, Scene: "default"}

	p := a.cold
	if a.table.HasUser(userID) {
		p = a.history
	}
	return p.Run(ctx, rctx, nil)
}

// Close 释放 Store 连接。
func (a *App) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.WithError(err).Warn("close store")
		}
	}
}
