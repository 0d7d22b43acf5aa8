package model

import (
	"context"
	"encoding/json"

	"github.com/rushteam/moviekit/core"
	"github.com/rushteam/moviekit/dataset"
)

// 训练产物在 Store 中的默认 key。
const (
	KeySVDParams    = "model:svd"      // SVD 参数（JSON）
	KeyColdStartTop = "coldstart:top"  // 冷启动榜单（有序集合）
)

// SaveSVD 将训练好的 SVD 参数序列化为 JSON 写入 Store。
func SaveSVD(ctx context.Context, st core.Store, key string, s *SVD) error {
	data, err := json.Marshal(s.Params())
	if err != nil {
		return err
	}
	return st.Set(ctx, key, data)
}

// LoadSVDFromStore 从 Store 读取并恢复 SVD 模型。
// key 不存在时返回 store 的 NOT_FOUND 错误，调用方可据此回退到重新训练。
func LoadSVDFromStore(ctx context.Context, st core.Store, key string, t *dataset.Table) (*SVD, error) {
	data, err := st.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var params SVDParams
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput,
			"model: stored svd params are not valid json: "+err.Error())
	}
	return LoadSVD(t, &params)
}
