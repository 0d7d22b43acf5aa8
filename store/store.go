// Package store 提供 core.Store 的具体实现（内存 / Redis）。
package store

import "github.com/rushteam/moviekit/core"

// 别名导出，方便调用方只 import store 包。
var (
	ErrNotFound     = core.ErrStoreNotFound
	ErrNotSupported = core.ErrStoreNotSupported
)

type Store = core.Store
type KeyValueStore = core.KeyValueStore
