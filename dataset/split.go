package dataset

import (
	"fmt"
	"math/rand"

	"github.com/rushteam/moviekit/core"
)

// Split 将评分表按比例随机切分为训练/测试两份交互集合。
// 给定同一 seed 与同一张表，切分结果逐位可复现（先拷贝再 Fisher-Yates 打乱）。
// testRatio 必须在 (0,1)；切分后任一侧为空视为配置错误，在任何训练开始前失败。
func Split(t *Table, testRatio float64, seed int64) (train, test []Interaction, err error) {
	if testRatio <= 0 || testRatio >= 1 {
		return nil, nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
			fmt.Sprintf("dataset: test ratio %v outside (0,1)", testRatio))
	}

	all := t.Interactions()
	n := len(all)
	nTest := int(float64(n) * testRatio)
	if nTest == 0 || n-nTest == 0 {
		return nil, nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
			fmt.Sprintf("dataset: %d interactions too few for a %v/%v split", n, 1-testRatio, testRatio))
	}

	shuffled := make([]Interaction, n)
	copy(shuffled, all)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(n, func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled[nTest:], shuffled[:nTest], nil
}
