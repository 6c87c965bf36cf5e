package preprocess

import (
	"github.com/packagewjx/lloyd/pkg/core"
)

// Preprocessor 对点集做预处理。返回处理后的新点集，不修改输入
type Preprocessor interface {
	Preprocess(points core.PointSet) core.PointSet
}

type chainPreprocess struct {
	chain []Preprocessor
}

func (c *chainPreprocess) Preprocess(points core.PointSet) core.PointSet {
	for _, processor := range c.chain {
		points = processor.Preprocess(points)
	}
	return points
}

// Chain 按顺序依次执行各个预处理器
func Chain(processors ...Preprocessor) Preprocessor {
	return &chainPreprocess{chain: processors}
}
