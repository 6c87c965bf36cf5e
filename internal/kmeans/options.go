package kmeans

import (
	"io"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultMaxIterations 默认的最大迭代轮次。0表示不限制
	DefaultMaxIterations = 1000
	DefaultWorkers       = 1
)

type Option func(c *Clusterer)

// WithMaxIterations 设置迭代上限。n为0时一直迭代到收敛为止
func WithMaxIterations(n int) Option {
	return func(c *Clusterer) {
		if n < 0 {
			n = 0
		}
		c.maxIterations = n
	}
}

// WithRand 注入随机数源，用于初始中心的生成
func WithRand(r *rand.Rand) Option {
	return func(c *Clusterer) {
		if r != nil {
			c.rand = r
		}
	}
}

// WithSeed 使用固定种子，保证同样的输入得到同样的结果
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithWorkers 设置分配与更新两个步骤的并行度
func WithWorkers(n int) Option {
	return func(c *Clusterer) {
		if n < 1 {
			n = 1
		}
		c.workers = n
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Clusterer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func defaultRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
