package kmeans

import (
	"context"
	"math/rand"

	"github.com/packagewjx/lloyd/pkg/core"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrInvalidK            = errors.New("类别数量必须为正整数")
	ErrBadInitialPositions = errors.New("初始中心的数量或维度与输入不符")
	ErrNotConverged        = errors.New("达到最大迭代轮次仍未收敛")
)

// Result 一次聚类的结果
type Result struct {
	// 按类别下标0..k-1排列的中心。空类保留其上一轮的位置
	Centroids []core.Point
	// 最后一轮分配中每个点所属的类别。收敛时与Centroids一致
	Assignment []int
	// 最后一轮分配中每个类别的点数
	Sizes      []int
	Iterations int
	Converged  bool
}

// Clusterer 使用Lloyd算法的K-Means聚类器。
//
// Clusterer持有随机数源，不是并发安全的，不应在多个goroutine中同时调用Cluster。
type Clusterer struct {
	maxIterations int
	workers       int
	rand          *rand.Rand
	logger        logrus.FieldLogger
}

func New(opts ...Option) *Clusterer {
	c := &Clusterer{
		maxIterations: DefaultMaxIterations,
		workers:       DefaultWorkers,
		rand:          defaultRand(),
		logger:        discardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cluster 将points划分为k类，返回各类中心。
//
// points为空时返回nil结果与nil错误。initial为nil时在数据的包围盒内随机生成初始中心，
// 否则必须恰好包含k个与points同维度的点。points中各点维度不一致时行为未定义。
//
// 每一轮先分配再更新，新的中心与上一轮完全相等时收敛。设置了迭代上限且达到上限时，
// 返回最后一轮的结果以及ErrNotConverged。
func (c *Clusterer) Cluster(ctx context.Context, points core.PointSet, k int, initial []core.Point) (*Result, error) {
	if len(points) == 0 {
		return nil, nil
	}
	if k < 1 {
		return nil, errors.Wrapf(ErrInvalidK, "k为%d", k)
	}

	dim := points.Dim()
	var positions []core.Point
	if initial == nil {
		positions = c.initialPositions(points, k)
	} else {
		if err := checkInitial(initial, k, dim); err != nil {
			return nil, err
		}
		positions = clonePositions(initial)
	}

	logger := c.logger.WithFields(logrus.Fields{
		"k":         k,
		"points":    len(points),
		"dimension": dim,
	})

	assignment := make([]int, len(points))
	for iteration := 1; ; iteration++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := c.assign(points, positions, assignment); err != nil {
			return nil, err
		}
		next, sizes, err := c.update(points, positions, assignment)
		if err != nil {
			return nil, err
		}

		converged := samePositions(next, positions)
		logger.WithFields(logrus.Fields{
			"iteration": iteration,
			"converged": converged,
		}).Debug("完成一轮迭代")

		positions = next
		result := &Result{
			Centroids:  positions,
			Assignment: assignment,
			Sizes:      sizes,
			Iterations: iteration,
			Converged:  converged,
		}
		if converged {
			return result, nil
		}
		if c.maxIterations > 0 && iteration >= c.maxIterations {
			logger.WithField("iteration", iteration).Warn("达到迭代上限")
			return result, ErrNotConverged
		}
	}
}

// 在各维度最小值与最大值构成的包围盒内均匀随机生成k个中心
func (c *Clusterer) initialPositions(points core.PointSet, k int) []core.Point {
	minvec, maxvec := Bounds(points)
	spread := make([]float64, len(minvec))
	floats.SubTo(spread, maxvec, minvec)

	positions := make([]core.Point, k)
	for i := range positions {
		p := make(core.Point, len(minvec))
		for d := range p {
			p[d] = minvec[d] + c.rand.Float64()*spread[d]
		}
		positions[i] = p
	}
	return positions
}

// 分配步骤。每个点只写自己的下标，可以安全并行
func (c *Clusterer) assign(points core.PointSet, positions []core.Point, assignment []int) error {
	return c.parallel(len(points), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			assignment[i] = Nearest(points[i], positions)
		}
	})
}

// 更新步骤。产生新的一组中心，不修改previous
func (c *Clusterer) update(points core.PointSet, previous []core.Point, assignment []int) ([]core.Point, []int, error) {
	members := make([][]int, len(previous))
	for i, ci := range assignment {
		members[ci] = append(members[ci], i)
	}

	next := make([]core.Point, len(previous))
	err := c.parallel(len(previous), func(lo, hi int) {
		for ci := lo; ci < hi; ci++ {
			switch len(members[ci]) {
			case 0:
				// 空类保持原位
				next[ci] = previous[ci].Clone()
			case 1:
				next[ci] = points[members[ci][0]].Clone()
			default:
				next[ci] = mean(points, members[ci])
			}
		}
	})
	if err != nil {
		return nil, nil, err
	}

	sizes := make([]int, len(previous))
	for ci, m := range members {
		sizes[ci] = len(m)
	}
	return next, sizes, nil
}

// 将[0, n)分块交给各worker执行，返回前等待所有worker结束
func (c *Clusterer) parallel(n int, fn func(lo, hi int)) error {
	if c.workers <= 1 || n < 2 {
		fn(0, n)
		return nil
	}

	chunk := (n + c.workers - 1) / c.workers
	var g errgroup.Group
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	return g.Wait()
}

func mean(points core.PointSet, idx []int) core.Point {
	m := make(core.Point, len(points[idx[0]]))
	for _, i := range idx {
		floats.Add(m, points[i])
	}
	n := float64(len(idx))
	for d := range m {
		m[d] /= n
	}
	return m
}

func samePositions(a, b []core.Point) bool {
	for i := range a {
		if !floats.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func checkInitial(initial []core.Point, k, dim int) error {
	if len(initial) != k {
		return errors.Wrapf(ErrBadInitialPositions, "需要%d个初始中心，实际为%d个", k, len(initial))
	}
	for i, p := range initial {
		if len(p) != dim {
			return errors.Wrapf(ErrBadInitialPositions, "第%d个初始中心的维度为%d，数据维度为%d", i, len(p), dim)
		}
	}
	return nil
}

func clonePositions(positions []core.Point) []core.Point {
	result := make([]core.Point, len(positions))
	for i, p := range positions {
		result[i] = p.Clone()
	}
	return result
}
