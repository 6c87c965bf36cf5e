package kmeans

import (
	"math"

	"github.com/packagewjx/lloyd/pkg/core"
	"gonum.org/v1/gonum/floats"
)

// Nearest 返回与p欧氏距离最近的中心下标。距离相等时取下标最小者
func Nearest(p core.Point, centroids []core.Point) int {
	best := -1
	minDist := math.Inf(1)
	for i, c := range centroids {
		d := floats.Distance(p, c, 2)
		if best == -1 || d < minDist {
			best = i
			minDist = d
		}
	}
	return best
}

// Assign 计算每个点所属的类别，规则与聚类时的分配步骤一致
func Assign(points core.PointSet, centroids []core.Point) []int {
	result := make([]int, len(points))
	for i, p := range points {
		result[i] = Nearest(p, centroids)
	}
	return result
}

// Bounds 返回各维度的最小值与最大值
func Bounds(points core.PointSet) (minvec, maxvec core.Point) {
	if len(points) == 0 {
		return nil, nil
	}
	minvec = points[0].Clone()
	maxvec = points[0].Clone()
	for _, p := range points[1:] {
		for d, f := range p {
			minvec[d] = math.Min(minvec[d], f)
			maxvec[d] = math.Max(maxvec[d], f)
		}
	}
	return minvec, maxvec
}
