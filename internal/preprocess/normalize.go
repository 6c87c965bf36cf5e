package preprocess

import (
	"math"

	"github.com/packagewjx/lloyd/pkg/core"
	"gonum.org/v1/gonum/floats"
)

// Normalizer 将每一维线性缩放到[0, 1]，并记录缩放参数，以便将聚类中心还原到原始空间。
// 取值全部相同的维度不做缩放。
type Normalizer struct {
	min    core.Point
	spread core.Point
}

func Normalize() *Normalizer {
	return &Normalizer{}
}

func (n *Normalizer) Preprocess(in core.PointSet) core.PointSet {
	dim := in.Dim()
	if dim == 0 {
		return in.Clone()
	}

	n.min = make(core.Point, dim)
	max := make(core.Point, dim)
	for d := 0; d < dim; d++ {
		n.min[d] = math.Inf(1)
		max[d] = math.Inf(-1)
	}
	for _, p := range in {
		for d, f := range p {
			if math.IsNaN(f) {
				continue
			}
			n.min[d] = math.Min(n.min[d], f)
			max[d] = math.Max(max[d], f)
		}
	}
	n.spread = make(core.Point, dim)
	floats.SubTo(n.spread, max, n.min)

	return core.PointSet(n.Transform(in))
}

// Transform 使用Preprocess时记录的参数将原始空间中的点映射到标准化空间
func (n *Normalizer) Transform(points []core.Point) []core.Point {
	result := make([]core.Point, len(points))
	for i, p := range points {
		r := p.Clone()
		for d := range r {
			if d < len(n.spread) && n.scalable(d) {
				r[d] = (r[d] - n.min[d]) / n.spread[d]
			}
		}
		result[i] = r
	}
	return result
}

// Restore 将标准化空间中的点还原到原始空间
func (n *Normalizer) Restore(normalized []core.Point) []core.Point {
	result := make([]core.Point, len(normalized))
	for i, p := range normalized {
		r := p.Clone()
		for d := range r {
			if d < len(n.spread) && n.scalable(d) {
				r[d] = r[d]*n.spread[d] + n.min[d]
			}
		}
		result[i] = r
	}
	return result
}

func (n *Normalizer) scalable(d int) bool {
	s := n.spread[d]
	return s != 0 && !math.IsNaN(s) && !math.IsInf(s, 0)
}
