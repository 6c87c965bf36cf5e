package preprocess

import (
	"math"

	"github.com/packagewjx/lloyd/pkg/core"
)

// Impute 使用线性函数填充NaN。
//
// 按点的顺序逐维处理。中间的NaN使用两端有效数据计算一次函数填充；两端如果有NaN，
// 则默认开始或结束的数据为0，另一个端点为第一个或最后一个有效值。整列都是NaN时保持原样。
func Impute() Preprocessor {
	return &imputePreprocessor{}
}

type imputePreprocessor struct {
}

func (i imputePreprocessor) Preprocess(in core.PointSet) core.PointSet {
	points := in.Clone()
	for d := 0; d < points.Dim(); d++ {
		invalidLeft := -1
		for pi := 0; pi < len(points); pi++ {
			f := points[pi][d]
			if math.IsNaN(f) {
				if invalidLeft == -1 {
					invalidLeft = pi
				}
			} else if invalidLeft != -1 {
				startVal := 0.0
				if invalidLeft != 0 {
					startVal = points[invalidLeft-1][d]
				}

				// 线性填充
				k := (f - startVal) / float64(pi-invalidLeft+1)
				for j := invalidLeft; j < pi; j++ {
					points[j][d] = startVal + k*float64(j-(invalidLeft-1))
				}
				invalidLeft = -1
			}
		}

		if invalidLeft > 0 {
			startVal := points[invalidLeft-1][d]
			k := -startVal / float64(len(points)-invalidLeft+1)
			for j := invalidLeft; j < len(points); j++ {
				points[j][d] = startVal + k*float64(j-(invalidLeft-1))
			}
		}
	}
	return points
}
