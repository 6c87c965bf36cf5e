package classify

import (
	"fmt"
	"io"

	"github.com/packagewjx/lloyd/internal/kmeans"
	"github.com/packagewjx/lloyd/internal/utils"
	"github.com/packagewjx/lloyd/pkg/core"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// ClusterStats 单个类别中各点到中心距离的统计
type ClusterStats struct {
	Index int
	Size  int
	P50   float64
	P90   float64
	Max   float64
}

// Statistics 按照与聚类相同的规则重新分配各点，并统计每一类的大小与距离分布。空类的距离统计为NaN
func Statistics(points core.PointSet, centroids []core.Point) []*ClusterStats {
	distances := make([][]float64, len(centroids))
	for i, ci := range kmeans.Assign(points, centroids) {
		distances[ci] = append(distances[ci], floats.Distance(points[i], centroids[ci], 2))
	}

	result := make([]*ClusterStats, len(centroids))
	for ci, d := range distances {
		result[ci] = &ClusterStats{
			Index: ci,
			Size:  len(d),
			P50:   utils.Percentile(d, 50),
			P90:   utils.Percentile(d, 90),
			Max:   utils.Percentile(d, 100),
		}
	}
	return result
}

func WriteStatistics(stats []*ClusterStats, output io.Writer) error {
	if _, err := fmt.Fprintln(output, "cluster\tsize\tp50\tp90\tmax"); err != nil {
		return errors.Wrap(err, "写入统计数据错误")
	}
	for _, s := range stats {
		_, err := fmt.Fprintf(output, "%d\t%d\t%.4f\t%.4f\t%.4f\n", s.Index, s.Size, s.P50, s.P90, s.Max)
		if err != nil {
			return errors.Wrap(err, "写入统计数据错误")
		}
	}
	return nil
}
