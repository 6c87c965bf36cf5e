package plot

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/packagewjx/lloyd/internal/kmeans"
	"github.com/packagewjx/lloyd/pkg/core"
	"github.com/pkg/errors"
)

const DefaultColormap = "red,green,blue,purple,cyan,brown,lime,pink,yellow"

var ErrNotPlottable = errors.New("只能绘制二维数据")

// Renderer 可以输出为HTML的图表
type Renderer interface {
	Render(w io.Writer) error
}

// Plottable 只有二维数据才能绘制散点图
func Plottable(points core.PointSet) bool {
	return points.Dim() == 2
}

// BuildScatter 按照最近中心重新划分各点，每一类使用一种颜色绘制。
// 类别数多于颜色数时循环使用颜色。
func BuildScatter(points core.PointSet, centroids []core.Point, colormap []string) (*charts.Scatter, error) {
	if !Plottable(points) {
		return nil, errors.Wrapf(ErrNotPlottable, "数据维度为%d", points.Dim())
	}
	if len(colormap) == 0 {
		colormap = strings.Split(DefaultColormap, ",")
	}

	classes := make([][]opts.ScatterData, len(centroids))
	for i, ci := range kmeans.Assign(points, centroids) {
		classes[ci] = append(classes[ci], opts.ScatterData{
			Value:      []float64{points[i][0], points[i][1]},
			Symbol:     "rect",
			SymbolSize: 6,
		})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "K-Means",
			Subtitle: fmt.Sprintf("%d个点，%d类", len(points), len(centroids)),
		}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value"}),
	)

	for i, center := range centroids {
		// 空类只绘制中心
		data := append(classes[i], opts.ScatterData{
			Name:       "center",
			Value:      []float64{center[0], center[1]},
			Symbol:     "diamond",
			SymbolSize: 16,
		})
		scatter.AddSeries(fmt.Sprintf("cluster %d", i), data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: strings.TrimSpace(colormap[i%len(colormap)])}))
	}

	return scatter, nil
}

// WriteHTML 将图表输出到HTML文件
func WriteHTML(chart Renderer, fileName string) error {
	fout, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "创建图表文件错误")
	}
	if err = chart.Render(fout); err != nil {
		_ = fout.Close()
		return errors.Wrap(err, "绘制图表错误")
	}
	return errors.Wrap(fout.Close(), "关闭图表文件错误")
}
