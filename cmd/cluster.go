/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/packagewjx/lloyd/internal/classify"
	"github.com/packagewjx/lloyd/internal/datasource"
	"github.com/packagewjx/lloyd/internal/kmeans"
	"github.com/packagewjx/lloyd/internal/plot"
	"github.com/packagewjx/lloyd/internal/preprocess"
	"github.com/packagewjx/lloyd/pkg/core"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Input Flags
const (
	SeparatorFlag    = "separator"
	CSVFlag          = "csv"
	RemoveColumnFlag = "remove-column"
	ImputeFlag       = "impute"
	NormalizeFlag    = "normalize"
)

// Output Flags
const (
	OutputFlag    = "output"
	FormatFlag    = "format"
	PrecisionFlag = "precision"
	StatsFlag     = "stats"
	NoPlotFlag    = "noplot"
	ColormapFlag  = "colormap"
	PlotFileFlag  = "plot-file"
	PlotAddrFlag  = "plot-addr"
)

// Flags for K-Means
const (
	MaxIterationsFlag = "max-iterations"
	SeedFlag          = "seed"
	WorkersFlag       = "workers"
	InitFlag          = "init"
	InitFileFlag      = "init-file"
	KMeansPPRoundFlag = "kmeanspp-round"
)

var naturalNumber = regexp.MustCompile("^\\d+$")

// clusterCmd represents the cluster command
var clusterCmd = &cobra.Command{
	Use:   "cluster clusters dataFile",
	Short: "读取数据文件聚类计算，并输出各类中心",
	Long: "读取dataFile中的向量（dataFile为-时读取标准输入），聚为clusters类，按类别顺序每行输出一个中心。\n" +
		"数据为二维且未指定--noplot时，将绘制散点图：指定了--plot-file则输出到HTML文件，否则在--plot-addr上\n" +
		"启动HTTP服务器展示，直到按Ctrl+C退出。",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return fmt.Errorf("参数错误")
		}
		if _, err := parseNumClusters(args[0]); err != nil {
			return err
		}
		return nil
	},
	RunE: runCluster,
}

// 校验类别数量参数为自然数（大于0的整数）
func parseNumClusters(s string) (int, error) {
	if !naturalNumber.MatchString(s) {
		return 0, fmt.Errorf("类数量参数%q不是数字", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(err, "类数量参数%q错误", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("%d不是自然数", n)
	}
	return n, nil
}

func runCluster(cmd *cobra.Command, args []string) error {
	numClass, _ := parseNumClusters(args[0])

	logger.Println("读取数据中")
	points, err := loadPoints(args[1])
	if err != nil {
		return err
	}
	if len(points) == 0 {
		logger.Warn("没有读取到任何数据")
		return nil
	}
	log := logger.WithFields(logrus.Fields{
		"k":         numClass,
		"points":    len(points),
		"dimension": points.Dim(),
	})
	log.Info("读取数据完成")

	processors := make([]preprocess.Preprocessor, 0, 2)
	if viper.GetBool(ImputeFlag) {
		processors = append(processors, preprocess.Impute())
	}
	var normalizer *preprocess.Normalizer
	if viper.GetBool(NormalizeFlag) {
		normalizer = preprocess.Normalize()
		processors = append(processors, normalizer)
	}
	clusterPoints := preprocess.Chain(processors...).Preprocess(points)
	if err := datasource.CheckFinite(clusterPoints); err != nil {
		return errors.Wrap(err, "无法聚类，NaN可以使用--impute填充")
	}

	seedType := classify.SeedType(viper.GetString(InitFlag))
	seeder, err := classify.GetSeeder(seedType, &classify.SeedContext{
		Round:     viper.GetInt(KMeansPPRoundFlag),
		File:      viper.GetString(InitFileFlag),
		Separator: viper.GetString(SeparatorFlag),
	})
	if err != nil {
		return err
	}
	initial, err := seeder.Seed(clusterPoints, numClass)
	if err != nil {
		return errors.Wrap(err, "生成初始中心错误")
	}
	if normalizer != nil && seedType == classify.File {
		initial = normalizer.Transform(initial)
	}

	opts := []kmeans.Option{
		kmeans.WithMaxIterations(viper.GetInt(MaxIterationsFlag)),
		kmeans.WithWorkers(viper.GetInt(WorkersFlag)),
		kmeans.WithLogger(logger),
	}
	if seed := viper.GetInt64(SeedFlag); seed != 0 {
		opts = append(opts, kmeans.WithSeed(seed))
		if seedType == classify.KMeansPP {
			log.Warn("k-means++使用自己的随机数源，--seed只对bbox初始化生效")
		}
	}

	log.Info("运行K-Means算法中")
	result, clusterErr := kmeans.New(opts...).Cluster(commandContext(cmd), clusterPoints, numClass, initial)
	if clusterErr != nil && !errors.Is(clusterErr, kmeans.ErrNotConverged) {
		return errors.Wrap(clusterErr, "聚类出错")
	}
	log.WithFields(logrus.Fields{
		"iterations": result.Iterations,
		"converged":  result.Converged,
	}).Info("运行K-Means算法完成")
	if clusterErr != nil {
		log.Warn("聚类未收敛，输出的是最后一轮的中心")
	}

	centroids := result.Centroids
	if normalizer != nil {
		centroids = normalizer.Restore(centroids)
	}

	if err := writeResult(cmd, points, centroids); err != nil {
		return err
	}

	if !viper.GetBool(NoPlotFlag) && plot.Plottable(points) {
		if err := showPlot(cmd, points, centroids); err != nil {
			return err
		}
	}

	return clusterErr
}

func writeResult(cmd *cobra.Command, points core.PointSet, centroids []core.Point) error {
	out, closeFunc, err := openOutput(cmd, viper.GetString(OutputFlag))
	if err != nil {
		return err
	}
	defer closeFunc()

	err = classify.OutputResult(centroids, out, classify.OutputFormat(viper.GetString(FormatFlag)),
		viper.GetInt(PrecisionFlag))
	if err != nil {
		return errors.Wrap(err, "输出结果错误")
	}

	if viper.GetBool(StatsFlag) {
		err = classify.WriteStatistics(classify.Statistics(points, centroids), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
	}
	return nil
}

func showPlot(cmd *cobra.Command, points core.PointSet, centroids []core.Point) error {
	colormap := strings.Split(viper.GetString(ColormapFlag), ",")
	scatter, err := plot.BuildScatter(points, centroids, colormap)
	if err != nil {
		return err
	}

	if fileName := viper.GetString(PlotFileFlag); fileName != "" {
		logger.WithField("file", fileName).Info("输出散点图")
		return plot.WriteHTML(scatter, fileName)
	}

	return plot.NewServer(viper.GetString(PlotAddrFlag), scatter, logger).Start(commandContext(cmd))
}

func init() {
	rootCmd.AddCommand(clusterCmd)

	flags := clusterCmd.Flags()
	addInputFlags(flags)
	flags.Bool(ImputeFlag, false,
		"使用线性插值填充NaN数据")
	flags.Bool(NormalizeFlag, false,
		"聚类前将每一维缩放到[0, 1]，输出时还原")

	flags.StringP(OutputFlag, "o", "",
		"输出文件，默认为标准输出")
	flags.StringP(FormatFlag, "f", string(classify.Text),
		"输出格式，可选值：text, csv")
	flags.IntP(PrecisionFlag, "p", classify.ExactPrecision,
		"输出数据精度，-1表示精确输出")
	flags.Bool(StatsFlag, false,
		"在标准错误输出各类的大小与距离分布")
	flags.Bool(NoPlotFlag, false,
		"不绘制散点图")
	flags.String(ColormapFlag, plot.DefaultColormap,
		"各类使用的颜色，以逗号分隔")
	flags.String(PlotFileFlag, "",
		"散点图输出的HTML文件")
	flags.String(PlotAddrFlag, plot.DefaultAddr,
		"展示散点图的HTTP服务器地址")

	// Flags for K-Means Algorithm
	flags.Int(MaxIterationsFlag, kmeans.DefaultMaxIterations,
		"最大迭代轮次，0表示一直迭代直到收敛")
	flags.Int64(SeedFlag, 0,
		"随机数种子，0表示使用当前时间")
	flags.Int(WorkersFlag, kmeans.DefaultWorkers,
		"并行计算的goroutine数量")
	flags.String(InitFlag, string(classify.BoundingBox),
		"初始中心的生成方式，可选值：bbox, kmeanspp, file")
	flags.String(InitFileFlag, "",
		"初始中心文件，每行一个中心，--init为file时使用")
	flags.Int(KMeansPPRoundFlag, classify.KMeansPPDefaultRound,
		"k-means++执行的轮次，--init为kmeanspp时使用")

	bindFlags(clusterCmd)
}
