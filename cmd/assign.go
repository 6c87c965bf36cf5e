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

	"github.com/packagewjx/lloyd/internal/datasource"
	"github.com/packagewjx/lloyd/internal/kmeans"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// assignCmd represents the assign command
var assignCmd = &cobra.Command{
	Use:   "assign centroidFile dataFile",
	Short: "按照最近中心为每个点分类",
	Long: "centroidFile为cluster命令以text格式输出的中心文件。对dataFile中的每个点输出\"点序号<TAB>类别\"，\n" +
		"距离相同时取序号最小的类别。",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fin, err := datasource.Open(args[0])
		if err != nil {
			return err
		}
		defer func() {
			_ = fin.Close()
		}()
		centroids, err := datasource.ReadAll(datasource.NewTextSource(fin,
			datasource.WithSeparator(viper.GetString(SeparatorFlag))))
		if err != nil {
			return errors.Wrap(err, "读取中心文件错误")
		}
		if len(centroids) == 0 {
			return fmt.Errorf("中心文件%s中没有数据", args[0])
		}

		points, err := loadPoints(args[1])
		if err != nil {
			return err
		}
		if len(points) > 0 && points.Dim() != centroids.Dim() {
			return errors.Wrapf(datasource.ErrDimensionMismatch, "数据维度为%d，中心维度为%d",
				points.Dim(), centroids.Dim())
		}

		out := cmd.OutOrStdout()
		for i, ci := range kmeans.Assign(points, centroids) {
			if _, err := fmt.Fprintf(out, "%d\t%d\n", i, ci); err != nil {
				return errors.Wrap(err, "输出结果错误")
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(assignCmd)

	addInputFlags(assignCmd.Flags())
	bindFlags(assignCmd)
}
