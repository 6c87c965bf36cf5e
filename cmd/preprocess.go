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

	"github.com/packagewjx/lloyd/internal/classify"
	"github.com/packagewjx/lloyd/internal/preprocess"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// preprocessCmd represents the preprocess command
var preprocessCmd = &cobra.Command{
	Use:   "preprocess infile outfile",
	Short: "填充缺失数据并将数据标准化",
	Long: "读取infile中的向量，按顺序执行插值填充（--impute）与标准化（--normalize），以text格式输出到outfile。\n" +
		"outfile为-时输出到标准输出。",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return fmt.Errorf("参数错误")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		points, err := loadPoints(args[0])
		if err != nil {
			return err
		}

		processors := make([]preprocess.Preprocessor, 0, 2)
		if viper.GetBool(ImputeFlag) {
			processors = append(processors, preprocess.Impute())
		}
		if viper.GetBool(NormalizeFlag) {
			processors = append(processors, preprocess.Normalize())
		}
		points = preprocess.Chain(processors...).Preprocess(points)

		outFile := args[1]
		if outFile == "-" {
			outFile = ""
		}
		out, closeFunc, err := openOutput(cmd, outFile)
		if err != nil {
			return err
		}
		defer closeFunc()
		return errors.Wrap(classify.OutputResult(points, out, classify.Text, viper.GetInt(PrecisionFlag)),
			"输出数据错误")
	},
}

func init() {
	rootCmd.AddCommand(preprocessCmd)

	flags := preprocessCmd.Flags()
	addInputFlags(flags)
	flags.Bool(ImputeFlag, true,
		"使用线性插值填充NaN数据")
	flags.Bool(NormalizeFlag, true,
		"将每一维缩放到[0, 1]")
	flags.IntP(PrecisionFlag, "p", classify.ExactPrecision,
		"输出数据精度，-1表示精确输出")

	bindFlags(preprocessCmd)
}
