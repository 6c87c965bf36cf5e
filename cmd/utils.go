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
	"io"
	"os"

	"github.com/packagewjx/lloyd/internal/datasource"
	"github.com/packagewjx/lloyd/pkg/core"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func addInputFlags(flags *pflag.FlagSet) {
	flags.StringP(SeparatorFlag, "s", "",
		"字段分隔符，默认为任意空白字符")
	flags.Bool(CSVFlag, false,
		"数据文件为CSV格式")
	flags.IntSliceP(RemoveColumnFlag, "r", []int{},
		"CSV格式时需要移除的列号，从0开始计算。使用此字段忽略掉不是数字的列")
}

// 将命令的参数绑定到viper，使配置文件与环境变量可以提供默认值。
// 多个命令的同名参数共用一个key，因此在命令执行前才绑定。
func bindFlags(cmd *cobra.Command) {
	preRunE := cmd.PreRunE
	cmd.PreRunE = func(c *cobra.Command, args []string) error {
		var err error
		c.Flags().VisitAll(func(flag *pflag.Flag) {
			if err == nil {
				err = viper.BindPFlag(flag.Name, flag)
			}
		})
		if err != nil {
			return errors.Wrap(err, "绑定参数错误")
		}
		if preRunE != nil {
			return preRunE(c, args)
		}
		return nil
	}
}

func loadPoints(name string) (core.PointSet, error) {
	fin, err := datasource.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = fin.Close()
	}()

	var source datasource.VectorSource
	if viper.GetBool(CSVFlag) {
		source = datasource.NewCSVSource(fin, viper.GetIntSlice(RemoveColumnFlag))
	} else {
		source = datasource.NewTextSource(fin, datasource.WithSeparator(viper.GetString(SeparatorFlag)))
	}

	points, err := datasource.ReadAll(source)
	if err != nil {
		return nil, errors.Wrapf(err, "读取%s错误", name)
	}
	return points, nil
}

// 打开输出文件。name为空时使用命令的标准输出
func openOutput(cmd *cobra.Command, name string) (io.Writer, func(), error) {
	if name == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	fout, err := os.Create(name)
	if err != nil {
		return nil, nil, errors.Wrap(err, "创建输出文件错误")
	}
	return fout, func() {
		_ = fout.Close()
	}, nil
}
