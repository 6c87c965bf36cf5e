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
	"context"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	ConfigFlag   = "config"
	LogLevelFlag = "log-level"
)

const EnvPrefix = "LLOYD"

var cfgFile string

var logger = logrus.New()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lloyd",
	Short: "使用Lloyd算法对向量数据进行K-Means聚类",
	Long: "从文本文件中读取向量（每行一个，字段以空白分隔），使用Lloyd算法聚类并输出各类中心。\n" +
		"二维数据可以绘制散点图。",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlag(LogLevelFlag, cmd.Flags().Lookup(LogLevelFlag)); err != nil {
			return errors.Wrap(err, "绑定参数错误")
		}
		level, err := logrus.ParseLevel(viper.GetString(LogLevelFlag))
		if err != nil {
			return errors.Wrap(err, "日志级别错误")
		}
		logger.SetLevel(level)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	logger.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().StringVar(&cfgFile, ConfigFlag, "",
		"配置文件（默认为$HOME/.lloyd.yaml）")
	rootCmd.PersistentFlags().String(LogLevelFlag, logrus.InfoLevel.String(),
		"日志级别，可选值：panic, fatal, error, warn, info, debug, trace")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			logger.WithError(err).Warn("获取用户目录失败，不读取配置文件")
		} else {
			// Search config in home directory with name ".lloyd" (without extension).
			viper.AddConfigPath(home)
			viper.SetConfigName(".lloyd")
		}
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		logger.WithField("file", viper.ConfigFileUsed()).Debug("使用配置文件")
	} else if cfgFile != "" {
		logger.WithError(err).Warn("读取配置文件失败")
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
