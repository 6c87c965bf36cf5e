package classify

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/packagewjx/lloyd/pkg/core"
	"github.com/pkg/errors"
)

type OutputFormat string

const (
	Text = OutputFormat("text")
	CSV  = OutputFormat("csv")
)

// 输出精度为-1时使用能精确还原数值的最短表示
const ExactPrecision = -1

var ErrUnknownFormat = errors.New("未知的输出格式")

// OutputResult 输出聚类中心，每行一个。text格式以空格分隔，可以直接作为输入或初始中心文件读取
func OutputResult(data []core.Point, output io.Writer, format OutputFormat, precision int) error {
	switch format {
	case Text, "":
		return outputText(data, output, precision)
	case CSV:
		return outputCSV(data, output, precision)
	default:
		return errors.Wrapf(ErrUnknownFormat, "%s", format)
	}
}

func outputText(data []core.Point, output io.Writer, precision int) error {
	builder := &strings.Builder{}
	for _, datum := range data {
		builder.Reset()
		for i, f := range datum {
			if i > 0 {
				builder.WriteByte(' ')
			}
			builder.WriteString(strconv.FormatFloat(f, 'f', precision, 64))
		}
		builder.WriteByte(core.LineBreak)
		if _, err := io.WriteString(output, builder.String()); err != nil {
			return errors.Wrap(err, "写入数据错误")
		}
	}
	return nil
}

func outputCSV(data []core.Point, output io.Writer, precision int) error {
	writer := csv.NewWriter(output)
	for _, datum := range data {
		record := make([]string, len(datum))
		for i, f := range datum {
			record[i] = strconv.FormatFloat(f, 'f', precision, 64)
		}
		err := writer.Write(record)
		if err != nil {
			return errors.Wrap(err, "写入数据错误")
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "写入数据错误")
}
