package datasource

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/packagewjx/lloyd/pkg/core"
	"github.com/pkg/errors"
)

// NewCSVSource 读取CSV格式的向量。removeColumn中的列（从0开始）将被忽略，可用于去掉不是数字的列
func NewCSVSource(in io.Reader, removeColumn []int) VectorSource {
	removeSet := make(map[int]struct{})
	for _, rc := range removeColumn {
		removeSet[rc] = struct{}{}
	}

	reader := csv.NewReader(in)
	reader.TrimLeadingSpace = true
	return &csvSource{
		reader:    reader,
		removeSet: removeSet,
	}
}

type csvSource struct {
	reader     *csv.Reader
	removeSet  map[int]struct{}
	recordRead int
}

func (c *csvSource) Load() (core.Point, error) {
	record, err := c.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	} else if err != nil {
		return nil, errors.Wrap(err, "读取CSV数据出错")
	}
	c.recordRead++

	datum := make(core.Point, 0, len(record))
	for i := 0; i < len(record); i++ {
		if _, ok := c.removeSet[i]; ok {
			continue
		}

		f, err := strconv.ParseFloat(record[i], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "第%d行第%d个数据有误，数据为[%v]", c.recordRead, i, record[i])
		}
		datum = append(datum, f)
	}

	return datum, nil
}
