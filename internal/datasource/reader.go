package datasource

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/packagewjx/lloyd/pkg/core"
	"github.com/pkg/errors"
)

// Stdin 作为文件名时表示从标准输入读取
const Stdin = "-"

type TextOption func(s *textSource)

// WithSeparator 指定字段分隔符。为空时按任意空白字符分隔
func WithSeparator(sep string) TextOption {
	return func(s *textSource) {
		s.sep = sep
	}
}

// NewTextSource 每行一个向量，字段之间使用分隔符分开。空字段与空行将被跳过
func NewTextSource(in io.Reader, opts ...TextOption) VectorSource {
	s := &textSource{reader: bufio.NewReader(in)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type textSource struct {
	reader *bufio.Reader
	sep    string
	line   int
}

func (s *textSource) Load() (core.Point, error) {
	for {
		line, err := s.reader.ReadString(core.LineBreak)
		if err == io.EOF && line == "" {
			return nil, io.EOF
		} else if err != nil && err != io.EOF {
			return nil, errors.Wrap(err, "读取数据出错")
		}
		s.line++

		fields := s.split(strings.TrimSpace(line))
		if len(fields) == 0 {
			if err == io.EOF {
				return nil, io.EOF
			}
			continue
		}

		p := make(core.Point, len(fields))
		for i, field := range fields {
			f, perr := strconv.ParseFloat(field, 64)
			if perr != nil {
				return nil, errors.Wrapf(perr, "第%d行第%d个数据有误，数据为[%s]", s.line, i, field)
			}
			p[i] = f
		}
		return p, nil
	}
}

func (s *textSource) split(line string) []string {
	if s.sep == "" {
		return strings.Fields(line)
	}
	fields := make([]string, 0, 8)
	for _, field := range strings.Split(line, s.sep) {
		if field = strings.TrimSpace(field); field != "" {
			fields = append(fields, field)
		}
	}
	return fields
}

// ReadAll 读取全部向量，并检查所有向量的维度与第一个向量一致
func ReadAll(source VectorSource) (core.PointSet, error) {
	points := make(core.PointSet, 0, 16)

	var p core.Point
	var err error
	for p, err = source.Load(); err == nil; p, err = source.Load() {
		if len(p) == 0 {
			return nil, errors.Wrapf(ErrEmptyVector, "第%d个向量", len(points))
		}
		if len(points) > 0 && len(p) != points.Dim() {
			return nil, errors.Wrapf(ErrDimensionMismatch, "第%d个向量维度为%d，应为%d",
				len(points), len(p), points.Dim())
		}
		points = append(points, p)
	}

	if err != io.EOF {
		return nil, errors.Wrap(err, "读取向量出错")
	}

	return points, nil
}

// CheckFinite 检查所有坐标都是有限值。NaN与自身不相等，含NaN的数据无法收敛
func CheckFinite(points core.PointSet) error {
	for i, p := range points {
		for d, f := range p {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return errors.Wrapf(ErrNonFinite, "第%d个向量第%d维为%v", i, d, f)
			}
		}
	}
	return nil
}

// Open 打开数据文件。name为Stdin时返回标准输入
func Open(name string) (io.ReadCloser, error) {
	if name == Stdin {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "打开文件%s出错", name)
	}
	return f, nil
}
