package datasource

import (
	"github.com/packagewjx/lloyd/pkg/core"
	"github.com/pkg/errors"
)

type VectorSource interface {
	// 读取一个向量。若读取完毕，则error设置为io.EOF。error为其他时表示读取出错
	Load() (core.Point, error)
}

var (
	ErrDimensionMismatch = errors.New("向量维度不一致")
	ErrEmptyVector       = errors.New("向量维度为0")
	ErrNonFinite         = errors.New("数据包含NaN或Inf")
)
