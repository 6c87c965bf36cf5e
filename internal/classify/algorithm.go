package classify

import (
	"fmt"

	"github.com/packagewjx/kmeanspp"
	"github.com/packagewjx/lloyd/internal/datasource"
	"github.com/packagewjx/lloyd/pkg/core"
	"github.com/pkg/errors"
)

// 初始中心生成接口。返回nil表示由聚类器自行在数据包围盒内随机生成
type Seeder interface {
	Seed(points core.PointSet, k int) ([]core.Point, error)
}

type SeedType string

const (
	BoundingBox = SeedType("bbox")
	KMeansPP    = SeedType("kmeanspp")
	File        = SeedType("file")
)

var ErrUnknownSeed = errors.New("未知的初始中心生成方式")

type SeedContext struct {
	// k-means++执行的轮次
	Round int
	// 初始中心文件，每行一个中心
	File      string
	Separator string
}

const (
	KMeansPPDefaultRound = 1
)

func GetSeeder(seedType SeedType, context *SeedContext) (Seeder, error) {
	if context == nil {
		context = &SeedContext{Round: KMeansPPDefaultRound}
	}

	switch seedType {
	case BoundingBox, "":
		return boundingBoxSeeder{}, nil
	case KMeansPP:
		round := context.Round
		if round < 1 {
			round = KMeansPPDefaultRound
		}
		return &kMeansPPSeeder{round: round}, nil
	case File:
		if context.File == "" {
			return nil, fmt.Errorf("使用%s方式时必须指定初始中心文件", File)
		}
		return &fileSeeder{file: context.File, separator: context.Separator}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownSeed, "%s", seedType)
	}
}

type boundingBoxSeeder struct {
}

func (boundingBoxSeeder) Seed(core.PointSet, int) ([]core.Point, error) {
	return nil, nil
}

type kMeansPPSeeder struct {
	round int
}

func (s *kMeansPPSeeder) Seed(points core.PointSet, k int) ([]core.Point, error) {
	if len(points) < k {
		return nil, fmt.Errorf("k-means++需要至少%d个点，现在为%d个", k, len(points))
	}

	centers, _ := kmeanspp.KMeansPP(k, s.round, points.Float32())
	if len(centers) != k {
		return nil, fmt.Errorf("k-means++返回了%d个中心，需要%d个", len(centers), k)
	}
	return core.FromFloat32(centers), nil
}

type fileSeeder struct {
	file      string
	separator string
}

func (s *fileSeeder) Seed(_ core.PointSet, k int) ([]core.Point, error) {
	fin, err := datasource.Open(s.file)
	if err != nil {
		return nil, errors.Wrap(err, "打开初始中心文件错误")
	}
	defer func() {
		_ = fin.Close()
	}()

	centers, err := datasource.ReadAll(datasource.NewTextSource(fin, datasource.WithSeparator(s.separator)))
	if err != nil {
		return nil, errors.Wrap(err, "读取初始中心文件错误")
	}
	if len(centers) != k {
		return nil, fmt.Errorf("初始中心文件%s包含%d个中心，需要%d个", s.file, len(centers), k)
	}
	return centers, nil
}
