package datasource

import (
	"io"
	"strings"
	"testing"

	"github.com/packagewjx/lloyd/pkg/core"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextSource_Load(t *testing.T) {
	input := "1 2 3\n\n  4\t5   6  \n\n7 8 9"
	source := NewTextSource(strings.NewReader(input))

	var read []core.Point
	var p core.Point
	var err error
	for p, err = source.Load(); err == nil; p, err = source.Load() {
		read = append(read, p)
	}
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, []core.Point{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}, read)

	// 读取完毕后继续返回EOF
	_, err = source.Load()
	assert.Equal(t, io.EOF, err)
}

func TestTextSource_Separator(t *testing.T) {
	source := NewTextSource(strings.NewReader("1,,2\n3, 4\n"), WithSeparator(","))
	points, err := ReadAll(source)
	require.NoError(t, err)
	assert.Equal(t, core.PointSet{{1, 2}, {3, 4}}, points)
}

func TestTextSource_ParseError(t *testing.T) {
	source := NewTextSource(strings.NewReader("1 2\n3 x\n"))
	_, err := ReadAll(source)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "第2行第1个数据有误")
}

func TestReadAll_DimensionMismatch(t *testing.T) {
	_, err := ReadAll(NewTextSource(strings.NewReader("1 2\n3 4 5\n")))
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestReadAll_Empty(t *testing.T) {
	points, err := ReadAll(NewTextSource(strings.NewReader("\n\n   \n")))
	require.NoError(t, err)
	assert.Len(t, points, 0)
}

func TestReadAll_EmptyVector(t *testing.T) {
	_, err := ReadAll(NewCSVSource(strings.NewReader("a\nb\n"), []int{0}))
	assert.True(t, errors.Is(err, ErrEmptyVector))
}

func TestCSVSource(t *testing.T) {
	input := "id,1.5,2\nid2, 3,4\n"
	points, err := ReadAll(NewCSVSource(strings.NewReader(input), []int{0}))
	require.NoError(t, err)
	assert.Equal(t, core.PointSet{{1.5, 2}, {3, 4}}, points)

	_, err = ReadAll(NewCSVSource(strings.NewReader(input), nil))
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	r, err := Open(Stdin)
	require.NoError(t, err)
	assert.NoError(t, r.Close())

	_, err = Open("testdata/not-exist.txt")
	assert.Error(t, err)

	r, err = Open("testdata/blobs.txt")
	require.NoError(t, err)
	defer r.Close()
	points, err := ReadAll(NewTextSource(r))
	require.NoError(t, err)
	assert.Len(t, points, 9)
	assert.Equal(t, 2, points.Dim())
}

func TestCheckFinite(t *testing.T) {
	assert.NoError(t, CheckFinite(core.PointSet{{1, 2}, {-3, 4}}))
	assert.NoError(t, CheckFinite(nil))

	points, err := ReadAll(NewTextSource(strings.NewReader("1 2\nNaN 3\n")))
	require.NoError(t, err)
	assert.True(t, errors.Is(CheckFinite(points), ErrNonFinite))

	points, err = ReadAll(NewTextSource(strings.NewReader("1 -Inf\n")))
	require.NoError(t, err)
	assert.True(t, errors.Is(CheckFinite(points), ErrNonFinite))
}
