package utils

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartition(t *testing.T) {
	arr := []float64{3, 6, 1, 76, 2, 16, 549}
	idx := Partition(arr, 0, len(arr)-1)
	assert.Equal(t, idx, 5)
	assert.Equal(t, arr[5], float64(76))
	idx = Partition(arr, 0, idx)
	assert.Condition(t, func() (success bool) {
		return idx < 5
	})

	arr = []float64{1, 2, 3}
	idx = Partition(arr, 0, len(arr)-1)
	assert.Equal(t, idx, 1)
	assert.Equal(t, arr[1], float64(2))

	arr = []float64{4, 2, 1, 3}
	idx = Partition(arr, 0, len(arr)-1)
	assert.Equal(t, idx, 0)
	assert.Equal(t, arr[0], float64(1))

	arr = []float64{}
	idx = Partition(arr, 0, len(arr)-1)
	assert.Equal(t, idx, 0)
}

func TestGetSortedPosition(t *testing.T) {
	arr := []float64{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}
	n := GetSortedPositionValue(arr, 4)
	assert.Equal(t, float64(4), n)

	arr = make([]float64, 10000)
	for i := 0; i < len(arr); i++ {
		arr[i] = rand.Float64() * 10000
	}
	p0 := GetSortedPositionValue(arr, 0)
	p1000 := GetSortedPositionValue(arr, 1000)
	p2000 := GetSortedPositionValue(arr, 2000)
	p5000 := GetSortedPositionValue(arr, 5000)
	p9999 := GetSortedPositionValue(arr, 9999)
	sort.Float64s(arr)
	assert.Equal(t, arr[0], p0)
	assert.Equal(t, arr[1000], p1000)
	assert.Equal(t, arr[2000], p2000)
	assert.Equal(t, arr[5000], p5000)
	assert.Equal(t, arr[9999], p9999)

	assert.True(t, math.IsNaN(GetSortedPositionValue(arr, 10000)))
}

func TestPercentile(t *testing.T) {
	arr := []float64{5, 1, 4, 2, 3}
	assert.Equal(t, float64(3), Percentile(arr, 50))
	assert.Equal(t, float64(5), Percentile(arr, 100))
	assert.Equal(t, float64(1), Percentile(arr, 0))
	assert.True(t, math.IsNaN(Percentile(nil, 50)))
}
