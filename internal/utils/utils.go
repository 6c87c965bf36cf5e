package utils

import (
	"math"
)

// GetSortedPositionValue 使用快速选择返回arr排序后位于pos位置的值。会打乱arr的顺序
func GetSortedPositionValue(arr []float64, pos int) float64 {
	if pos < 0 || pos >= len(arr) {
		return math.NaN()
	}

	l := 0
	r := len(arr) - 1
	for idx := Partition(arr, l, r); idx != pos && l < r; idx = Partition(arr, l, r) {
		if idx < pos {
			l = idx + 1
		} else {
			r = idx - 1
		}
	}

	return arr[pos]
}

// Partition 以[l, r]中间的元素为轴划分，返回轴最终的下标
func Partition(arr []float64, l, r int) int {
	if r < l {
		return l
	}
	slice := arr[l : r+1]

	m := len(slice) / 2
	slice[0], slice[m] = slice[m], slice[0]
	pivot := slice[0]

	i := 0
	j := len(slice) - 1

	for i < j {
		for i < j && slice[j] > pivot {
			j--
		}
		slice[i] = slice[j]

		for i < j && slice[i] <= pivot {
			i++
		}
		slice[j] = slice[i]
	}
	slice[i] = pivot

	return l + i
}

// Percentile 返回arr中第p百分位（0-100）的值。会打乱arr的顺序
func Percentile(arr []float64, p int) float64 {
	if len(arr) == 0 {
		return math.NaN()
	}
	pos := len(arr) * p / 100
	if pos >= len(arr) {
		pos = len(arr) - 1
	}
	return GetSortedPositionValue(arr, pos)
}
