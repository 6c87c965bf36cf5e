package core

// Point 一个n维的数据点。读取后不可修改
type Point []float64

// Dim 返回点的维度
func (p Point) Dim() int {
	return len(p)
}

// Clone 复制一个新的Point，避免共享底层数组
func (p Point) Clone() Point {
	if p == nil {
		return nil
	}
	c := make(Point, len(p))
	copy(c, p)
	return c
}

// PointSet 同一维度的点的集合。维度由第一个点决定
type PointSet []Point

// Dim 返回点集的维度。空点集返回0
func (s PointSet) Dim() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Clone 深拷贝点集
func (s PointSet) Clone() PointSet {
	if s == nil {
		return nil
	}
	c := make(PointSet, len(s))
	for i, p := range s {
		c[i] = p.Clone()
	}
	return c
}

// Float32 转换为float32的二维数组，用于与只接受float32的算法库交互
func (s PointSet) Float32() [][]float32 {
	result := make([][]float32, len(s))
	for i, p := range s {
		row := make([]float32, len(p))
		for j, f := range p {
			row[j] = float32(f)
		}
		result[i] = row
	}
	return result
}

// FromFloat32 从float32二维数组构建点集
func FromFloat32(data [][]float32) PointSet {
	result := make(PointSet, len(data))
	for i, row := range data {
		p := make(Point, len(row))
		for j, f := range row {
			p[j] = float64(f)
		}
		result[i] = p
	}
	return result
}

const LineBreak = '\n'
