package kmeans

import (
	"context"
	"math/rand"
	"testing"

	"github.com/packagewjx/lloyd/pkg/core"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blobs(seed int64, perBlob int) core.PointSet {
	r := rand.New(rand.NewSource(seed))
	centers := []core.Point{{0, 0}, {20, 20}, {-20, 20}}
	points := make(core.PointSet, 0, perBlob*len(centers))
	for _, c := range centers {
		for i := 0; i < perBlob; i++ {
			points = append(points, core.Point{c[0] + r.Float64(), c[1] + r.Float64()})
		}
	}
	return points
}

func TestCluster_SinglePoint(t *testing.T) {
	res, err := New(WithSeed(1)).Cluster(context.Background(), core.PointSet{{5, 5}}, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, []core.Point{{5, 5}}, res.Centroids)
	assert.Equal(t, 1, res.Iterations)
	assert.True(t, res.Converged)
	assert.Equal(t, []int{1}, res.Sizes)
}

func TestCluster_EmptyInput(t *testing.T) {
	res, err := New().Cluster(context.Background(), nil, 3, nil)
	assert.NoError(t, err)
	assert.Nil(t, res)

	res, err = New().Cluster(context.Background(), core.PointSet{}, 3, nil)
	assert.NoError(t, err)
	assert.Nil(t, res)
}

func TestCluster_InvalidK(t *testing.T) {
	_, err := New().Cluster(context.Background(), core.PointSet{{1}}, 0, nil)
	assert.True(t, errors.Is(err, ErrInvalidK))
}

func TestCluster_BadInitialPositions(t *testing.T) {
	points := core.PointSet{{1, 1}, {2, 2}}

	_, err := New().Cluster(context.Background(), points, 2, []core.Point{{1, 1}})
	assert.True(t, errors.Is(err, ErrBadInitialPositions))

	_, err = New().Cluster(context.Background(), points, 2, []core.Point{{1, 1}, {1, 1, 1}})
	assert.True(t, errors.Is(err, ErrBadInitialPositions))
}

func TestCluster_InitialNotModified(t *testing.T) {
	initial := []core.Point{{0}, {1}}
	_, err := New().Cluster(context.Background(), core.PointSet{{0}, {1}, {10}, {11}}, 2, initial)
	require.NoError(t, err)
	assert.Equal(t, []core.Point{{0}, {1}}, initial)
}

func TestCluster_AssignmentDeterministic(t *testing.T) {
	points := blobs(7, 30)
	centroids := []core.Point{{1, 1}, {15, 15}, {-10, 10}}

	first := Assign(points, centroids)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Assign(points, centroids))
	}

	a, err := New().Cluster(context.Background(), points, 3, centroids)
	require.NoError(t, err)
	b, err := New().Cluster(context.Background(), points, 3, centroids)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCluster_EmptyClusterKeepsPosition(t *testing.T) {
	points := core.PointSet{{0, 0}, {0, 1}, {10, 10}, {10, 11}}
	initial := []core.Point{{0, 0.5}, {10, 10.5}, {100, 100}}

	res, err := New().Cluster(context.Background(), points, 3, initial)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Equal(t, core.Point{100, 100}, res.Centroids[2])
	assert.Equal(t, []int{2, 2, 0}, res.Sizes)
	assert.Equal(t, []int{0, 0, 1, 1}, res.Assignment)
}

func TestCluster_FixedPointIdempotent(t *testing.T) {
	points := blobs(3, 50)

	first, err := New(WithSeed(11)).Cluster(context.Background(), points, 3, nil)
	require.NoError(t, err)
	require.True(t, first.Converged)

	again, err := New(WithSeed(99)).Cluster(context.Background(), points, 3, first.Centroids)
	require.NoError(t, err)
	assert.True(t, again.Converged)
	assert.Equal(t, 1, again.Iterations)
	assert.Equal(t, first.Centroids, again.Centroids)
}

func TestCluster_Mean(t *testing.T) {
	points := core.PointSet{{0, 0}, {2, 0}, {1, 2}}

	res, err := New().Cluster(context.Background(), points, 1, []core.Point{{1, 1}})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Centroids[0][0], 1e-9)
	assert.InDelta(t, 0.667, res.Centroids[0][1], 1e-3)
	assert.Equal(t, 2, res.Iterations)
}

func TestCluster_MoreClustersThanPoints(t *testing.T) {
	points := core.PointSet{{1, 1}, {2, 2}}

	res, err := New().Cluster(context.Background(), points, 4,
		[]core.Point{{1, 1}, {2, 2}, {50, 50}, {-50, -50}})
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Equal(t, []int{1, 1, 0, 0}, res.Sizes)
	assert.Equal(t, core.Point{50, 50}, res.Centroids[2])
	assert.Equal(t, core.Point{-50, -50}, res.Centroids[3])

	res, err = New(WithSeed(5)).Cluster(context.Background(), points, 5, nil)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Len(t, res.Centroids, 5)
	empty := 0
	for _, size := range res.Sizes {
		if size == 0 {
			empty++
		}
	}
	assert.GreaterOrEqual(t, empty, 3)
}

func TestNearest_TieGoesToLowestIndex(t *testing.T) {
	p := core.Point{0, 0}
	assert.Equal(t, 0, Nearest(p, []core.Point{{1, 0}, {-1, 0}}))
	assert.Equal(t, 0, Nearest(p, []core.Point{{-1, 0}, {1, 0}}))
	assert.Equal(t, 1, Nearest(p, []core.Point{{5, 5}, {0, 3}, {3, 0}, {-3, 0}}))

	for _, scale := range []float64{1e-6, 1, 1e6} {
		centroids := []core.Point{{0, scale}, {scale, 0}, {0, -scale}, {-scale, 0}}
		assert.Equal(t, 0, Nearest(p, centroids))
	}

	res, err := New().Cluster(context.Background(), core.PointSet{{0, 0}}, 2,
		[]core.Point{{1, 0}, {-1, 0}})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, res.Sizes)
	assert.Equal(t, core.Point{0, 0}, res.Centroids[0])
	assert.Equal(t, core.Point{-1, 0}, res.Centroids[1])
}

func TestCluster_SameSeedSameResult(t *testing.T) {
	points := blobs(42, 40)

	a, err := New(WithSeed(2020)).Cluster(context.Background(), points, 3, nil)
	require.NoError(t, err)
	b, err := New(WithSeed(2020)).Cluster(context.Background(), points, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCluster_MaxIterations(t *testing.T) {
	points := core.PointSet{{0}, {1}, {10}, {11}}
	initial := []core.Point{{0}, {1}}

	res, err := New(WithMaxIterations(1)).Cluster(context.Background(), points, 2, initial)
	assert.True(t, errors.Is(err, ErrNotConverged))
	require.NotNil(t, res)
	assert.False(t, res.Converged)
	assert.Equal(t, 1, res.Iterations)

	res, err = New(WithMaxIterations(0)).Cluster(context.Background(), points, 2, initial)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Equal(t, 3, res.Iterations)
	assert.Equal(t, []core.Point{{0.5}, {10.5}}, res.Centroids)
}

func TestCluster_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Cluster(ctx, blobs(1, 10), 3, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCluster_ParallelMatchesSequential(t *testing.T) {
	points := blobs(9, 200)
	initial := []core.Point{{1, 1}, {2, 2}, {3, 3}, {4, 4}}

	sequential, err := New().Cluster(context.Background(), points, 4, initial)
	require.NoError(t, err)
	parallel, err := New(WithWorkers(4)).Cluster(context.Background(), points, 4, initial)
	require.NoError(t, err)
	assert.Equal(t, sequential, parallel)
}

func TestBounds(t *testing.T) {
	minvec, maxvec := Bounds(core.PointSet{{1, 5}, {-2, 7}, {3, 6}})
	assert.Equal(t, core.Point{-2, 5}, minvec)
	assert.Equal(t, core.Point{3, 7}, maxvec)

	minvec, maxvec = Bounds(nil)
	assert.Nil(t, minvec)
	assert.Nil(t, maxvec)
}

func TestInitialPositionsInsideBounds(t *testing.T) {
	points := blobs(4, 20)
	minvec, maxvec := Bounds(points)
	positions := New(WithSeed(8)).initialPositions(points, 10)
	assert.Len(t, positions, 10)
	for _, p := range positions {
		for d := range p {
			assert.GreaterOrEqual(t, p[d], minvec[d])
			assert.LessOrEqual(t, p[d], maxvec[d])
		}
	}
}
