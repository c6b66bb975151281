package matching_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmatch/matching"
)

// sevenBySeven is the reference 7×7 instance; its optimum is 65.
var sevenBySeven = [][]int64{
	{4, 10, 10, 10, 2, 9, 3},
	{6, 8, 5, 12, 9, 7, 2},
	{11, 9, 6, 7, 9, 5, 15},
	{3, 9, 6, 7, 5, 6, 3},
	{2, 6, 5, 3, 2, 4, 2},
	{10, 8, 11, 4, 11, 2, 11},
	{3, 4, 5, 4, 3, 6, 8},
}

// TestSolve_SevenBySeven checks total, perfectness and the exact assignment.
func TestSolve_SevenBySeven(t *testing.T) {
	e, err := matching.New(sevenBySeven)
	require.NoError(t, err)

	total, err := e.Solve()
	require.NoError(t, err)
	assert.Equal(t, int64(65), total, "maximum weight")
	assert.Equal(t, 7, e.Size(), "all left vertices matched")
	assert.True(t, e.Done())

	want := []matching.Pair{
		{Left: 0, Right: 5, Cost: 9},
		{Left: 1, Right: 3, Cost: 12},
		{Left: 2, Right: 0, Cost: 11},
		{Left: 3, Right: 1, Cost: 9},
		{Left: 4, Right: 2, Cost: 5},
		{Left: 5, Right: 4, Cost: 11},
		{Left: 6, Right: 6, Cost: 8},
	}
	assert.Equal(t, want, e.Pairs())

	st := e.Stats()
	assert.Equal(t, 5, st.Phases)
	assert.Equal(t, 3, st.Relaxations)
	assert.Equal(t, 7, st.Augmentations)
}

// TestSolve_SevenBySevenDuality checks the strong duality certificate.
func TestSolve_SevenBySevenDuality(t *testing.T) {
	e, err := matching.New(sevenBySeven)
	require.NoError(t, err)
	total, err := e.Solve()
	require.NoError(t, err)

	left, right := e.Potentials()
	assert.Equal(t, []int64{7, 9, 11, 5, 2, 10, 4}, left)
	assert.Equal(t, []int64{0, 4, 3, 3, 1, 2, 4}, right)
	assert.Equal(t, total, sum(left)+sum(right), "Σ potentials must equal optimum for n = m")
	assert.Equal(t, total, e.DualBound())
}

// TestSolve_OneByOne: a single edge is matched in one phase, no relaxation.
func TestSolve_OneByOne(t *testing.T) {
	e, err := matching.New([][]int64{{5}})
	require.NoError(t, err)

	total, err := e.Solve()
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Equal(t, []matching.Pair{{Left: 0, Right: 0, Cost: 5}}, e.Pairs())
	assert.Equal(t, matching.Stats{Phases: 1, Relaxations: 0, Augmentations: 1}, e.Stats())
}

// TestSolve_TwoByThree: n < m leaves exactly one right vertex unmatched.
func TestSolve_TwoByThree(t *testing.T) {
	e, err := matching.New([][]int64{
		{1, 2, 3},
		{4, 5, 6},
	})
	require.NoError(t, err)

	total, err := e.Solve()
	require.NoError(t, err)
	assert.Equal(t, int64(8), total)
	assert.Len(t, e.Pairs(), 2)

	unmatched := 0
	for j := 0; j < e.Cols(); j++ {
		p, err := e.PartnerOfRight(j)
		require.NoError(t, err)
		if p == matching.Unmatched {
			unmatched++
		}
	}
	assert.Equal(t, 1, unmatched, "exactly one right vertex stays free")
	assert.Equal(t, total, e.DualBound(), "slack rows close the duality gap")
}

// TestSolve_WideSingleRow: one row over many columns stays near-linear in m.
func TestSolve_WideSingleRow(t *testing.T) {
	const m = 100000
	row := make([]int64, m)
	for j := range row {
		row[j] = int64(j % 1000)
	}

	start := time.Now()
	res, err := matching.MaxWeight([][]int64{row})
	elapsed := time.Since(start)
	require.NoError(t, err)

	assert.Equal(t, int64(999), res.Total)
	assert.Equal(t, []matching.Pair{{Left: 0, Right: 999, Cost: 999}}, res.Pairs)
	assert.Equal(t, matching.Stats{Phases: 1, Relaxations: 0, Augmentations: 1}, res.Stats)
	assert.Less(t, elapsed, 2*time.Second, "slack rows must not be scanned one by one")
}

// TestSolve_ThreeByThree is the small textbook instance.
func TestSolve_ThreeByThree(t *testing.T) {
	res, err := matching.MaxWeight([][]int64{
		{3, 1, 2},
		{4, 2, 5},
		{5, 3, 1},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), res.Total)
	assert.Equal(t, []matching.Pair{
		{Left: 0, Right: 1, Cost: 1},
		{Left: 1, Right: 2, Cost: 5},
		{Left: 2, Right: 0, Cost: 5},
	}, res.Pairs)
	assert.Equal(t, 2, res.Stats.Relaxations)
}

// TestSolve_AllZero: every edge is tight from the start.
func TestSolve_AllZero(t *testing.T) {
	res, err := matching.MaxWeight([][]int64{{0, 0, 0}})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Total)
	assert.Len(t, res.Pairs, 1)
	assert.Equal(t, 0, res.Stats.Relaxations)
}

// TestSolve_Idempotent: solving again after completion changes nothing.
func TestSolve_Idempotent(t *testing.T) {
	e, err := matching.New(sevenBySeven)
	require.NoError(t, err)
	first, err := e.Solve()
	require.NoError(t, err)

	pairs := e.Pairs()
	left, right := e.Potentials()
	stats := e.Stats()

	second, err := e.Solve()
	require.NoError(t, err)
	progressed, err := e.Step()
	require.NoError(t, err)

	assert.False(t, progressed, "Step after completion is a no-op")
	assert.Equal(t, first, second)
	assert.Equal(t, pairs, e.Pairs())
	l2, r2 := e.Potentials()
	assert.Equal(t, left, l2)
	assert.Equal(t, right, r2)
	assert.Equal(t, stats, e.Stats())
}

// TestStep_MatchCountNonDecreasing drives the engine phase by phase.
func TestStep_MatchCountNonDecreasing(t *testing.T) {
	e, err := matching.New(sevenBySeven)
	require.NoError(t, err)

	prev := e.Size()
	for !e.Done() {
		progressed, err := e.Step()
		require.NoError(t, err)
		require.True(t, progressed)
		require.GreaterOrEqual(t, e.Size(), prev)
		prev = e.Size()
	}
	assert.Equal(t, 7, prev)
}

// TestNew_Preconditions covers every malformed-input sentinel.
func TestNew_Preconditions(t *testing.T) {
	cases := []struct {
		name  string
		costs [][]int64
		err   error
	}{
		{"nil", nil, matching.ErrEmptyMatrix},
		{"no rows", [][]int64{}, matching.ErrEmptyMatrix},
		{"no columns", [][]int64{{}}, matching.ErrEmptyMatrix},
		{"jagged", [][]int64{{1, 2}, {3}}, matching.ErrJaggedMatrix},
		{"n > m", [][]int64{{1}, {2}}, matching.ErrTooManyRows},
		{"negative", [][]int64{{1, -2}}, matching.ErrNegativeWeight},
		{"max int64", [][]int64{{1, math.MaxInt64}}, matching.ErrWeightTooLarge},
		{"just above limit", [][]int64{{matching.CostLimit(3) + 1, 0, 0}}, matching.ErrWeightTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := matching.New(tc.costs)
			assert.ErrorIs(t, err, tc.err)
			assert.Nil(t, e, "no partial engine on precondition failure")
		})
	}
}

// TestNew_CostLimit: the largest accepted entry solves exactly and certifies.
func TestNew_CostLimit(t *testing.T) {
	limit := matching.CostLimit(2)
	assert.Equal(t, int64(math.MaxInt64/8), limit)
	assert.Equal(t, int64(math.MaxInt64/4), matching.CostLimit(0))

	e, err := matching.New([][]int64{{limit, limit}, {limit, 0}})
	require.NoError(t, err)
	total, err := e.Solve()
	require.NoError(t, err)
	assert.Equal(t, 2*limit, total)
	assert.Equal(t, total, e.DualBound())
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			sl, err := e.Slack(i, j)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, sl, int64(0))
		}
	}
}

// TestNew_CopiesInput: later caller mutations do not leak into the engine.
func TestNew_CopiesInput(t *testing.T) {
	costs := [][]int64{{1, 9}, {9, 1}}
	e, err := matching.New(costs)
	require.NoError(t, err)
	costs[0][1] = 0

	total, err := e.Solve()
	require.NoError(t, err)
	assert.Equal(t, int64(18), total)
	assert.Equal(t, [][]int64{{1, 9}, {9, 1}}, e.Costs().Slice())
}

// TestAccessors_OutOfRange checks bounds on every index-taking accessor.
func TestAccessors_OutOfRange(t *testing.T) {
	e, err := matching.New([][]int64{{1, 2}})
	require.NoError(t, err)

	_, err = e.PartnerOfLeft(1)
	assert.ErrorIs(t, err, matching.ErrVertexOutOfRange)
	_, err = e.PartnerOfLeft(-1)
	assert.ErrorIs(t, err, matching.ErrVertexOutOfRange)
	_, err = e.PartnerOfRight(2)
	assert.ErrorIs(t, err, matching.ErrVertexOutOfRange)
	_, err = e.Slack(0, 2)
	assert.ErrorIs(t, err, matching.ErrVertexOutOfRange)
	_, err = e.Costs().At(1, 0)
	assert.ErrorIs(t, err, matching.ErrVertexOutOfRange)
}

// TestAccessors_BeforeSolve: a fresh engine has an empty matching and the
// row-maximum start potentials.
func TestAccessors_BeforeSolve(t *testing.T) {
	e, err := matching.New([][]int64{{3, 7, 1}, {2, 2, 8}})
	require.NoError(t, err)

	assert.Equal(t, 0, e.Size())
	assert.Empty(t, e.Pairs())
	assert.Equal(t, int64(0), e.Total())
	p, err := e.PartnerOfLeft(0)
	require.NoError(t, err)
	assert.Equal(t, matching.Unmatched, p)

	left, right := e.Potentials()
	assert.Equal(t, []int64{7, 8}, left)
	assert.Equal(t, []int64{0, 0, 0}, right)

	sl, err := e.Slack(0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), sl, "row maximum is tight")
}

// TestHooks_Fire verifies hook payloads on the 3×3 instance.
func TestHooks_Fire(t *testing.T) {
	var (
		phases  []matching.PhaseInfo
		relaxes []matching.RelaxInfo
		augs    [][2]int
	)
	e, err := matching.New([][]int64{{3, 1, 2}, {4, 2, 5}, {5, 3, 1}},
		matching.WithOnPhase(func(p matching.PhaseInfo) { phases = append(phases, p) }),
		matching.WithOnRelax(func(r matching.RelaxInfo) { relaxes = append(relaxes, r) }),
		matching.WithOnAugment(func(l, r int) { augs = append(augs, [2]int{l, r}) }),
		matching.WithOnPhase(nil), // ignored
	)
	require.NoError(t, err)
	_, err = e.Solve()
	require.NoError(t, err)

	require.Len(t, phases, e.Stats().Phases)
	require.Len(t, relaxes, e.Stats().Relaxations)
	assert.Len(t, augs, 3)
	for i, p := range phases {
		assert.Equal(t, i+1, p.Phase)
		if p.Relaxed {
			assert.Positive(t, p.Delta)
		}
	}
	assert.Equal(t, 3, phases[len(phases)-1].Matched)
	for _, r := range relaxes {
		assert.Positive(t, r.Delta)
		assert.Positive(t, r.VisitedLeft)
	}
}

// TestHooks_Chain: registering a hook twice runs both, in order.
func TestHooks_Chain(t *testing.T) {
	var order []string
	_, err := matching.MaxWeight([][]int64{{5}},
		matching.WithOnAugment(func(int, int) { order = append(order, "first") }),
		matching.WithOnAugment(func(int, int) { order = append(order, "second") }),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

func sum(xs []int64) int64 {
	var s int64
	for _, x := range xs {
		s += x
	}

	return s
}
