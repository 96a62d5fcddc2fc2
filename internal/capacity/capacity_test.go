package capacity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gorcframe/internal/grid"
	"github.com/alexiusacademia/gorcframe/internal/nscp"
)

func TestAnalyzeSafeColumn(t *testing.T) {
	r := Analyze(Input{
		SpanX:   6,
		SpanY:   5,
		Floors:  7,
		Section: Section{Width: 60, Depth: 60, Grade: nscp.FC280},
	})

	assert.InDelta(t, 30.0, r.TributaryArea, 1e-9)
	assert.InDelta(t, 189.0, r.Demand, 1e-9)
	// 0.65 × 0.85 × 280 × 60 × 60 / 1000
	assert.InDelta(t, 556.92, r.Capacity, 1e-9)
	assert.InDelta(t, 0.3394, r.Ratio, 1e-4)
	assert.True(t, r.IsSafe)
	assert.Equal(t, Safe, r.State())
	assert.NoError(t, r.Require())
	assert.Nil(t, r.Suggestions())
}

func TestAnalyzeSmallColumn(t *testing.T) {
	sec := Section{Width: 50, Depth: 50, Grade: nscp.FC210}
	r := Analyze(Input{SpanX: 6, SpanY: 5, Floors: 7, Section: sec})

	assert.InDelta(t, 290.0625, r.Capacity, 1e-9)
	assert.InDelta(t, 0.6516, r.Ratio, 1e-4)
	assert.True(t, r.IsSafe)
}

func TestAnalyzeFlipsToBlocked(t *testing.T) {
	sec := Section{Width: 50, Depth: 50, Grade: nscp.FC210}

	var firstUnsafe int
	for floors := 1; floors <= 40; floors++ {
		r := Analyze(Input{SpanX: 6, SpanY: 5, Floors: floors, Section: sec})
		if !r.IsSafe {
			firstUnsafe = floors
			assert.GreaterOrEqual(t, r.Ratio, 1.0)
			break
		}
		assert.Less(t, r.Ratio, 1.0)
	}
	// 27 t per floor against 290.06 t
	assert.Equal(t, 11, firstUnsafe)

	r := Analyze(Input{SpanX: 6, SpanY: 5, Floors: firstUnsafe, Section: sec})
	assert.Equal(t, Blocked, r.State())
	assert.True(t, errors.Is(r.Require(), ErrBlocked))
	assert.Len(t, r.Suggestions(), 3)
}

func TestZeroResultIsUnverified(t *testing.T) {
	var r Result
	assert.Equal(t, Unverified, r.State())
	assert.ErrorIs(t, r.Require(), ErrBlocked)
	assert.Nil(t, r.Suggestions())
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	in := Input{SpanX: 5, SpanY: 5, Floors: 9, Section: Section{Width: 70, Depth: 60, Grade: nscp.FC350}}
	assert.Equal(t, Analyze(in), Analyze(in))
}

func TestStateText(t *testing.T) {
	for _, s := range []State{Unverified, Safe, Blocked} {
		text, err := s.MarshalText()
		require.NoError(t, err)

		var back State
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}

	var s State
	assert.Error(t, s.UnmarshalText([]byte("maybe")))
}

func TestStatuses(t *testing.T) {
	g := grid.Plan(grid.Site{Width: 12, Depth: 20}, 6, 5)
	sec := Section{Width: 50, Depth: 50, Grade: nscp.FC210}

	unsafe := Analyze(Input{SpanX: 6, SpanY: 5, Floors: 20, Section: sec})
	require.False(t, unsafe.IsSafe)

	statuses := Statuses(g, unsafe)
	require.Len(t, statuses, g.TotalColumns)

	var critical, failing int
	for _, s := range statuses {
		if s.Critical {
			critical++
			assert.Equal(t, 1, s.I)
			assert.Equal(t, 2, s.J)
		}
		if !s.Safe {
			failing++
		}
	}
	assert.Equal(t, 1, critical)
	assert.Equal(t, 1, failing)

	safe := Analyze(Input{SpanX: 6, SpanY: 5, Floors: 2, Section: sec})
	for _, s := range Statuses(g, safe) {
		assert.True(t, s.Safe)
	}
}

func TestResultString(t *testing.T) {
	r := Analyze(Input{SpanX: 6, SpanY: 5, Floors: 7, Section: Section{Width: 60, Depth: 60, Grade: nscp.FC280}})
	assert.Equal(t, "D/C=0.34 (Pu=189.0 t, φPn=556.9 t) safe", r.String())
}

func TestRequireFor(t *testing.T) {
	sec := Section{Width: 60, Depth: 60, Grade: nscp.FC280}
	r := Analyze(Input{SpanX: 6, SpanY: 5, Floors: 7, Section: sec})
	require.True(t, r.IsSafe)

	assert.NoError(t, r.RequireFor(sec))
	assert.Equal(t, sec, r.Section())
	assert.Equal(t, 7, r.Floors())

	err := r.RequireFor(Section{Width: 50, Depth: 50, Grade: nscp.FC280})
	assert.ErrorIs(t, err, ErrStaleVerdict)
	assert.NotErrorIs(t, err, ErrBlocked)

	err = r.RequireFor(Section{Width: 60, Depth: 60, Grade: nscp.FC210})
	assert.ErrorIs(t, err, ErrStaleVerdict)

	// a blocked verdict reports blocked before it reports stale
	small := Section{Width: 50, Depth: 50, Grade: nscp.FC210}
	unsafe := Analyze(Input{SpanX: 6, SpanY: 5, Floors: 20, Section: small})
	assert.ErrorIs(t, unsafe.RequireFor(sec), ErrBlocked)
	assert.ErrorIs(t, Result{}.RequireFor(sec), ErrBlocked)
}
