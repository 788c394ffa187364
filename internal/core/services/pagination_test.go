package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/framescope/internal/core/domain"
)

func flatSet(n int) domain.ResultSet {
	records := make([]domain.FrameRecord, n)
	for i := range records {
		records[i] = domain.FrameRecord{VideoName: "V.mp4", KeyframeID: fmt.Sprintf("%05d", i)}
	}
	return domain.NewFlatResultSet(records)
}

func temporalSet(rows int) domain.ResultSet {
	grid := make([][]*domain.FrameRecord, rows)
	for i := range grid {
		grid[i] = []*domain.FrameRecord{
			{VideoName: fmt.Sprintf("V%d.mp4", i), KeyframeID: "1"},
			nil,
		}
	}
	rs, err := FlattenTemporal(grid)
	if err != nil {
		panic(err)
	}
	return rs
}

func TestResultsView_FlatPaging(t *testing.T) {
	v := NewResultsView(50)
	v.SetResults(flatSet(120))

	assert.Equal(t, domain.ViewGrid, v.Mode())
	info := v.PageInfo()
	assert.Equal(t, 1, info.Page)
	assert.Equal(t, 3, info.TotalPages)
	assert.True(t, info.PrevDisabled())
	assert.False(t, info.NextDisabled())
	assert.Len(t, v.PageRecords(), 50)

	v.DisplayPage(3)
	page := v.PageRecords()
	require.Len(t, page, 20)
	assert.Equal(t, 100, page[0].Index)
	assert.Equal(t, 119, page[19].Index)
	assert.True(t, v.PageInfo().NextDisabled())
}

func TestResultsView_DisplayPageClamps(t *testing.T) {
	v := NewResultsView(10)
	v.SetResults(flatSet(25))

	v.DisplayPage(99)
	assert.Equal(t, 3, v.PageInfo().Page)

	v.DisplayPage(-4)
	assert.Equal(t, 1, v.PageInfo().Page)
}

func TestResultsView_SetResultsResetsToFirstPage(t *testing.T) {
	v := NewResultsView(10)
	v.SetResults(flatSet(40))
	v.DisplayPage(4)

	v.SetResults(flatSet(40))

	assert.Equal(t, 1, v.PageInfo().Page)
}

func TestResultsView_ShrinkingClampsPage(t *testing.T) {
	v := NewResultsView(10)
	v.SetResults(flatSet(100))
	v.DisplayPage(10)

	v.SetResultsPerPage(50)

	info := v.PageInfo()
	assert.Equal(t, 2, info.Page)
	assert.Equal(t, 2, info.TotalPages)
	assert.Equal(t, 50, v.ResultsPerPage())
}

func TestResultsView_SetResultsPerPageIgnoresInvalid(t *testing.T) {
	v := NewResultsView(10)

	v.SetResultsPerPage(0)

	assert.Equal(t, 10, v.ResultsPerPage())
}

func TestResultsView_NextPrevBounds(t *testing.T) {
	v := NewResultsView(10)
	v.SetResults(flatSet(15))

	assert.False(t, v.PrevPage())
	assert.True(t, v.NextPage())
	assert.False(t, v.NextPage())
	assert.Equal(t, 2, v.PageInfo().Page)
	assert.True(t, v.PrevPage())
}

func TestResultsView_TemporalMode(t *testing.T) {
	v := NewResultsView(2)
	v.SetResults(temporalSet(5))

	assert.Equal(t, domain.ViewTable, v.Mode())
	assert.Empty(t, v.PageRecords())

	info := v.PageInfo()
	assert.Equal(t, 5, info.Total)
	assert.Equal(t, 3, info.TotalPages)

	rows := v.VisibleRows()
	require.Len(t, rows, 2)
	assert.Equal(t, "V0.mp4", rows[0].VideoName)
	assert.True(t, v.RowVisible(1))
	assert.False(t, v.RowVisible(2))

	require.True(t, v.NextPage())
	rows = v.VisibleRows()
	require.Len(t, rows, 2)
	assert.Equal(t, "V2.mp4", rows[0].VideoName)
	assert.False(t, v.RowVisible(0))
	assert.True(t, v.RowVisible(3))
}

func TestResultsView_TemporalResizeClamps(t *testing.T) {
	v := NewResultsView(1)
	v.SetResults(temporalSet(4))
	v.DisplayPage(4)

	v.SetResultsPerPage(3)

	assert.Equal(t, 2, v.PageInfo().Page)
	assert.Len(t, v.VisibleRows(), 1)
}

func TestResultsView_SwitchBackToGrid(t *testing.T) {
	v := NewResultsView(10)
	v.SetResults(temporalSet(3))
	v.SetResults(flatSet(3))

	assert.Equal(t, domain.ViewGrid, v.Mode())
	assert.Empty(t, v.VisibleRows())
	assert.Len(t, v.PageRecords(), 3)
}

func TestResultsView_HandleKey_Guards(t *testing.T) {
	tests := []struct {
		name         string
		set          domain.ResultSet
		key          string
		modalOpen    bool
		inputFocused bool
		wantMoved    bool
	}{
		{"grid right", flatSet(30), KeyNextPage, false, false, true},
		{"grid modal open", flatSet(30), KeyNextPage, true, false, false},
		{"grid input focused", flatSet(30), KeyNextPage, false, true, false},
		{"grid other key", flatSet(30), "enter", false, false, false},
		{"grid left on first page", flatSet(30), KeyPrevPage, false, false, false},
		{"table right", temporalSet(30), KeyNextPage, false, false, true},
		{"table modal open", temporalSet(30), KeyNextPage, true, false, false},
		{"table input focused", temporalSet(30), KeyNextPage, false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewResultsView(10)
			v.SetResults(tt.set)

			moved := v.HandleKey(tt.key, tt.modalOpen, tt.inputFocused)

			assert.Equal(t, tt.wantMoved, moved)
			want := 1
			if tt.wantMoved {
				want = 2
			}
			assert.Equal(t, want, v.PageInfo().Page)
		})
	}
}

func TestResultsView_HandleKey_OnlyActivePaginatorMoves(t *testing.T) {
	v := NewResultsView(10)
	v.SetResults(temporalSet(30))

	require.True(t, v.HandleKey(KeyNextPage, false, false))

	// A single key press advances exactly one page.
	assert.Equal(t, 2, v.PageInfo().Page)
}

func TestResultsView_EmptySet(t *testing.T) {
	v := NewResultsView(10)
	v.SetResults(domain.EmptyResultSet())

	info := v.PageInfo()
	assert.Equal(t, 1, info.Page)
	assert.Equal(t, 1, info.TotalPages)
	assert.Empty(t, v.PageRecords())
	assert.False(t, v.NextPage())
}

func TestResultsView_CachedRender(t *testing.T) {
	v := NewResultsView(10)
	v.SetResults(flatSet(2))
	rec, ok := v.Record(0)
	require.True(t, ok)

	calls := 0
	render := func(r domain.FrameRecord) string {
		calls++
		return r.CacheKey()
	}

	assert.Equal(t, "V.mp4_00000", v.CachedRender(rec, render))
	assert.Equal(t, "V.mp4_00000", v.CachedRender(rec, render))
	assert.Equal(t, 1, calls)

	v.SetResults(flatSet(2))
	v.CachedRender(rec, render)
	assert.Equal(t, 2, calls)
}

func TestResultsView_PageInvariantHolds(t *testing.T) {
	v := NewResultsView(7)
	v.SetResults(flatSet(50))

	ops := []func(){
		func() { v.NextPage() },
		func() { v.SetResultsPerPage(3) },
		func() { v.DisplayPage(100) },
		func() { v.SetResultsPerPage(40) },
		func() { v.PrevPage() },
		func() { v.SetResults(flatSet(5)) },
		func() { v.SetResultsPerPage(1) },
		func() { v.DisplayPage(5) },
		func() { v.SetResults(temporalSet(3)) },
		func() { v.DisplayPage(9) },
	}

	for i, op := range ops {
		op()
		info := v.PageInfo()
		assert.GreaterOrEqual(t, info.Page, 1, "op %d", i)
		assert.LessOrEqual(t, info.Page, info.TotalPages, "op %d", i)
	}
}
