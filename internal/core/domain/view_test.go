package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 50))
	assert.Equal(t, 1, TotalPages(50, 50))
	assert.Equal(t, 2, TotalPages(51, 50))
	assert.Equal(t, 3, TotalPages(101, 50))
	assert.Equal(t, 1, TotalPages(10, 0))
}

func TestPageInfo_Bounds(t *testing.T) {
	p := PageInfo{Page: 3, PageSize: 10, Total: 25, TotalPages: 3}

	start, end := p.Bounds()

	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)
	assert.False(t, p.PrevDisabled())
	assert.True(t, p.NextDisabled())
}

func TestPageInfo_SinglePage(t *testing.T) {
	p := PageInfo{Page: 1, PageSize: 10, Total: 0, TotalPages: 1}

	start, end := p.Bounds()

	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
	assert.True(t, p.PrevDisabled())
	assert.True(t, p.NextDisabled())
}

func TestNavigatorState(t *testing.T) {
	assert.False(t, NavigatorIdle.ModalOpen())
	assert.True(t, NavigatorLoading.ModalOpen())
	assert.True(t, NavigatorDisplaying.ModalOpen())
	assert.Equal(t, "loading", NavigatorLoading.String())
	assert.Equal(t, "table", ViewTable.String())
	assert.Equal(t, "grid", ViewGrid.String())
}
