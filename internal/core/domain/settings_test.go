package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSearchSettings(t *testing.T) {
	s := DefaultSearchSettings()

	assert.Equal(t, 100, s.K)
	assert.True(t, s.ReturnS2T)
	assert.True(t, s.ReturnObject)
	assert.True(t, s.FrameClassFilter)
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, DefaultHubBaseURL, s.Hub.BaseURL)
	assert.Equal(t, ModelSiglipV2, s.Query.Model)
	assert.Equal(t, 50, s.View.ResultsPerPage)
	assert.Equal(t, 10, s.View.NeighborFrames)
	assert.Equal(t, HistoryBackendMemory, s.History.Backend)
	assert.False(t, s.Query.AutoTranslate)
}

func TestHistoryBackend(t *testing.T) {
	assert.True(t, HistoryBackendMemory.IsValid())
	assert.True(t, HistoryBackendSQLite.IsValid())
	assert.False(t, HistoryBackend("redis").IsValid())
	assert.Equal(t, "Unknown", HistoryBackend("redis").Description())
	assert.Contains(t, HistoryBackendSQLite.Description(), "session")
}
