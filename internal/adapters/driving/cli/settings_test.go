package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/framescope/internal/core/domain"
)

func TestSettingsShow_Defaults(t *testing.T) {
	setupTestServices(t)

	out := mustExecute(t, "settings")

	assert.Contains(t, out, "Base URL:   "+domain.DefaultHubBaseURL)
	assert.Contains(t, out, "Model:              SIGLIP_V2")
	assert.Contains(t, out, "K:                  100")
	assert.Contains(t, out, "Results per page: 50")
}

func TestSettingsSet(t *testing.T) {
	env := setupTestServices(t)

	out := mustExecute(t, "settings", "set", "search.model", "temporal_meta_v2")

	assert.Contains(t, out, "search.model updated.")
	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.Model("TEMPORAL_META_V2"), settings.Query.Model)

	out = mustExecute(t, "settings", "show")
	assert.Contains(t, out, "TEMPORAL_META_V2")
}

func TestSettingsSet_Invalid(t *testing.T) {
	setupTestServices(t)

	tests := [][]string{
		{"no.such.key", "1"},
		{"search.k", "-5"},
		{"search.return_s2t", "maybe"},
		{"search.model", "GPT"},
		{"history.backend", "redis"},
	}

	for _, args := range tests {
		t.Run(args[0], func(t *testing.T) {
			_, err := execute(t, append([]string{"settings", "set"}, args...)...)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSettingsKeys(t *testing.T) {
	setupTestServices(t)

	out := mustExecute(t, "settings", "keys")

	assert.Contains(t, out, "hub.base_url")
	assert.Contains(t, out, "view.results_per_page")
	assert.Contains(t, out, "history.backend")
}

func TestSettings_NotConfigured(t *testing.T) {
	SetServices(nil)

	_, err := execute(t, "settings", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}
