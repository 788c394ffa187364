package cli

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/framescope/internal/core/domain"
)

func TestVersionCmd(t *testing.T) {
	original := version
	SetVersion("1.4.0")
	t.Cleanup(func() { version = original })
	SetServices(nil)

	out := mustExecute(t, "version")

	assert.Contains(t, out, "framescope 1.4.0 ("+runtime.Version())
	assert.NotContains(t, out, "hub:")
}

func TestVersionCmd_ShowsHub(t *testing.T) {
	setupTestServices(t)

	out := mustExecute(t, "version")

	assert.Contains(t, out, "hub: "+domain.DefaultHubBaseURL)
}

func TestSetVersion_IgnoresEmpty(t *testing.T) {
	original := version
	t.Cleanup(func() { version = original })

	SetVersion("2.0.0")
	SetVersion("")

	assert.Equal(t, "2.0.0", version)
}
