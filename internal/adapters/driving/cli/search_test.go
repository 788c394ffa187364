package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/framescope/internal/core/domain"
)

func TestSearchCmd_Flags(t *testing.T) {
	for _, name := range []string{"model", "image", "k", "video", "s2t", "page", "json", "translate"} {
		assert.NotNil(t, searchCmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "m", searchCmd.Flags().Lookup("model").Shorthand)
}

func TestSearchCmd_PrintsFrames(t *testing.T) {
	env := setupTestServices(t)

	out := mustExecute(t, "search", "a red car")

	assert.Contains(t, out, "a red car [text, SIGLIP_V2]")
	assert.Contains(t, out, "2 frames (page 1/1)")
	assert.Contains(t, out, "[0] L01_V001 #00100 00:04  score 0.9100")
	assert.Contains(t, out, `"xin chao"`)
	assert.Contains(t, out, "objects: car")
	assert.Equal(t, "a red car", env.hub.form["text"])

	entries, err := env.history.Entries(t.Context())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSearchCmd_FlagsReachHub(t *testing.T) {
	env := setupTestServices(t)

	mustExecute(t, "search", "--k", "12", "--video", "L01_V001", "--s2t", "hello", "boat")

	assert.Equal(t, "12", env.hub.form["k"])
	assert.Equal(t, "L01_V001", env.hub.form["video_filter"])
	assert.Equal(t, "hello", env.hub.form["s2t_filter"])
}

func TestSearchCmd_Translate(t *testing.T) {
	env := setupTestServices(t)

	out := mustExecute(t, "search", "--translate", "con mèo")

	assert.Equal(t, "translated con mèo", env.hub.form["text"])
	assert.Contains(t, out, "translated con mèo")
}

func TestSearchCmd_UsesSettingsModel(t *testing.T) {
	env := setupTestServices(t)
	require.NoError(t, env.settings.Set("search.model", "META"))

	out := mustExecute(t, "search", "dog")

	assert.Contains(t, out, "[text, META]")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	setupTestServices(t)

	out := mustExecute(t, "search", "--json", "a red car")

	var entry domain.SearchContext
	require.NoError(t, json.Unmarshal([]byte(out), &entry))
	assert.Equal(t, "a red car", entry.Query)
	assert.Equal(t, 2, entry.Results.Len())
}

func TestSearchCmd_Pages(t *testing.T) {
	env := setupTestServices(t)
	require.NoError(t, env.settings.Set("view.results_per_page", "1"))

	out := mustExecute(t, "search", "--page", "2", "car")

	assert.Contains(t, out, "2 frames (page 2/2)")
	assert.Contains(t, out, "L01_V002")
	assert.NotContains(t, out, "L01_V001 #")
}

func TestSearchCmd_ImageFile(t *testing.T) {
	env := setupTestServices(t)
	path := filepath.Join(t.TempDir(), "frame.png")
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	require.NoError(t, os.WriteFile(path, png, 0o600))

	mustExecute(t, "search", "--image", path)

	assert.Contains(t, env.hub.form["image_path"], "data:image/png;base64,")
}

func TestSearchCmd_ImageMissing(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "search", "--image", filepath.Join(t.TempDir(), "missing.jpg"))

	assert.Error(t, err)
}

func TestSearchCmd_NoResults(t *testing.T) {
	env := setupTestServices(t)
	env.hub.payload = `[]`

	out := mustExecute(t, "search", "nothing")

	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_ServiceError(t *testing.T) {
	env := setupTestServices(t)
	env.hub.searchErr = errors.New("hub down")

	_, err := execute(t, "search", "test")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search failed")
	assert.Contains(t, err.Error(), "hub down")
}

func TestSearchCmd_ServiceNotConfigured(t *testing.T) {
	SetServices(nil)

	_, err := execute(t, "search", "test")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search service not configured")
}

func TestFormatFrame(t *testing.T) {
	rec := domain.FrameRecord{Index: 3, VideoName: "L02_V010.mp4", KeyframeID: "00061.jpg"}

	assert.Equal(t, "[3] L02_V010 #00061 01:01", formatFrame(rec))
}

func TestFit(t *testing.T) {
	assert.Equal(t, "abcdef", fit("abcdef", 0))
	assert.Equal(t, "abc…", fit("abcdef", 4))
}

func TestFocalFrame(t *testing.T) {
	rec := focalFrame("L01_V001", "00120", 25)

	assert.Equal(t, "L01_V001.mp4", rec.VideoName)
	assert.Equal(t, -1, rec.Index)
	assert.Equal(t, "L01_V001.mp4", focalFrame("L01_V001.mp4", "1", 25).VideoName)
}
