package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand_FilterWithQuotes(t *testing.T) {
	cmd, err := ParseCommand(`filter video=L01_V001,L01_V002 s2t="xin chao" in=01:00 out=02:00`)

	require.NoError(t, err)
	assert.Equal(t, "filter", cmd.Name)
	assert.Empty(t, cmd.Args)
	assert.Equal(t, "L01_V001,L01_V002", cmd.Options["video"])
	assert.Equal(t, "xin chao", cmd.Options["s2t"])
	assert.Equal(t, "01:00", cmd.Options["in"])
	assert.Equal(t, "02:00", cmd.Options["out"])
}

func TestParseCommand_ArgsAndLeadingColon(t *testing.T) {
	cmd, err := ParseCommand(":Videos 0 1")

	require.NoError(t, err)
	assert.Equal(t, "videos", cmd.Name)
	assert.Equal(t, []string{"0", "1"}, cmd.Args)
}

func TestParseCommand_Empty(t *testing.T) {
	cmd, err := ParseCommand("   ")

	require.NoError(t, err)
	assert.Equal(t, "", cmd.Name)
}

func TestParseCommand_UnbalancedQuote(t *testing.T) {
	_, err := ParseCommand(`filter s2t="open`)

	assert.Error(t, err)
}

func TestCommand_Option(t *testing.T) {
	cmd, err := ParseCommand("filter videos=a")
	require.NoError(t, err)

	v, ok := cmd.Option("video", "videos")
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = cmd.Option("s2t")
	assert.False(t, ok)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b ,"))
	assert.Nil(t, splitList(""))
}

func TestValidTime(t *testing.T) {
	assert.NoError(t, validTime(""))
	assert.NoError(t, validTime("01:30"))
	assert.NoError(t, validTime("1:02:03"))
	assert.ErrorIs(t, validTime("90"), ErrBadTime)
	assert.ErrorIs(t, validTime("01:75"), ErrBadTime)
	assert.ErrorIs(t, validTime("aa:bb"), ErrBadTime)
}
