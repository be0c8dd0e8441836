package logging

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionIDIsStable(t *testing.T) {
	first := GetSessionID()
	second := GetSessionID()
	assert.Equal(t, first, second, "session ID must not change within a process")
	assert.NotEmpty(t, first)
}

func TestLoggerWritesToSharedSessionFile(t *testing.T) {
	a, err := NewLogger("connector")
	require.NoError(t, err)
	defer a.Close()

	b, err := NewLogger("surfer")
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, a.LogPath(), b.LogPath(), "components share the session log file")

	a.Infof("connected to %s", "ws://localhost:3001")
	b.Warnf("headless request ignored")

	data, err := os.ReadFile(a.LogPath())
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "[connector] [INFO] connected to ws://localhost:3001")
	assert.Contains(t, content, "[surfer] [WARN] headless request ignored")
}

func TestLoggerLevels(t *testing.T) {
	l, err := NewLogger("levels")
	require.NoError(t, err)
	defer l.Close()

	l.Debugf("d")
	l.Infof("i")
	l.Warnf("w")
	l.Errorf("e")
	l.Printf("p")

	data, err := os.ReadFile(l.LogPath())
	require.NoError(t, err)
	content := string(data)

	for _, level := range []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]"} {
		assert.True(t, strings.Contains(content, "[levels] "+level),
			"expected %s entry for component", level)
	}
}

func TestFallbackLoggerDoesNotPanic(t *testing.T) {
	l := newFallbackLogger("fallback", os.ErrPermission)
	assert.Empty(t, l.LogPath())
	assert.NotNil(t, l.Writer())
	// Must be usable without a file.
	l.Infof("still logging")
	assert.NoError(t, l.Close())
}
