package browser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyInitAsset(t *testing.T) {
	t.Run("existing readable file passes", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), InitScriptName)
		require.NoError(t, os.WriteFile(path, []byte("window.__labels = {};"), 0600))

		assert.NoError(t, VerifyInitAsset(path))
	})

	t.Run("missing file fails naming the path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), InitScriptName)

		err := VerifyInitAsset(path)
		var assetErr *MissingAssetError
		require.ErrorAs(t, err, &assetErr)
		assert.Equal(t, path, assetErr.Path)
	})

	t.Run("empty path fails", func(t *testing.T) {
		var assetErr *MissingAssetError
		require.ErrorAs(t, VerifyInitAsset(""), &assetErr)
	})

	t.Run("directory fails", func(t *testing.T) {
		dir := t.TempDir()
		var assetErr *MissingAssetError
		require.ErrorAs(t, VerifyInitAsset(dir), &assetErr)
	})
}

func TestResolveInitScript(t *testing.T) {
	t.Run("explicit path wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom_script.js")
		require.NoError(t, os.WriteFile(path, []byte("// custom"), 0600))

		resolved, err := ResolveInitScript(path)
		require.NoError(t, err)
		assert.Equal(t, path, resolved)
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := ResolveInitScript(filepath.Join(t.TempDir(), "gone.js"))
		var assetErr *MissingAssetError
		require.ErrorAs(t, err, &assetErr)
	})

	t.Run("falls back to working directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, InitScriptName), []byte("// cwd"), 0600))

		orig, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(dir))
		t.Cleanup(func() { _ = os.Chdir(orig) })

		resolved, err := ResolveInitScript("")
		require.NoError(t, err)
		assert.Equal(t, InitScriptName, filepath.Base(resolved))
	})
}
