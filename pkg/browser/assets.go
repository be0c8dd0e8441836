package browser

import (
	"fmt"
	"os"
	"path/filepath"
)

// InitScriptName is the filename of the page initialization script shipped
// with the agent. The script labels interactive elements on every page load
// so the surfer's observations can reference them.
const InitScriptName = "page_script.js"

// VerifyInitAsset checks that the init script exists and is readable. It
// must pass before the first page interaction of a session; a missing or
// unreadable script is a fatal precondition, not a recoverable one.
func VerifyInitAsset(path string) error {
	if path == "" {
		return &MissingAssetError{Path: InitScriptName}
	}

	info, err := os.Stat(path)
	if err != nil {
		return &MissingAssetError{Path: path, Err: err}
	}
	if info.IsDir() {
		return &MissingAssetError{Path: path, Err: fmt.Errorf("is a directory")}
	}

	f, err := os.Open(path)
	if err != nil {
		return &MissingAssetError{Path: path, Err: err}
	}
	f.Close()
	return nil
}

// ResolveInitScript locates the init script on disk. The explicit path wins
// when given; otherwise the working directory is searched, then the
// directory of the running executable. The resolved path is verified before
// being returned.
func ResolveInitScript(explicit string) (string, error) {
	if explicit != "" {
		if err := VerifyInitAsset(explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}

	var candidates []string

	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, InitScriptName))
	}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), InitScriptName))
	}

	for _, candidate := range candidates {
		if err := VerifyInitAsset(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", &MissingAssetError{
		Path: InitScriptName,
		Err:  fmt.Errorf("not found in working directory or next to the executable"),
	}
}
