// Package discover locates mode profile and fix entry directories per
// spec.md §6.4. There is no directory flag: mode directories are tried
// in the order ./modes, $LOGPILOT_MODES, <exe_dir>/modes,
// <exe_dir>/../modes, home, first existing wins; fix directories are
// merged from ./fixes, $LOGPILOT_FIXES and home.
package discover

import (
	"os"
	"path/filepath"
	"runtime"
)

// ModeDirs returns the ordered list of candidate mode-profile directories
// to search; the first one that exists wins. exeDir is the directory
// containing the running executable (os.Executable's dir).
func ModeDirs(exeDir string) []string {
	var dirs []string
	dirs = append(dirs, filepath.Join(".", "modes"))
	if v := os.Getenv("LOGPILOT_MODES"); v != "" {
		dirs = append(dirs, v)
	}
	if exeDir != "" {
		dirs = append(dirs, filepath.Join(exeDir, "modes"))
		dirs = append(dirs, filepath.Join(exeDir, "..", "modes"))
	}
	if home := homeDir(); home != "" {
		dirs = append(dirs, filepath.Join(home, ".logpilot", "modes"))
	}
	return dirs
}

// FirstExisting returns the first directory in dirs that exists, or ""
// if none do.
func FirstExisting(dirs []string) string {
	for _, d := range dirs {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			return d
		}
	}
	return ""
}

// FixDirs returns the ordered list of fix-file search roots: ./fixes,
// then LOGPILOT_FIXES, plus (always, additionally merged rather than
// first-wins) the global $HOME/.logpilot/fixes.
func FixDirs() []string {
	var dirs []string
	dirs = append(dirs, filepath.Join(".", "fixes"))
	if v := os.Getenv("LOGPILOT_FIXES"); v != "" {
		dirs = append(dirs, v)
	}
	if home := homeDir(); home != "" {
		dirs = append(dirs, filepath.Join(home, ".logpilot", "fixes"))
	}
	return dirs
}

func homeDir() string {
	if runtime.GOOS == "windows" {
		if v := os.Getenv("USERPROFILE"); v != "" {
			return v
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// WalkModeFiles lists mode profile files (*.toml, *.mode) directly under
// dir (non-recursive — §6.4 treats mode directories as flat).
func WalkModeFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext == ".toml" || ext == ".mode" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

// WalkFixFiles recursively lists fix entry files (*.yaml, *.yml) under
// every root in dirs, merging results (§6.4: fix directories are merged,
// not first-wins, unlike mode directories).
func WalkFixFiles(dirs []string) ([]string, error) {
	var files []string
	for _, root := range dirs {
		if _, err := os.Stat(root); err != nil {
			continue
		}
		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if info.IsDir() {
				return nil
			}
			ext := filepath.Ext(path)
			if ext == ".yaml" || ext == ".yml" {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
