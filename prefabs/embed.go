package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// PrefabsFS holds the boss prefabs shipped with the binary. Files under
// ./prefabs on disk take precedence so specs can be tuned without a rebuild.
//
//go:embed *.yaml
var PrefabsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// ModTime reports the on-disk modification time of a prefab, if it exists
// outside the embedded set.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPrefabPath(cleanPrefabPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Bosses lists the embedded boss prefab names without extension.
func Bosses() []string {
	entries, err := fs.ReadDir(PrefabsFS, ".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !isSpecFile(e.Name()) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

func cleanPrefabPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(p string) string {
	if p == "" {
		return ""
	}
	s := cleanPrefabPath(p)
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	if path.Ext(s) == "" {
		s += ".tengo"
	}
	return "scripts/" + s
}

func diskPrefabPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}

// UsingScript lists the boss prefabs whose selection script is script.
func UsingScript(script string) []string {
	want := cleanScriptPath(script)
	var names []string
	for _, name := range Bosses() {
		spec, err := LoadBossSpec(name)
		if err != nil || spec.Selection.Script == "" {
			continue
		}
		if cleanScriptPath(spec.Selection.Script) == want {
			names = append(names, name)
		}
	}
	return names
}

// DiskDirs returns the on-disk prefab directories that exist relative to the
// working directory, for use with NewWatcher.
func DiskDirs() []string {
	var dirs []string
	for _, dir := range []string{"prefabs", filepath.Join("prefabs", "scripts")} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
