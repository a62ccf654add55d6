package scene

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

//go:embed scenes/*.yaml
var ScenesFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// DiskRoot is where edited copies of scenes and scripts are looked up before
// falling back to the embedded ones. Empty disables the override.
var DiskRoot = "scene"

func Load(name string) ([]byte, error) {
	return load(ScenesFS, cleanPath(name, "scenes"))
}

func LoadScript(name string) ([]byte, error) {
	return load(ScriptsFS, cleanPath(name, "scripts"))
}

func load(fs embed.FS, clean string) ([]byte, error) {
	if DiskRoot != "" {
		if data, err := os.ReadFile(diskPath(clean)); err == nil {
			return data, nil
		}
	}
	return fs.ReadFile(clean)
}

func ModTime(name string) (time.Time, bool) {
	if DiskRoot == "" {
		return time.Time{}, false
	}
	info, err := os.Stat(diskPath(cleanPath(name, "scenes")))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// ScriptPath maps any spelling of a script reference, including a file name
// reported by the watcher, to the key scripts are cached under.
func ScriptPath(name string) string {
	return cleanPath(name, "scripts")
}

// cleanPath strips known prefixes and returns dir/<rest> in slash form.
func cleanPath(name, dir string) string {
	if name == "" {
		return ""
	}
	s := filepath.ToSlash(name)
	if i := strings.LastIndex(s, dir+"/"); i >= 0 {
		s = s[i+len(dir)+1:]
	}
	return path.Join(dir, s)
}

func diskPath(clean string) string {
	return filepath.Join(DiskRoot, filepath.FromSlash(clean))
}
