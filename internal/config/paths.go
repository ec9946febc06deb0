package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// expandPath expands environment variables and a leading ~ in p.
// On Windows it also expands %VAR% references and accepts ~\.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if runtime.GOOS == "windows" {
		expanded = expandWindowsEnv(expanded)
	}

	rest, ok := cutHome(expanded)
	if !ok {
		return expanded
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return expanded
	}
	if rest == "" {
		return home
	}
	return filepath.Join(home, rest)
}

// cutHome reports whether p starts with the home shorthand and returns the
// remainder.
func cutHome(p string) (string, bool) {
	if p == "~" {
		return "", true
	}
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		return rest, true
	}
	if runtime.GOOS == "windows" {
		if rest, ok := strings.CutPrefix(p, `~\`); ok {
			return rest, true
		}
	}
	return "", false
}

// expandWindowsEnv replaces %VAR% references with their values. Unknown
// variables are left in place.
func expandWindowsEnv(p string) string {
	var b strings.Builder
	for {
		start := strings.IndexByte(p, '%')
		if start < 0 {
			break
		}
		end := strings.IndexByte(p[start+1:], '%')
		if end < 0 {
			break
		}
		end += start + 1
		b.WriteString(p[:start])
		key := p[start+1 : end]
		if val, ok := os.LookupEnv(key); ok && key != "" {
			b.WriteString(val)
		} else {
			b.WriteString(p[start : end+1])
		}
		p = p[end+1:]
	}
	b.WriteString(p)
	return b.String()
}
