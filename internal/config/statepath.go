package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

var statePathVars = map[string]bool{
	"HOME":            true,
	"XDG_DATA_HOME":   true,
	"XDG_STATE_HOME":  true,
	"XDG_CONFIG_HOME": true,
}

// ExpandStatePath expands a leading ~ and ${VAR} references in a configured
// snapshot path. Only a few well-known variables are allowed; an unknown or
// unset variable, or a result that is not absolute, disables the setting.
func ExpandStatePath(in string) (string, bool) {
	in = strings.TrimSpace(in)
	if in == "" {
		return "", false
	}
	if strings.HasPrefix(in, "~") {
		p, err := homedir.Expand(in)
		if err != nil {
			return "", false
		}
		in = p
	}

	var b strings.Builder
	for i := 0; i < len(in); {
		if strings.HasPrefix(in[i:], "${") {
			end := strings.IndexByte(in[i+2:], '}')
			if end >= 0 {
				name := in[i+2 : i+2+end]
				if !statePathVars[name] {
					return "", false
				}
				val, ok := os.LookupEnv(name)
				if !ok {
					return "", false
				}
				b.WriteString(val)
				i += 2 + end + 1
				continue
			}
		}
		b.WriteByte(in[i])
		i++
	}
	out := b.String()
	if !filepath.IsAbs(out) {
		return "", false
	}
	return filepath.Clean(out), true
}
