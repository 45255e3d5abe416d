package prefix

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/nvmd-desktop/nvmd-shim/internal/envslice"
	"github.com/nvmd-desktop/nvmd-shim/internal/messages"
)

// NpmrcFileName is npm's per-user config file.
const NpmrcFileName = ".npmrc"

// prefixEnvKeys are checked in order; npm accepts either spelling.
var prefixEnvKeys = []string{"NPM_CONFIG_PREFIX", "npm_config_prefix"}

// NpmrcSource reads the prefix from npm configuration without running npm:
// $NPM_CONFIG_PREFIX first, then the prefix key of <UserHome>/.npmrc.
type NpmrcSource struct {
	UserHome string
	// ReadFile defaults to os.ReadFile.
	ReadFile func(name string) ([]byte, error)
	// IsDir defaults to the real filesystem check.
	IsDir func(string) bool
}

// GlobalPrefix returns the configured prefix when it names an existing directory.
func (s *NpmrcSource) GlobalPrefix(_ context.Context, env []string) (string, error) {
	isDir := s.IsDir
	if isDir == nil {
		isDir = IsDir
	}
	candidate := ""
	for _, key := range prefixEnvKeys {
		if value, ok := envslice.Get(env, key); ok && strings.TrimSpace(value) != "" {
			candidate = strings.TrimSpace(value)
			break
		}
	}
	if candidate == "" && s.UserHome != "" {
		readFile := s.ReadFile
		if readFile == nil {
			readFile = os.ReadFile
		}
		path := filepath.Join(s.UserHome, NpmrcFileName)
		data, err := readFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", nil
			}
			return "", fmt.Errorf(messages.PrefixNpmrcReadFailedFmt, path, err)
		}
		candidate, err = ParseNpmrcPrefix(string(data), func(key string) string {
			value, _ := envslice.Get(env, key)
			return value
		})
		if err != nil {
			return "", fmt.Errorf(messages.PrefixNpmrcParseFailedFmt, path, err)
		}
	}
	if candidate == "" || !isDir(candidate) {
		return "", nil
	}
	return candidate, nil
}

// npmrcLoadOptions follow npm's ini dialect: comments only at line start,
// bare keys allowed, surrounding quotes removed.
var npmrcLoadOptions = ini.LoadOptions{
	Loose:               true,
	AllowBooleanKeys:    true,
	IgnoreInlineComment: true,
}

// ParseNpmrcPrefix returns the value of the last top-level prefix key in
// .npmrc content. ${VAR} references are expanded with getenv. Keys inside
// [sections] are ignored.
func ParseNpmrcPrefix(content string, getenv func(string) string) (string, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	cfg, err := ini.LoadSources(npmrcLoadOptions, []byte(content))
	if err != nil {
		return "", err
	}
	top := cfg.Section(ini.DefaultSection)
	if !top.HasKey("prefix") {
		return "", nil
	}
	return expandEnv(strings.TrimSpace(top.Key("prefix").Value()), getenv), nil
}

// expandEnv expands ${VAR} only, as npm does; a bare $VAR is left alone.
func expandEnv(value string, getenv func(string) string) string {
	var b strings.Builder
	for {
		start := strings.Index(value, "${")
		if start < 0 {
			b.WriteString(value)
			return b.String()
		}
		end := strings.Index(value[start:], "}")
		if end < 0 {
			b.WriteString(value)
			return b.String()
		}
		b.WriteString(value[:start])
		b.WriteString(getenv(value[start+2 : start+end]))
		value = value[start+end+1:]
	}
}
