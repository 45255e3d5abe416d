package prefix

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNpmrcSourceEnvWins(t *testing.T) {
	envPrefix := t.TempDir()
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, ".npmrc"), []byte("prefix="+t.TempDir()+"\n"), 0o644))

	src := &NpmrcSource{UserHome: home}
	got, err := src.GlobalPrefix(context.Background(), []string{"npm_config_prefix=" + envPrefix})
	require.NoError(t, err)
	assert.Equal(t, envPrefix, got)
}

func TestNpmrcSourceReadsFile(t *testing.T) {
	prefixDir := t.TempDir()
	home := t.TempDir()
	content := "; user config\nregistry=https://registry.npmjs.org/\nprefix = \"" + prefixDir + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, ".npmrc"), []byte(content), 0o644))

	src := &NpmrcSource{UserHome: home}
	got, err := src.GlobalPrefix(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, prefixDir, got)
}

func TestNpmrcSourceMissingFile(t *testing.T) {
	src := &NpmrcSource{UserHome: t.TempDir()}
	got, err := src.GlobalPrefix(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNpmrcSourceNonDirectoryPrefix(t *testing.T) {
	src := &NpmrcSource{}
	got, err := src.GlobalPrefix(context.Background(), []string{"NPM_CONFIG_PREFIX=" + filepath.Join(t.TempDir(), "missing")})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNpmrcSourceReadError(t *testing.T) {
	src := &NpmrcSource{
		UserHome: "/home/u",
		ReadFile: func(string) ([]byte, error) { return nil, fs.ErrPermission },
	}
	_, err := src.GlobalPrefix(context.Background(), nil)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.NotErrorIs(t, err, ErrSpawn)
}

func TestParseNpmrcPrefix(t *testing.T) {
	getenv := func(key string) string {
		if key == "HOME" {
			return "/home/u"
		}
		return ""
	}
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "plain", content: "prefix=/opt/npm\n", want: "/opt/npm"},
		{name: "last wins", content: "prefix=/a\nprefix=/b\n", want: "/b"},
		{name: "env expansion", content: "prefix=${HOME}/.npm-global\n", want: "/home/u/.npm-global"},
		{name: "bare dollar untouched", content: "prefix=$HOME/x\n", want: "$HOME/x"},
		{name: "single quotes", content: "prefix='/opt/npm'\r\n", want: "/opt/npm"},
		{name: "comments", content: "# prefix=/no\n;prefix=/no\n", want: ""},
		{name: "section ignored", content: "prefix=/top\n[scope]\nprefix=/scoped\n", want: "/top"},
		{name: "other keys", content: "prefix-ish=/no\n", want: ""},
		{name: "bare key", content: "always-auth\nprefix=/opt/npm\n", want: "/opt/npm"},
		{name: "hash inside value", content: "prefix=/opt/npm#1\n", want: "/opt/npm#1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNpmrcPrefix(tt.content, getenv)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNpmrcPrefixUnclosedSection(t *testing.T) {
	_, err := ParseNpmrcPrefix("prefix=/opt/npm\n[scope\n", func(string) string { return "" })
	assert.Error(t, err)
}

func TestNpmrcSourceMalformedFileIsNotFatal(t *testing.T) {
	src := &NpmrcSource{
		UserHome: "/home/u",
		ReadFile: func(string) ([]byte, error) { return []byte("[scope\n"), nil },
		IsDir:    func(string) bool { return true },
	}
	got, err := src.GlobalPrefix(context.Background(), nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSpawn)
	assert.Empty(t, got)
}
