package resolve

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
)

// errNotMocked is returned when a testSystem method is called without a mock function set.
var errNotMocked = errors.New("testSystem: method not mocked")

// testSystem provides a mock System for unit tests.
//
// Fallback behavior:
//   - UserHomeDir: returns errNotMocked so tests never read the real home.
//   - Getenv, LookupEnv, Environ: served from the Env map, never the process.
//   - Getwd: returns Cwd.
//   - ReadFile, Stat: fall back to RealSystem so fixtures live in t.TempDir().
type testSystem struct {
	RealSystem

	Env map[string]string
	Cwd string

	UserHomeDirFunc func() (string, error)
	ReadFileFunc    func(name string) ([]byte, error)

	mu    sync.Mutex
	reads map[string]int
}

func (s *testSystem) Getenv(key string) string {
	return s.Env[key]
}

func (s *testSystem) LookupEnv(key string) (string, bool) {
	value, ok := s.Env[key]
	return value, ok
}

func (s *testSystem) Environ() []string {
	env := make([]string, 0, len(s.Env))
	for key, value := range s.Env {
		env = append(env, key+"="+value)
	}
	return env
}

func (s *testSystem) Getwd() (string, error) {
	if s.Cwd == "" {
		return "", fmt.Errorf("%w: Getwd", errNotMocked)
	}
	return s.Cwd, nil
}

func (s *testSystem) UserHomeDir() (string, error) {
	if s.UserHomeDirFunc != nil {
		return s.UserHomeDirFunc()
	}
	return "", fmt.Errorf("%w: UserHomeDir", errNotMocked)
}

func (s *testSystem) ReadFile(name string) ([]byte, error) {
	s.mu.Lock()
	if s.reads == nil {
		s.reads = map[string]int{}
	}
	s.reads[name]++
	s.mu.Unlock()
	if s.ReadFileFunc != nil {
		return s.ReadFileFunc(name)
	}
	return s.RealSystem.ReadFile(name)
}

func (s *testSystem) Stat(name string) (fs.FileInfo, error) {
	return s.RealSystem.Stat(name)
}

func (s *testSystem) readCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads[name]
}

// fakeSource is a prefix.Source returning a fixed answer and recording calls.
type fakeSource struct {
	prefix string
	err    error

	mu    sync.Mutex
	calls int
	env   []string
}

func (f *fakeSource) GlobalPrefix(_ context.Context, env []string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.env = env
	return f.prefix, f.err
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
