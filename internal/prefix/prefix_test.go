package prefix

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"
)

func dirSet(dirs ...string) func(string) bool {
	set := make(map[string]bool, len(dirs))
	for _, dir := range dirs {
		set[dir] = true
	}
	return func(path string) bool { return set[path] }
}

func TestLastDirLine(t *testing.T) {
	tests := []struct {
		name   string
		output string
		dirs   []string
		want   string
	}{
		{
			name:   "notice before prefix",
			output: "npm notice New minor version of npm available!\n/usr/local\n",
			dirs:   []string{"/usr/local"},
			want:   "/usr/local",
		},
		{
			name:   "prefix not a directory",
			output: "npm notice ...\n/usr/local\n",
			dirs:   nil,
			want:   "",
		},
		{
			name:   "last valid line wins",
			output: "/opt/a\nnoise\n/opt/b\ntrailing noise\n",
			dirs:   []string{"/opt/a", "/opt/b"},
			want:   "/opt/b",
		},
		{
			name:   "crlf endings",
			output: "warn\r\nC:\\Users\\u\\AppData\\Roaming\\npm\r\n",
			dirs:   []string{`C:\Users\u\AppData\Roaming\npm`},
			want:   `C:\Users\u\AppData\Roaming\npm`,
		},
		{
			name:   "no trailing newline",
			output: "noise\n/usr/local",
			dirs:   []string{"/usr/local"},
			want:   "/usr/local",
		},
		{
			name:   "surrounding spaces are not trimmed",
			output: " /usr/local \n",
			dirs:   []string{"/usr/local"},
			want:   "",
		},
		{
			name:   "empty output",
			output: "",
			want:   "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LastDirLine(strings.NewReader(tt.output), dirSet(tt.dirs...))
			if err != nil {
				t.Fatalf("LastDirLine error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("LastDirLine = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLastDirLineReadError(t *testing.T) {
	boom := errors.New("boom")
	got, err := LastDirLine(iotest.ErrReader(boom), dirSet())
	if !errors.Is(err, boom) {
		t.Fatalf("expected read error, got %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty prefix, got %q", got)
	}
}

func TestLastDirLineDefaultsToFilesystem(t *testing.T) {
	dir := t.TempDir()
	got, err := LastDirLine(strings.NewReader("noise\n"+dir+"\n"), nil)
	if err != nil {
		t.Fatalf("LastDirLine error: %v", err)
	}
	if got != dir {
		t.Fatalf("LastDirLine = %q, want %q", got, dir)
	}
}
