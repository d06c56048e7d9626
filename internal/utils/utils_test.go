package utils

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ferrors "github.com/PolarWolf314/filestore/internal/errors"
)

func TestResolvePath(t *testing.T) {
	t.Run("rejects tilde", func(t *testing.T) {
		for _, p := range []string{"~/pw.txt", "~", "~user/pw.txt"} {
			_, err := ResolvePath(p)
			if !errors.Is(err, ferrors.ErrUnexpandedHome) {
				t.Errorf("ResolvePath(%q) error = %v, want ErrUnexpandedHome", p, err)
			}
		}
	})

	t.Run("makes relative paths absolute", func(t *testing.T) {
		got, err := ResolvePath("secrets/pw.txt")
		if err != nil {
			t.Fatalf("ResolvePath() error = %v", err)
		}
		if !filepath.IsAbs(got) {
			t.Errorf("ResolvePath() = %q, want absolute path", got)
		}
		if !strings.HasSuffix(got, filepath.Join("secrets", "pw.txt")) {
			t.Errorf("ResolvePath() = %q, lost the original suffix", got)
		}
	})

	t.Run("keeps a tilde in the middle", func(t *testing.T) {
		if _, err := ResolvePath("/tmp/a~b"); err != nil {
			t.Errorf("ResolvePath() error = %v", err)
		}
	})
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present")
	if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	if ok, err := FileExists(path); err != nil || !ok {
		t.Errorf("FileExists(present) = %v, %v", ok, err)
	}
	if ok, err := FileExists(filepath.Join(dir, "absent")); err != nil || ok {
		t.Errorf("FileExists(absent) = %v, %v", ok, err)
	}
}

func TestReadSecretTrimsOneNewline(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hunter2\n", "hunter2"},
		{"hunter2\r\n", "hunter2"},
		{"hunter2", "hunter2"},
		{"hunter2\n\n", "hunter2\n"},
		{"", ""},
	}

	for _, tt := range tests {
		got, err := readSecret(strings.NewReader(tt.in))
		if err != nil {
			t.Fatalf("readSecret(%q) error = %v", tt.in, err)
		}
		if string(got) != tt.want {
			t.Errorf("readSecret(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPaths(t *testing.T) {
	out := FormatPaths([]string{"/a/public.pem", "/a/private.pem"})
	if !strings.Contains(out, "/a/public.pem") || !strings.Contains(out, "/a/private.pem") {
		t.Errorf("FormatPaths() = %q, missing paths", out)
	}
	if strings.Count(out, "    - ") != 2 {
		t.Errorf("FormatPaths() = %q, want two list entries", out)
	}
}
