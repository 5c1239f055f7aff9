package client

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestFileStorePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not enforced on windows")
	}

	path := filepath.Join(t.TempDir(), "creds", "credentials.json")
	store := NewFileStore(path)

	if err := store.Save("token-value"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("got mode %o, want 600", perm)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileStore(path).Load(); err == nil {
		t.Error("expected an error for a corrupt credential file")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "export.xlsx", "export.xlsx"},
		{"directory traversal", "../../etc/passwd", "passwd"},
		{"windows path", `C:\exports\survey.csv`, "survey.csv"},
		{"accents", "Enquête été.csv", "Enquete_ete.csv"},
		{"hidden file", ".env", "env"},
		{"unsafe characters", "a<b>c|d?.csv", "abcd.csv"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.in); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAttachmentFilename(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{`attachment; filename="survey_3.csv"`, "survey_3.csv"},
		{`attachment`, ""},
		{``, ""},
		{`;;;`, ""},
	}

	for _, tt := range tests {
		if got := AttachmentFilename(tt.header); got != tt.want {
			t.Errorf("AttachmentFilename(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
