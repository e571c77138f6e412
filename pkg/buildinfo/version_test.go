package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	defer func() { Version = old }()

	if got := Template(); !strings.Contains(got, "{{.Name}} version v9.9.9") {
		t.Errorf("Template() = %q", got)
	}
	if got := Get().Version; got != "v9.9.9" {
		t.Errorf("Get().Version = %q", got)
	}
	if got := String(); !strings.HasPrefix(got, "version: v9.9.9\n") {
		t.Errorf("String() = %q", got)
	}
}
