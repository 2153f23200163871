package buildinfo

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	old := Version
	defer func() { Version = old }()
	Version = "v9.9.9"

	if got := Get().Version; got != "v9.9.9" {
		t.Errorf("Get().Version = %q", got)
	}
	if !strings.Contains(String(), "version: v9.9.9") {
		t.Errorf("String() = %q", String())
	}
	if !strings.Contains(Template(), "{{.Name}} version v9.9.9") {
		t.Errorf("Template() = %q", Template())
	}
}
