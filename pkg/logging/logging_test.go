package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer SetLevel("info")

	if !SetLevel("warn") {
		t.Fatal("expected warn to be a known level")
	}
	Infof("hidden %d", 1)
	Warnf("shown %d", 2)
	Errorf("%d%% literal", 100)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "[WARN] shown 2") {
		t.Errorf("missing warn line: %q", out)
	}
	if !strings.Contains(out, "[ERROR] 100% literal") {
		t.Errorf("message without args should be printed verbatim: %q", out)
	}
}

func TestSetLevelUnknown(t *testing.T) {
	defer SetLevel("info")
	SetLevel("debug")
	if SetLevel("loud") {
		t.Fatal("unknown level accepted")
	}
	if GetLevel() != LevelDebug {
		t.Errorf("level changed by unknown name: %s", GetLevel())
	}
}
