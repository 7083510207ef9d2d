package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug")
	if log.GetLevel() != logrus.DebugLevel {
		t.Errorf("level %s", log.GetLevel())
	}

	log.WithField("prefix", "smbus").Debug("cmd 0x09: no data")
	out := buf.String()
	if !strings.Contains(out, "smbus") || !strings.Contains(out, "no data") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestNewUnknownLevel(t *testing.T) {
	if lvl := New(&bytes.Buffer{}, "chatty").GetLevel(); lvl != logrus.InfoLevel {
		t.Errorf("level %s", lvl)
	}
}
