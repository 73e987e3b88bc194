package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/mediacompress/internal/config"
)

func TestNewLogger_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	l.Info("test message")
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(dir, "nested", "mediacompress.log")
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("to file")
	l.Debug(false, "hidden")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(cfg.LogFile)
	if !bytes.Contains(b, []byte("INFO")) || !bytes.Contains(b, []byte("to file")) {
		t.Errorf("log file content: %s", string(b))
	}
	if bytes.Contains(b, []byte("hidden")) {
		t.Errorf("debug line written without verbose: %s", string(b))
	}
}

func TestLogger_LevelsAndStreams(t *testing.T) {
	var out, errOut bytes.Buffer
	l := New(&out, &errOut)

	l.Info("info %d", 1)
	l.Success("done")
	l.Warn("unrecognized file %s", "c.txt")
	l.Debug(true, "detail")
	l.Error("fatal")

	stdout := out.String()
	assert.Contains(t, stdout, "[INFO] info 1")
	assert.Contains(t, stdout, "[SUCCESS] done")
	assert.Contains(t, stdout, "[WARN] unrecognized file c.txt")
	assert.Contains(t, stdout, "[DEBUG] detail")
	assert.NotContains(t, stdout, "fatal")
	assert.Contains(t, errOut.String(), "[ERROR] fatal")
}

func TestLogger_ConcurrentLinesStayWhole(t *testing.T) {
	var out bytes.Buffer
	l := New(&out, &out)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Info("worker %02d finished", i)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 16)
	for _, line := range lines {
		assert.Contains(t, line, "[INFO] worker ")
		assert.True(t, strings.HasSuffix(line, " finished"), line)
	}
}
