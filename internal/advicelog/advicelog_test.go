package advicelog

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLog(t *testing.T, at time.Time) *Log {
	t.Helper()
	l := New(t.TempDir(), nil)
	l.now = func() time.Time { return at }
	return l
}

func TestAppendWritesISTDatedJSONL(t *testing.T) {
	// 20:00 UTC on 31 Mar is already 1 Apr in IST
	at := time.Date(2025, time.March, 31, 20, 0, 0, 0, time.UTC)
	l := newTestLog(t, at)

	require.NoError(t, l.Append(Entry{ProductID: "tv-55", Action: "wait", Rule: "festival_ahead", Confidence: 0.9}))
	require.NoError(t, l.Append(Entry{ProductID: "kettle", Action: "buy_now", DealScore: 85}))

	f, err := os.Open(filepath.Join(l.dir, "advice", "2025-04-01.txt"))
	require.NoError(t, err)
	defer f.Close()

	var entries []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Entry
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		entries = append(entries, e)
	}
	require.Len(t, entries, 2)
	assert.Equal(t, "tv-55", entries[0].ProductID)
	assert.Equal(t, "2025-04-01 01:30:00", entries[0].Time)
	assert.Equal(t, 85, entries[1].DealScore)
}

func TestAppendConcurrent(t *testing.T) {
	at := time.Date(2025, time.June, 1, 12, 0, 0, 0, ist)
	l := newTestLog(t, at)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, l.Append(Entry{ProductID: "p", Action: "set_alert"}))
		}()
	}
	wg.Wait()

	b, err := os.ReadFile(l.dailyFilepath(at))
	require.NoError(t, err)
	lines := 0
	for _, c := range b {
		if c == '\n' {
			lines++
		}
	}
	assert.Equal(t, 20, lines)
}

func TestCompressOlder(t *testing.T) {
	now := time.Date(2025, time.June, 20, 12, 0, 0, 0, ist)
	l := newTestLog(t, now)
	dir := filepath.Join(l.dir, "advice")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	old := filepath.Join(dir, "2025-06-01.txt")
	fresh := filepath.Join(dir, "2025-06-19.txt")
	require.NoError(t, os.WriteFile(old, []byte("{\"product_id\":\"old\"}\n"), 0o644))
	require.NoError(t, os.WriteFile(fresh, []byte("{}\n"), 0o644))
	oldTime := now.AddDate(0, 0, -19)
	require.NoError(t, os.Chtimes(old, oldTime, oldTime))
	require.NoError(t, os.Chtimes(fresh, now, now))

	require.NoError(t, l.CompressOlder(7))

	assert.NoFileExists(t, old)
	assert.FileExists(t, fresh)

	gzf, err := os.Open(old + ".gz")
	require.NoError(t, err)
	defer gzf.Close()
	zr, err := gzip.NewReader(gzf)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, "{\"product_id\":\"old\"}\n", string(body))
}

func TestCompressOlderNoLogsYet(t *testing.T) {
	l := newTestLog(t, time.Now())
	assert.NoError(t, l.CompressOlder(7))
	assert.NoError(t, l.CompressOlder(0))
}

func TestAppendUsesConfiguredLocation(t *testing.T) {
	// same instant as the IST case, but days cut in UTC stay on 31 Mar
	at := time.Date(2025, time.March, 31, 20, 0, 0, 0, time.UTC)
	l := New(t.TempDir(), time.UTC)
	l.now = func() time.Time { return at }

	require.NoError(t, l.Append(Entry{ProductID: "tv-55", Category: "electronics", Action: "wait", Confidence: 0.9}))

	_, err := os.Stat(filepath.Join(l.dir, "advice", "2025-03-31.txt"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(l.dir, "advice", "2025-04-01.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path, err := l.Summarize(at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(l.dir, "summary", "2025-03-31.csv"), path)
}
