package advicelog

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ist dates files when no location is given.
var ist = time.FixedZone("IST", 19800)

// Entry is one audited recommendation, written as a JSON line.
type Entry struct {
	Time               string         `json:"time"`
	ProductID          string         `json:"product_id"`
	Category           string         `json:"category"`
	Action             string         `json:"action"`
	Rule               string         `json:"rule"`
	Confidence         float64        `json:"confidence"`
	Price              float64        `json:"price"`
	PredictedBestPrice float64        `json:"predicted_best_price"`
	DealScore          int            `json:"deal_score"`
	Reason             string         `json:"reason"`
	Extra              map[string]any `json:"extra,omitempty"`
}

// Log appends entries to <dir>/advice/<local date>.txt, with days cut in loc.
type Log struct {
	dir string
	loc *time.Location
	now func() time.Time
	mu  sync.Mutex
}

func New(dir string, loc *time.Location) *Log {
	if dir == "" {
		dir = "logs"
	}
	if loc == nil {
		loc = ist
	}
	return &Log{dir: dir, loc: loc, now: time.Now}
}

func (l *Log) root() string {
	return filepath.Join(l.dir, "advice")
}

func (l *Log) dailyFilepath(t time.Time) string {
	return filepath.Join(l.root(), t.In(l.loc).Format("2006-01-02")+".txt")
}

func (l *Log) Append(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now().In(l.loc)
	e.Time = now.Format("2006-01-02 15:04:05")
	p := l.dailyFilepath(now)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode advice entry: %w", err)
	}
	_, err = fmt.Fprintln(f, string(b))
	return err
}

// CompressOlder gzips daily files last modified more than retentionDays ago
// and removes the originals. Files that fail to compress are left in place.
func (l *Log) CompressOlder(retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().AddDate(0, 0, -retentionDays)
	err := filepath.WalkDir(l.root(), func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(p) != ".txt" {
			return nil
		}
		info, err := d.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			return nil
		}
		gz := p + ".gz"
		if _, err := os.Stat(gz); err == nil {
			_ = os.Remove(p)
			return nil
		}
		if err := gzipFile(p, gz); err != nil {
			_ = os.Remove(gz)
			return nil
		}
		_ = os.Remove(p)
		return nil
	})
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func gzipFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	gw := gzip.NewWriter(out)
	if _, err := io.Copy(gw, in); err != nil {
		gw.Close()
		out.Close()
		return err
	}
	if err := gw.Close(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
