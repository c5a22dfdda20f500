package advicelog

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

type summaryRow struct {
	Category      string
	BuyNow        int
	Wait          int
	SetAlert      int
	confidenceSum float64
	dealSum       int
	Savings       float64
}

func (r *summaryRow) total() int { return r.BuyNow + r.Wait + r.SetAlert }

func (l *Log) summaryPath(day time.Time) string {
	return filepath.Join(l.dir, "summary", day.In(l.loc).Format("2006-01-02")+".csv")
}

// Summarize aggregates one local day of advice per category into
// <dir>/summary/<date>.csv and returns its path. A day with no advice
// returns an empty path and no error.
func (l *Log) Summarize(day time.Time) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.dailyFilepath(day))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer f.Close()

	rows := map[string]*summaryRow{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			continue
		}
		row := rows[e.Category]
		if row == nil {
			row = &summaryRow{Category: e.Category}
			rows[e.Category] = row
		}
		switch e.Action {
		case "buy_now":
			row.BuyNow++
		case "wait":
			row.Wait++
			if e.Price > e.PredictedBestPrice {
				row.Savings += e.Price - e.PredictedBestPrice
			}
		default:
			row.SetAlert++
		}
		row.confidenceSum += e.Confidence
		row.dealSum += e.DealScore
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}

	keys := make([]string, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	outPath := l.summaryPath(day)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	headers := []string{"category", "advice", "buy_now", "wait", "set_alert", "avg_confidence", "avg_deal_score", "wait_savings"}
	if err := w.Write(headers); err != nil {
		return "", err
	}
	var all summaryRow
	for _, k := range keys {
		r := rows[k]
		if err := w.Write(r.record(k)); err != nil {
			return "", err
		}
		all.BuyNow += r.BuyNow
		all.Wait += r.Wait
		all.SetAlert += r.SetAlert
		all.confidenceSum += r.confidenceSum
		all.dealSum += r.dealSum
		all.Savings += r.Savings
	}
	if err := w.Write(all.record("TOTAL")); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return outPath, nil
}

func (r *summaryRow) record(label string) []string {
	n := r.total()
	return []string{
		label,
		strconv.Itoa(n),
		strconv.Itoa(r.BuyNow),
		strconv.Itoa(r.Wait),
		strconv.Itoa(r.SetAlert),
		fmt.Sprintf("%.3f", r.confidenceSum/float64(n)),
		fmt.Sprintf("%.1f", float64(r.dealSum)/float64(n)),
		fmt.Sprintf("%.2f", r.Savings),
	}
}
