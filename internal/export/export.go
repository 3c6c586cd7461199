package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sadopc/liftr/internal/store"
)

type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
)

var Formats = []Format{CSV, JSON}

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case CSV:
		return CSV, nil
	case JSON:
		return JSON, nil
	}
	return "", fmt.Errorf("unknown export format %q (want csv or json)", s)
}

// DefaultPath is ~/liftr-export-YYYY-MM-DD.<format>.
func DefaultPath(f Format, now time.Time) string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, fmt.Sprintf("liftr-export-%s.%s", now.Format("2006-01-02"), f))
}

// Write exports records in the given format.
func Write(f Format, records []store.WorkoutRecord, unit, path string) error {
	switch f {
	case CSV:
		return ToCSV(records, unit, path)
	case JSON:
		return ToJSON(records, unit, path)
	}
	return fmt.Errorf("unknown export format %q", f)
}
