package domain

import (
	"fmt"
	"path/filepath"
	"time"
)

// DefaultReportName returns ConnectionStrings_<HOST>_<YYYYMMDD>.csv for the
// local date of now.
func DefaultReportName(host string, now time.Time) string {
	return fmt.Sprintf("ConnectionStrings_%s_%s.csv", host, now.Format("20060102"))
}

// ResolveOutputPath returns explicit verbatim when set, otherwise the
// default report name inside baseDir.
func ResolveOutputPath(explicit, baseDir, host string, now time.Time) string {
	if explicit != "" {
		return explicit
	}
	if baseDir == "" {
		baseDir = "."
	}
	return filepath.Join(baseDir, DefaultReportName(host, now))
}
