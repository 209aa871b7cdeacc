package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abdidvp/iisaudit/internal/domain"
	"github.com/abdidvp/iisaudit/internal/platform/errs"
	"github.com/abdidvp/iisaudit/internal/platform/logger"
)

// ProgressFunc is called after each site is processed. index is 1-based.
type ProgressFunc func(index, total int, site domain.Site)

// RunOptions are the per-invocation inputs of a run.
type RunOptions struct {
	Host       string
	OutputPath string
	Progress   ProgressFunc
}

// Audit is the collected, unwritten outcome of querying every site.
type Audit struct {
	Results []domain.SiteResult
	Rows    []domain.ReportRow
}

// RunResult is the outcome of a completed run.
type RunResult struct {
	Rows       []domain.ReportRow
	OutputPath string
	Exported   bool
	Summary    domain.RunSummary
}

// AuditService orchestrates the audit pipeline:
// enumerate sites → query each site → build rows → write the report once.
type AuditService struct {
	sites   domain.SiteEnumerator
	query   domain.ConnectionStringQuery
	writer  domain.ReportWriter
	log     *slog.Logger
	baseDir string
	now     func() time.Time
}

func NewAuditService(
	sites domain.SiteEnumerator,
	query domain.ConnectionStringQuery,
	writer domain.ReportWriter,
) *AuditService {
	return &AuditService{
		sites:   sites,
		query:   query,
		writer:  writer,
		log:     logger.Discard(),
		baseDir: ".",
		now:     time.Now,
	}
}

// WithLogger sets the logger used for per-site failures and exports.
func (s *AuditService) WithLogger(l *slog.Logger) *AuditService {
	if l != nil {
		s.log = l
	}
	return s
}

// WithBaseDir sets the directory that receives default-named reports.
func (s *AuditService) WithBaseDir(dir string) *AuditService {
	s.baseDir = dir
	return s
}

// WithClock replaces time.Now, mainly for tests.
func (s *AuditService) WithClock(now func() time.Time) *AuditService {
	s.now = now
	return s
}

// AuditSite queries one site. Query failures are returned inside the
// result, never as an error.
func (s *AuditService) AuditSite(ctx context.Context, site domain.Site) domain.SiteResult {
	entries, err := s.query.ConnectionStrings(ctx, site)
	if err != nil {
		s.log.Warn("connection string query failed", "site", site.Name, "id", site.ID, "err", err)
		return domain.SiteResult{Site: site, Err: err}
	}
	return domain.SiteResult{Site: site, Entries: entries}
}

// Collect enumerates the sites and audits each one in order without
// writing anything.
func (s *AuditService) Collect(ctx context.Context, opts RunOptions) (*Audit, error) {
	// 1. Enumerate
	sites, err := s.sites.Sites(ctx)
	if err != nil {
		return nil, errs.New(errs.EnumerationFailed, "enumerating sites", err)
	}

	// 2. Query each site sequentially
	audit := &Audit{}
	for i, site := range sites {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("audit interrupted after %d of %d sites: %w", i, len(sites), err)
		}

		res := s.AuditSite(ctx, site)
		audit.Results = append(audit.Results, res)
		audit.Rows = append(audit.Rows, domain.RowsFor(opts.Host, res)...)

		if opts.Progress != nil {
			opts.Progress(i+1, len(sites), site)
		}
	}

	return audit, nil
}

// Run performs a full audit and writes the report when there is anything
// to write.
func (s *AuditService) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	now := s.now()

	// 0. Resolve destination
	outputPath := domain.ResolveOutputPath(opts.OutputPath, s.baseDir, opts.Host, now)

	// 1-2. Enumerate and audit
	audit, err := s.Collect(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &RunResult{
		Rows:       audit.Rows,
		OutputPath: outputPath,
		Summary:    summarize(opts.Host, now, audit),
	}

	// 3. Write once
	if len(audit.Rows) == 0 {
		s.log.Info("no sites found, nothing to export")
		return result, nil
	}

	if err := s.writer.Write(outputPath, audit.Rows); err != nil {
		return nil, errs.New(errs.WriteFailed, fmt.Sprintf("writing report to %s", outputPath), err)
	}

	result.Exported = true
	result.Summary.Exported = true
	result.Summary.OutputPath = outputPath
	s.log.Info("report exported", "path", outputPath, "rows", len(audit.Rows), "sites", len(audit.Results))

	return result, nil
}

func summarize(host string, now time.Time, audit *Audit) domain.RunSummary {
	sum := domain.RunSummary{
		RunID:     uuid.NewString(),
		Host:      host,
		Timestamp: now,
		Sites:     len(audit.Results),
		Rows:      len(audit.Rows),
	}
	for _, res := range audit.Results {
		switch {
		case res.Err != nil:
			sum.Failed++
		case len(res.Entries) == 0:
			sum.Empty++
		default:
			sum.Succeeded++
		}
	}
	return sum
}
