package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/anoncheck/anoncheck/internal/model"
)

// Checker runs the full verification for one target (a file path or URL).
type Checker interface {
	CheckDocument(ctx context.Context, target string) (*model.Report, error)
}

// CheckJob verifies a single target.
type CheckJob struct {
	Target  string
	Checker Checker
}

// Execute runs the check and wraps the outcome in a CheckResult.
func (j *CheckJob) Execute(ctx context.Context) Result {
	report, err := j.Checker.CheckDocument(ctx, j.Target)
	if err != nil {
		return &CheckResult{
			Target: j.Target,
			Report: nil,
			Error:  err,
		}
	}
	return &CheckResult{
		Target: j.Target,
		Report: report,
		Error:  nil,
	}
}

// CheckResult is the outcome of checking one target.
type CheckResult struct {
	Target string
	Report *model.Report
	Error  error
}

// GetError returns the error from the check result.
func (r *CheckResult) GetError() error {
	return r.Error
}

// BatchProcessor verifies multiple targets concurrently.
type BatchProcessor struct {
	checker     Checker
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(checker Checker, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		checker:     checker,
		concurrency: concurrency,
	}
}

// ProcessTargets verifies the given targets concurrently.
func (b *BatchProcessor) ProcessTargets(ctx context.Context, targets []string) []*CheckResult {
	if len(targets) == 0 {
		return []*CheckResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, target := range targets {
		pool.Submit(&CheckJob{
			Target:  target,
			Checker: b.checker,
		})
	}

	results := pool.Wait()

	checkResults := make([]*CheckResult, len(results))
	for i, result := range results {
		checkResults[i] = result.(*CheckResult)
	}

	return checkResults
}

// ProcessFile reads targets from a file and verifies them concurrently.
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*CheckResult, error) {
	targets, err := ReadTargetsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read targets: %w", err)
	}

	return b.ProcessTargets(ctx, targets), nil
}

// ReadTargetsFromFile reads targets from a file, one per line. Empty
// lines and lines starting with # are skipped, duplicates collapsed.
func ReadTargetsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var targets []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			targets = append(targets, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return targets, nil
}
