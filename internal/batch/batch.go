// Package batch converts every matching file of a directory tree.
//
// Files are converted concurrently on a bounded worker pool. A failing file
// is recorded in the Summary and never stops the rest of the batch.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

// ErrNotDirectory is returned when the input path is not a directory.
var ErrNotDirectory = errors.New("입력 경로가 디렉토리가 아닙니다")

// DefaultWorkers is the worker pool size used when Options.Workers is not set.
const DefaultWorkers = 4

// OutputFormat selects what a batch produces.
type OutputFormat string

const (
	FormatMarkdown OutputFormat = "markdown"
	FormatText     OutputFormat = "text"
	FormatHWPX     OutputFormat = "hwpx"
)

// ParseOutputFormat parses a format name. "md" and "txt" are accepted as
// aliases.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	case "hwpx":
		return FormatHWPX, nil
	default:
		return "", fmt.Errorf("지원하지 않는 출력 형식입니다: %s (markdown, text, hwpx)", s)
	}
}

// Extension returns the output file extension.
func (f OutputFormat) Extension() string {
	switch f {
	case FormatText:
		return ".txt"
	case FormatHWPX:
		return ".hwpx"
	default:
		return ".md"
	}
}

// Pattern returns the glob pattern of the input files.
func (f OutputFormat) Pattern(recursive bool) string {
	pattern := "*.{hwpx,hwp}"
	if f == FormatHWPX {
		pattern = "*.md"
	}
	if recursive {
		pattern = "**/" + pattern
	}
	return pattern
}

// Options configure a batch run.
type Options struct {
	InputDir  string
	OutputDir string
	Format    OutputFormat
	Recursive bool
	Overwrite bool
	Workers   int
	Logger    *slog.Logger
}

// ConvertFunc converts one input file into outputPath.
type ConvertFunc func(ctx context.Context, inputPath, outputPath string) error

// FindFiles returns the input files under dir as sorted slash-separated
// paths relative to dir.
func FindFiles(dir string, format OutputFormat, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("입력 디렉토리를 확인할 수 없습니다: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	files, err := doublestar.Glob(os.DirFS(dir), format.Pattern(recursive), doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("파일 검색 실패: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// OutputPath maps an input path relative to the input directory to its
// output path. Without recursive the output tree is flat.
func OutputPath(outputDir, rel string, format OutputFormat, recursive bool) string {
	rel = filepath.FromSlash(rel)
	name := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel)) + format.Extension()
	if recursive {
		return filepath.Join(outputDir, filepath.Dir(rel), name)
	}
	return filepath.Join(outputDir, name)
}

// Run converts every input file found under opts.InputDir. The returned
// error covers setup only; per-file failures are reported in the Summary.
func Run(ctx context.Context, opts Options, convert ConvertFunc) (*Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	files, err := FindFiles(opts.InputDir, opts.Format, opts.Recursive)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("출력 디렉토리 생성 실패: %w", err)
	}

	logger.Debug("batch started", "input", opts.InputDir, "files", len(files), "workers", workers)

	results := make([]Result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, rel := range files {
		i, rel := i, rel
		g.Go(func() error {
			results[i] = convertOne(gctx, opts, rel, convert, logger)
			return nil
		})
	}
	_ = g.Wait()

	return newSummary(results), nil
}

func convertOne(ctx context.Context, opts Options, rel string, convert ConvertFunc, logger *slog.Logger) Result {
	input := filepath.Join(opts.InputDir, filepath.FromSlash(rel))
	output := OutputPath(opts.OutputDir, rel, opts.Format, opts.Recursive)
	res := Result{Input: rel, Output: output}

	if !opts.Overwrite {
		if _, err := os.Stat(output); err == nil {
			res.Status = StatusSkipped
			logger.Info("skipped", "input", rel, "output", output)
			return res
		}
	}

	if err := ctx.Err(); err != nil {
		res.Status = StatusFailed
		res.Err = err
		return res
	}

	if err := safeConvert(ctx, convert, input, output, opts.Recursive); err != nil {
		res.Status = StatusFailed
		res.Err = err
		logger.Error("failed", "input", rel, "error", err)
		return res
	}

	res.Status = StatusConverted
	logger.Info("converted", "input", rel, "output", output)
	return res
}

// safeConvert runs convert and reports a panic as an error.
func safeConvert(ctx context.Context, convert ConvertFunc, input, output string, mkdir bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("변환 중 패닉: %v", r)
		}
	}()

	if mkdir {
		if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
			return fmt.Errorf("출력 디렉토리 생성 실패: %w", err)
		}
	}
	return convert(ctx, input, output)
}
