package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/roboco-io/hwpxmd/internal/batch"
	"github.com/roboco-io/hwpxmd/internal/config"
	"github.com/roboco-io/hwpxmd/internal/source"
	"github.com/spf13/cobra"
)

var (
	batchFormat    string
	batchRecursive bool
	batchOverwrite bool
	batchWorkers   int
	batchWidth     int
)

var batchCmd = &cobra.Command{
	Use:   "batch <input_dir> <output_dir>",
	Short: "디렉토리 일괄 변환",
	Long: `디렉토리 안의 문서를 한 번에 변환합니다.

출력 형식에 따라 입력 파일이 정해집니다.
  markdown  *.hwpx, *.hwp → *.md (기본)
  text      *.hwpx, *.hwp → *.txt
  hwpx      *.md → *.hwpx

이미 존재하는 출력 파일은 건너뜁니다 (--overwrite로 덮어쓰기).
변환에 실패한 파일이 있어도 나머지 파일은 계속 변환하며,
마지막에 파일별 결과를 출력합니다.

예시:
  hwpxmd batch ./docs ./out
  hwpxmd batch ./docs ./out --recursive --workers 8
  hwpxmd batch ./notes ./hwpx --format hwpx --overwrite`,
	Args: cobra.ExactArgs(2),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", "markdown", "출력 형식 (markdown, text, hwpx)")
	batchCmd.Flags().BoolVarP(&batchRecursive, "recursive", "r", false, "하위 디렉토리 포함")
	batchCmd.Flags().BoolVar(&batchOverwrite, "overwrite", false, "기존 파일 덮어쓰기")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", batch.DefaultWorkers, "동시 변환 수")
	batchCmd.Flags().IntVar(&batchWidth, "width", 40, "결과 표의 파일 이름 너비")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Batch.OutputFormat = batchFormat
	}
	if flags.Changed("recursive") {
		cfg.Batch.Recursive = batchRecursive
	}
	if flags.Changed("overwrite") {
		cfg.Batch.Overwrite = batchOverwrite
	}
	if flags.Changed("workers") {
		cfg.Batch.Workers = batchWorkers
	}

	outFormat, err := batch.ParseOutputFormat(cfg.Batch.OutputFormat)
	if err != nil {
		return err
	}

	opts := batch.Options{
		InputDir:  args[0],
		OutputDir: args[1],
		Format:    outFormat,
		Recursive: cfg.Batch.Recursive,
		Overwrite: cfg.Batch.Overwrite,
		Workers:   cfg.Batch.Workers,
		Logger:    slog.Default(),
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	summary, err := batch.Run(ctx, opts, batchConverter(outFormat, newRegistry(), cfg))
	if err != nil {
		return err
	}

	batch.WriteReport(cmd.OutOrStdout(), summary, batchWidth)

	if summary.HasFailures() {
		return fmt.Errorf("%d개 파일 변환 실패", summary.Failed)
	}
	return nil
}

// batchConverter returns the per-file conversion for an output format.
func batchConverter(f batch.OutputFormat, reg *source.Registry, cfg *config.Config) batch.ConvertFunc {
	switch f {
	case batch.FormatText:
		return func(_ context.Context, in, out string) error {
			text, err := reg.ExtractText(in, cfg.SourceOptions())
			if err != nil {
				return err
			}
			return os.WriteFile(out, []byte(text), 0644)
		}
	case batch.FormatHWPX:
		return func(_ context.Context, in, out string) error {
			return markdownToHWPX(in, out, "", cfg)
		}
	default:
		return func(_ context.Context, in, out string) error {
			md, err := convertDocument(reg, in, cfg)
			if err != nil {
				return err
			}
			return os.WriteFile(out, []byte(md), 0644)
		}
	}
}
