package cli

import (
	"fmt"
	"log/slog"

	"github.com/roboco-io/hwpxmd/internal/config"
	"github.com/roboco-io/hwpxmd/internal/format"
	"github.com/roboco-io/hwpxmd/internal/source"
	"github.com/spf13/cobra"
)

var (
	convertOutput             string
	convertNoFormatTables     bool
	convertPreserveLinebreaks bool
	convertParaHead           bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "HWP/HWPX 문서를 Markdown으로 변환",
	Long: `HWP/HWPX 문서를 Markdown으로 변환합니다.

문서의 텍스트를 추출한 뒤 다음 순서로 정리합니다.
  1. 연속된 빈 줄을 하나로 줄이고 줄 끝 공백 제거
  2. 탭으로 구분된 연속 줄을 Markdown 표로 복원
  3. 문단 안의 줄바꿈을 공백으로 병합 (--preserve-linebreaks로 유지)
  4. 연속된 공백 정리

환경 변수:
  HWPXMD_FORMAT_TABLES=false       표 복원 비활성화
  HWPXMD_PRESERVE_LINEBREAKS=true  줄바꿈 유지
  HWPXMD_PARA_HEAD=true            문단 번호/글머리표 삽입

예시:
  hwpxmd convert document.hwpx
  hwpxmd convert document.hwp -o output.md
  hwpxmd convert document.hwpx --no-format-tables --preserve-linebreaks`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "출력 파일 경로 (기본: stdout)")
	convertCmd.Flags().BoolVar(&convertNoFormatTables, "no-format-tables", false, "표 복원 비활성화")
	convertCmd.Flags().BoolVar(&convertPreserveLinebreaks, "preserve-linebreaks", false, "문단 안의 줄바꿈 유지")
	convertCmd.Flags().BoolVar(&convertParaHead, "para-head", false, "문단 번호/글머리표 삽입")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	if err := checkInput(inputPath); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("no-format-tables") {
		cfg.Convert.FormatTables = !convertNoFormatTables
	}
	if cmd.Flags().Changed("preserve-linebreaks") {
		cfg.Convert.PreserveLinebreaks = convertPreserveLinebreaks
	}
	if cmd.Flags().Changed("para-head") {
		cfg.Convert.InsertParaHead = convertParaHead
	}

	slog.Debug("converting", "input", inputPath, "format", source.DetectFormat(inputPath),
		"format_tables", cfg.Convert.FormatTables, "preserve_linebreaks", cfg.Convert.PreserveLinebreaks)

	markdown, err := convertDocument(newRegistry(), inputPath, cfg)
	if err != nil {
		return err
	}

	if err := writeOutput(cmd, convertOutput, markdown); err != nil {
		return err
	}
	if convertOutput != "" && !rootQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "변환 완료: %s\n", convertOutput)
	}
	return nil
}

// convertDocument extracts the text of a source document and formats it as
// Markdown.
func convertDocument(reg *source.Registry, path string, cfg *config.Config) (string, error) {
	text, err := reg.ExtractText(path, cfg.SourceOptions())
	if err != nil {
		return "", fmt.Errorf("문서 파싱 실패: %w", err)
	}
	return format.Format(text, cfg.FormatOptions()), nil
}
