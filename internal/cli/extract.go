package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	extractOutput   string
	extractParaHead bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "HWP/HWPX 문서에서 텍스트 추출",
	Long: `HWP/HWPX 문서에서 텍스트만 추출합니다.

Markdown 정리 없이 문단 구분자, 탭, 표 구분자가 그대로 들어간 텍스트를
출력합니다. 구분자는 설정 파일의 text_marks 항목으로 바꿀 수 있습니다.

예시:
  hwpxmd extract document.hwpx
  hwpxmd extract document.hwp -o output.txt --para-head`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "출력 파일 경로 (기본: stdout)")
	extractCmd.Flags().BoolVar(&extractParaHead, "para-head", false, "문단 번호/글머리표 삽입")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	if err := checkInput(inputPath); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("para-head") {
		cfg.Convert.InsertParaHead = extractParaHead
	}

	text, err := newRegistry().ExtractText(inputPath, cfg.SourceOptions())
	if err != nil {
		return fmt.Errorf("텍스트 추출 실패: %w", err)
	}

	if err := writeOutput(cmd, extractOutput, text); err != nil {
		return err
	}
	if extractOutput != "" && !rootQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "텍스트 추출 완료: %s\n", extractOutput)
	}
	return nil
}
