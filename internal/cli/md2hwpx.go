package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/roboco-io/hwpxmd/internal/config"
	"github.com/roboco-io/hwpxmd/internal/document"
	"github.com/roboco-io/hwpxmd/internal/document/hwpx"
	"github.com/roboco-io/hwpxmd/internal/markdown"
	"github.com/roboco-io/hwpxmd/internal/source/plaintext"
	"github.com/spf13/cobra"
)

var (
	md2hwpxOutput    string
	md2hwpxTitle     string
	md2hwpxOverwrite bool
)

var md2hwpxCmd = &cobra.Command{
	Use:   "md2hwpx <file.md>",
	Short: "Markdown을 HWPX 문서로 변환",
	Long: `Markdown 파일을 HWPX 문서로 변환합니다.

지원하는 블록: 제목(#), 문단, 글머리 목록(- * +), 번호 목록(1.), 표(|)
지원하는 인라인 서식: **굵게**, *기울임*, ` + "`코드`" + `, [링크](주소)

목록 항목은 글머리표 또는 번호가 붙은 문단으로, 표의 각 행은 셀을
" | "로 이은 문단으로 만들어집니다.

예시:
  hwpxmd md2hwpx notes.md
  hwpxmd md2hwpx notes.md -o report.hwpx --title "주간 보고"`,
	Args: cobra.ExactArgs(1),
	RunE: runMd2hwpx,
}

func init() {
	md2hwpxCmd.Flags().StringVarP(&md2hwpxOutput, "output", "o", "", "출력 파일 경로 (기본: 입력 파일 이름.hwpx)")
	md2hwpxCmd.Flags().StringVar(&md2hwpxTitle, "title", "", "문서 제목 (기본: 첫 번째 제목)")
	md2hwpxCmd.Flags().BoolVar(&md2hwpxOverwrite, "overwrite", false, "기존 파일 덮어쓰기")

	rootCmd.AddCommand(md2hwpxCmd)
}

func runMd2hwpx(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	if err := checkInput(inputPath); err != nil {
		return err
	}

	outputPath := md2hwpxOutput
	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".hwpx"
	}
	if _, err := os.Stat(outputPath); err == nil && !md2hwpxOverwrite {
		return fmt.Errorf("출력 파일이 이미 존재합니다: %s\n덮어쓰려면 --overwrite 플래그를 사용하세요", outputPath)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := markdownToHWPX(inputPath, outputPath, md2hwpxTitle, cfg); err != nil {
		return err
	}
	if !rootQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "변환 완료: %s\n", outputPath)
	}
	return nil
}

// markdownToHWPX parses a Markdown file and saves it as an HWPX document.
// An empty title falls back to the first heading, then the file name.
func markdownToHWPX(inputPath, outputPath, title string, cfg *config.Config) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("파일 읽기 실패: %w", err)
	}

	doc := markdown.ParseDocument(plaintext.Decode(data))
	if title == "" {
		title = doc.Metadata.Title
	}
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	}

	sheet := cfg.StyleSheet()
	out := hwpx.New(sheet)
	out.Title = title
	n := document.Populate(doc.Content, out, sheet)

	slog.Debug("populated", "input", inputPath, "blocks", len(doc.Content), "paragraphs", n)

	if err := out.Save(outputPath); err != nil {
		return fmt.Errorf("HWPX 저장 실패: %w", err)
	}
	return nil
}
