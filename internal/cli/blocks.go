package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/roboco-io/hwpxmd/internal/ir"
	"github.com/roboco-io/hwpxmd/internal/markdown"
	"github.com/roboco-io/hwpxmd/internal/source/plaintext"
	"github.com/spf13/cobra"
)

var (
	blocksOutput string
	blocksFormat string
	blocksPretty bool
)

var blocksCmd = &cobra.Command{
	Use:   "blocks <file.md>",
	Short: "Markdown 블록 분석 결과 출력",
	Long: `Markdown 파일을 블록(제목, 문단, 목록, 표)으로 분석한 결과를 출력합니다.

출력 형식:
  json      블록 목록 (기본)
  text      블록 종류와 서식을 제거한 텍스트
  markdown  블록을 다시 Markdown으로 출력 (목록 번호와 표 정리)

예시:
  hwpxmd blocks notes.md
  hwpxmd blocks notes.md --format text
  hwpxmd blocks notes.md --format markdown -o normalized.md`,
	Args: cobra.ExactArgs(1),
	RunE: runBlocks,
}

func init() {
	blocksCmd.Flags().StringVarP(&blocksOutput, "output", "o", "", "출력 파일 경로 (기본: stdout)")
	blocksCmd.Flags().StringVarP(&blocksFormat, "format", "f", "json", "출력 형식 (json, text, markdown)")
	blocksCmd.Flags().BoolVar(&blocksPretty, "pretty", true, "JSON 들여쓰기 적용")

	rootCmd.AddCommand(blocksCmd)
}

func runBlocks(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	if err := checkInput(inputPath); err != nil {
		return err
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("파일 읽기 실패: %w", err)
	}

	doc := markdown.ParseDocument(plaintext.Decode(data))

	output, err := formatBlocks(doc, blocksFormat)
	if err != nil {
		return err
	}
	return writeOutput(cmd, blocksOutput, output)
}

func formatBlocks(doc *ir.Document, format string) (string, error) {
	switch format {
	case "json":
		var data []byte
		var err error
		if blocksPretty {
			data, err = json.MarshalIndent(doc, "", "  ")
		} else {
			data, err = json.Marshal(doc)
		}
		if err != nil {
			return "", fmt.Errorf("JSON 변환 실패: %w", err)
		}
		return string(data) + "\n", nil

	case "text":
		return formatBlocksAsText(doc), nil

	case "markdown", "md":
		return markdown.Render(doc.Content), nil

	default:
		return "", fmt.Errorf("지원하지 않는 출력 형식: %s", format)
	}
}

func formatBlocksAsText(doc *ir.Document) string {
	var sb strings.Builder
	if doc.Metadata.Title != "" {
		fmt.Fprintf(&sb, "제목: %s\n", doc.Metadata.Title)
	}
	fmt.Fprintf(&sb, "블록 수: %d\n", len(doc.Content))

	for i, block := range doc.Content {
		label := string(block.Type)
		if block.Type == ir.BlockTypeHeading && block.Heading != nil {
			label = fmt.Sprintf("%s %d", block.Type, block.Heading.Level)
		}
		fmt.Fprintf(&sb, "\n[%d] %s\n%s\n", i+1, label, markdown.PlainText(block))
	}
	return sb.String()
}
