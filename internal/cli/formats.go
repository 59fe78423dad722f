package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/roboco-io/hwpxmd/internal/source"
	"github.com/spf13/cobra"
)

type formatInfo struct {
	Format      source.Format
	Extensions  []string
	Description string
}

var formats = []formatInfo{
	{
		Format:      source.FormatHWPX,
		Extensions:  []string{".hwpx"},
		Description: "한글 2014 이후 XML 문서 (OWPML)",
	},
	{
		Format:      source.FormatHWP,
		Extensions:  []string{".hwp"},
		Description: "한글 5.x 바이너리 문서",
	},
	{
		Format:      source.FormatText,
		Extensions:  []string{".txt", ".md"},
		Description: "텍스트 파일 (UTF-8, UTF-16, EUC-KR)",
	},
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "지원하는 입력 형식 목록",
	Long: `텍스트를 추출할 수 있는 입력 형식 목록을 표시합니다.

확장자가 맞지 않는 파일은 파일 앞부분의 시그니처로 형식을 판별합니다.

사용 예시:
  hwpxmd convert document.hwpx
  hwpxmd extract document.hwp`,
	Run: runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, args []string) {
	reg := newRegistry()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "형식\t확장자\t상태\t설명")
	fmt.Fprintln(w, "----\t------\t----\t----")

	for _, f := range formats {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			f.Format, strings.Join(f.Extensions, ", "), checkFormatStatus(reg, f), f.Description)
	}
}

func checkFormatStatus(reg *source.Registry, f formatInfo) string {
	if reg.Has(f.Format) {
		return "✓ 지원"
	}
	return "✗ 미등록"
}
