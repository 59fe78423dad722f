// Package cli implements the hwpxmd command tree.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/roboco-io/hwpxmd/internal/config"
	"github.com/roboco-io/hwpxmd/internal/source"
	"github.com/roboco-io/hwpxmd/internal/source/hwp5"
	sourcehwpx "github.com/roboco-io/hwpxmd/internal/source/hwpx"
	"github.com/roboco-io/hwpxmd/internal/source/plaintext"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	rootVerbose    bool
	rootQuiet      bool
	rootConfigPath string
)

var rootCmd = &cobra.Command{
	Use:   "hwpxmd",
	Short: "HWP/HWPX 문서와 Markdown 상호 변환 도구",
	Long: `hwpxmd는 한글 문서와 Markdown을 양방향으로 변환합니다.

  문서 → Markdown: HWPX/HWP 문서의 텍스트를 추출하고 표를 복원하여
                  Markdown으로 정리합니다.
  Markdown → HWPX: Markdown을 블록 단위로 분석하여 HWPX 문서를 만듭니다.

설정 파일: ~/.hwpxmd/config.yaml

예시:
  hwpxmd convert document.hwpx -o document.md
  hwpxmd md2hwpx notes.md -o notes.hwpx
  hwpxmd batch ./docs ./out --recursive`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "버전 정보 표시",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "hwpxmd %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "상세 로그 출력")
	rootCmd.PersistentFlags().BoolVarP(&rootQuiet, "quiet", "q", false, "오류만 출력")
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "설정 파일 경로 (기본: ~/.hwpxmd/config.yaml)")

	rootCmd.AddCommand(versionCmd)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setupLogging(cmd *cobra.Command, args []string) error {
	if rootVerbose && rootQuiet {
		return fmt.Errorf("--verbose와 --quiet는 함께 사용할 수 없습니다")
	}
	slog.SetDefault(newLogger(cmd.ErrOrStderr()))
	return nil
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case rootVerbose:
		level = slog.LevelDebug
	case rootQuiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func configLoader() (*config.Loader, error) {
	if rootConfigPath != "" {
		return config.NewLoaderWithPath(rootConfigPath), nil
	}
	loader, err := config.NewLoader()
	if err != nil {
		return nil, fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}
	return loader, nil
}

// loadConfig returns the configuration with environment overrides applied.
func loadConfig() (*config.Config, error) {
	loader, err := configLoader()
	if err != nil {
		return nil, err
	}
	cfg, err := loader.LoadEffective()
	if err != nil {
		return nil, fmt.Errorf("설정 로드 실패: %w", err)
	}
	return cfg, nil
}

// newRegistry returns a registry with every source reader.
func newRegistry() *source.Registry {
	reg := source.NewRegistry()
	for _, r := range []source.Reader{sourcehwpx.Reader{}, hwp5.Reader{}, plaintext.Reader{}} {
		if err := reg.Register(r); err != nil {
			panic(err)
		}
	}
	return reg
}

// writeOutput writes content to path, or to the command's stdout when path
// is empty.
func writeOutput(cmd *cobra.Command, path, content string) error {
	if path == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("파일 저장 실패: %w", err)
	}
	return nil
}

func checkInput(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("파일을 찾을 수 없습니다: %s", path)
	}
	if err != nil {
		return fmt.Errorf("파일을 확인할 수 없습니다: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("디렉토리는 변환할 수 없습니다: %s", path)
	}
	return nil
}
