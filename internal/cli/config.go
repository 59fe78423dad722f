package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/roboco-io/hwpxmd/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "설정 관리",
	Long: `hwpxmd 설정을 관리합니다.

설정 파일 위치: ~/.hwpxmd/config.yaml (--config로 변경)

하위 명령:
  show    현재 설정 표시
  init    기본 설정 파일 생성
  get     설정 값 조회
  set     설정 값 변경
  path    설정 파일 경로 표시`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "현재 설정 표시",
	Long: `설정 파일의 내용을 표시합니다.

설정 파일이 없으면 기본값이 표시됩니다.
환경 변수는 설정 파일보다 우선 적용됩니다.`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "기본 설정 파일 생성",
	Long: `기본 설정 파일을 생성합니다.

이미 설정 파일이 있는 경우 오류가 발생합니다.
기존 파일을 덮어쓰려면 --force 플래그를 사용하세요.`,
	RunE: runConfigInit,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "설정 값 조회",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "설정 값 변경",
	Long: `설정 값을 변경합니다.

지원하는 키:
  ` + strings.Join(config.Keys(), "\n  ") + `

구분자(text_marks.*)는 \n, \t 같은 이스케이프로 입력합니다.

예시:
  hwpxmd config set convert.format_tables false
  hwpxmd config set batch.workers 8
  hwpxmd config set text_marks.table_cell_separator '\t'`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "설정 파일 경로 표시",
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := configLoader()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), loader.ConfigPath())
		return nil
	},
}

var configForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "기존 설정 파일 덮어쓰기")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	loader, err := configLoader()
	if err != nil {
		return err
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}

	out := cmd.OutOrStdout()
	if loader.Exists() {
		fmt.Fprintf(out, "설정 파일: %s\n\n", loader.ConfigPath())
	} else {
		fmt.Fprintf(out, "설정 파일: (기본값 사용)\n\n")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("설정 출력 실패: %w", err)
	}
	fmt.Fprintln(out, string(data))

	fmt.Fprintln(out, "환경 변수:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	envVars := []struct {
		key  string
		desc string
	}{
		{config.EnvFormatTables, "표 복원"},
		{config.EnvPreserveLinebreaks, "줄바꿈 유지"},
		{config.EnvParaHead, "문단 번호/글머리표 삽입"},
		{config.EnvWorkers, "일괄 변환 동시 실행 수"},
	}
	for _, ev := range envVars {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", ev.key, ev.desc, config.GetEnvOrDefault(ev.key, "(미설정)"))
	}
	return w.Flush()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	loader, err := configLoader()
	if err != nil {
		return err
	}

	if loader.Exists() && !configForce {
		return fmt.Errorf("설정 파일이 이미 존재합니다: %s\n덮어쓰려면 --force 플래그를 사용하세요", loader.ConfigPath())
	}
	if err := loader.Init(configForce); err != nil {
		return fmt.Errorf("설정 파일 생성 실패: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "설정 파일 생성됨: %s\n", loader.ConfigPath())
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	loader, err := configLoader()
	if err != nil {
		return err
	}
	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}

	value, err := cfg.Get(args[0])
	if err != nil {
		return fmt.Errorf("%w\n지원하는 키: %s", err, strings.Join(config.Keys(), ", "))
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	loader, err := configLoader()
	if err != nil {
		return err
	}
	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}

	if err := cfg.Set(key, value); err != nil {
		return fmt.Errorf("설정 변경 실패: %w\n지원하는 키: %s", err, strings.Join(config.Keys(), ", "))
	}

	if err := loader.Save(cfg); err != nil {
		return fmt.Errorf("설정 저장 실패: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "설정 변경됨: %s = %s\n", key, value)
	return nil
}
