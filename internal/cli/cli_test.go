package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/roboco-io/hwpxmd/internal/ir"
	"github.com/roboco-io/hwpxmd/internal/source"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const sampleMarkdown = `# 보고서

첫 문단 **굵게** 그리고 *기울임*.

- 사과
- 배

1. 하나
2. 둘

| 이름 | 나이 |
|---|---|
| 철수 | 30 |
`

// resetFlags restores every flag of cmd and its subcommands to its default
// so that commands can run repeatedly in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the command tree with args against a private config file and
// returns stdout and stderr. A later --config in args takes precedence.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestSetVersion(t *testing.T) {
	oldVersion := version
	defer func() { SetVersion(oldVersion) }()

	SetVersion("1.2.3")
	if version != "1.2.3" {
		t.Errorf("expected version '1.2.3', got '%s'", version)
	}
	if rootCmd.Version != "1.2.3" {
		t.Errorf("expected root version '1.2.3', got '%s'", rootCmd.Version)
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "hwpxmd" {
		t.Errorf("expected Use 'hwpxmd', got '%s'", rootCmd.Use)
	}
	if rootCmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	for _, flag := range []string{"verbose", "quiet", "config"} {
		if rootCmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("expected persistent flag '%s' to exist", flag)
		}
	}
}

func TestCommandFlags(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{convertCmd, "convert <file>", []string{"output", "no-format-tables", "preserve-linebreaks", "para-head"}},
		{extractCmd, "extract <file>", []string{"output", "para-head"}},
		{md2hwpxCmd, "md2hwpx <file.md>", []string{"output", "title", "overwrite"}},
		{blocksCmd, "blocks <file.md>", []string{"output", "format", "pretty"}},
		{batchCmd, "batch <input_dir> <output_dir>", []string{"format", "recursive", "overwrite", "workers", "width"}},
		{formatsCmd, "formats", nil},
		{versionCmd, "version", nil},
	}

	for _, tc := range tests {
		t.Run(tc.cmd.Name(), func(t *testing.T) {
			if tc.cmd.Use != tc.use {
				t.Errorf("expected Use '%s', got '%s'", tc.use, tc.cmd.Use)
			}
			if tc.cmd.Short == "" {
				t.Error("expected Short description to be set")
			}
			for _, flag := range tc.flags {
				if tc.cmd.Flags().Lookup(flag) == nil {
					t.Errorf("expected flag '%s' to exist", flag)
				}
			}
		})
	}
}

func TestConfigCommand(t *testing.T) {
	if configCmd.Use != "config" {
		t.Errorf("expected Use 'config', got '%s'", configCmd.Use)
	}

	subcommands := []string{"show", "init", "get", "set", "path"}
	for _, name := range subcommands {
		found := false
		for _, cmd := range configCmd.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand '%s' to exist", name)
		}
	}
}

func TestCheckFormatStatus(t *testing.T) {
	reg := source.NewRegistry()

	info := formatInfo{Format: source.FormatHWPX}
	if got := checkFormatStatus(reg, info); got != "✗ 미등록" {
		t.Errorf("expected '✗ 미등록', got '%s'", got)
	}
	if got := checkFormatStatus(newRegistry(), info); got != "✓ 지원" {
		t.Errorf("expected '✓ 지원', got '%s'", got)
	}
}

func TestNewRegistry(t *testing.T) {
	reg := newRegistry()
	for _, f := range []source.Format{source.FormatHWPX, source.FormatHWP, source.FormatText} {
		if !reg.Has(f) {
			t.Errorf("expected reader for %s", f)
		}
	}
}

func TestVersionOutput(t *testing.T) {
	stdout, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(stdout, "hwpxmd ") {
		t.Errorf("unexpected version output: %q", stdout)
	}
}

func TestVerboseAndQuietConflict(t *testing.T) {
	_, _, err := execute(t, "version", "-v", "-q")
	if err == nil {
		t.Error("expected error when --verbose and --quiet are combined")
	}
}

func TestFormatsOutput(t *testing.T) {
	stdout, _, err := execute(t, "formats")
	if err != nil {
		t.Fatalf("formats failed: %v", err)
	}
	for _, want := range []string{"hwpx", "hwp", "text", "✓ 지원"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected output to contain %q\n%s", want, stdout)
		}
	}
}

func TestMd2hwpxThenConvert(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, "notes.md"), sampleMarkdown)
	output := filepath.Join(dir, "notes.hwpx")

	if _, _, err := execute(t, "md2hwpx", input, "-q"); err != nil {
		t.Fatalf("md2hwpx failed: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("expected default output %s: %v", output, err)
	}

	if _, _, err := execute(t, "md2hwpx", input, "-q"); err == nil {
		t.Error("expected error for existing output without --overwrite")
	}
	if _, _, err := execute(t, "md2hwpx", input, "-q", "--overwrite", "--title", "주간 보고"); err != nil {
		t.Fatalf("md2hwpx --overwrite failed: %v", err)
	}

	stdout, _, err := execute(t, "convert", output)
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	for _, want := range []string{"보고서", "첫 문단 굵게 그리고 기울임.", "• 사과", "1. 하나", "2. 둘", "철수 | 30"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected output to contain %q\n%s", want, stdout)
		}
	}
	if strings.Contains(stdout, "**") {
		t.Errorf("expected inline markers to be removed\n%s", stdout)
	}
}

func TestConvertToFile(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, "memo.txt"), "첫 줄\n\n이름\t나이\n철수\t30\n")
	output := filepath.Join(dir, "memo.md")

	stdout, _, err := execute(t, "convert", input, "-o", output, "-q")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if stdout != "" {
		t.Errorf("expected no stdout when writing to a file, got %q", stdout)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	for _, want := range []string{"첫 줄", "| 이름 | 나이 |", "| 철수 | 30 |"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("expected output to contain %q\n%s", want, data)
		}
	}
}

func TestConvertMissingFile(t *testing.T) {
	_, _, err := execute(t, "convert", filepath.Join(t.TempDir(), "missing.hwpx"))
	if err == nil {
		t.Error("expected error for missing input")
	}
}

func TestExtractText(t *testing.T) {
	input := writeFile(t, filepath.Join(t.TempDir(), "memo.txt"), "가나다\n라마바\n")

	stdout, _, err := execute(t, "extract", input)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	for _, want := range []string{"가나다", "라마바"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected output to contain %q\n%s", want, stdout)
		}
	}
}

func TestBlocksFormats(t *testing.T) {
	input := writeFile(t, filepath.Join(t.TempDir(), "notes.md"), sampleMarkdown)

	stdout, _, err := execute(t, "blocks", input)
	if err != nil {
		t.Fatalf("blocks failed: %v", err)
	}
	var doc ir.Document
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
	}
	if len(doc.Content) != 5 {
		t.Fatalf("expected 5 blocks, got %d", len(doc.Content))
	}
	if doc.Metadata.Title != "보고서" {
		t.Errorf("expected title '보고서', got '%s'", doc.Metadata.Title)
	}

	stdout, _, err = execute(t, "blocks", input, "--format", "text")
	if err != nil {
		t.Fatalf("blocks --format text failed: %v", err)
	}
	for _, want := range []string{"블록 수: 5", "[1] heading 1", "[5] table"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected output to contain %q\n%s", want, stdout)
		}
	}

	stdout, _, err = execute(t, "blocks", input, "--format", "markdown")
	if err != nil {
		t.Fatalf("blocks --format markdown failed: %v", err)
	}
	if !strings.Contains(stdout, "# 보고서") {
		t.Errorf("expected heading in output\n%s", stdout)
	}

	if _, _, err := execute(t, "blocks", input, "--format", "xml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestBatchReportsFailures(t *testing.T) {
	dir := t.TempDir()
	inDir := filepath.Join(dir, "in")
	outDir := filepath.Join(dir, "out")
	if err := os.MkdirAll(inDir, 0755); err != nil {
		t.Fatal(err)
	}

	md := writeFile(t, filepath.Join(dir, "good.md"), sampleMarkdown)
	if _, _, err := execute(t, "md2hwpx", md, "-o", filepath.Join(inDir, "good.hwpx"), "-q"); err != nil {
		t.Fatalf("md2hwpx failed: %v", err)
	}
	writeFile(t, filepath.Join(inDir, "bad.hwp"), "not a compound file")

	stdout, _, err := execute(t, "batch", inDir, outDir, "-q")
	if err == nil {
		t.Error("expected error when a file fails")
	}
	for _, want := range []string{"성공: 1/2", "실패: 1/2", "bad.hwp", "good.hwpx"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected report to contain %q\n%s", want, stdout)
		}
	}

	data, err := os.ReadFile(filepath.Join(outDir, "good.md"))
	if err != nil {
		t.Fatalf("expected converted file: %v", err)
	}
	if !strings.Contains(string(data), "보고서") {
		t.Errorf("unexpected converted content\n%s", data)
	}
}

func TestBatchMarkdownToHWPX(t *testing.T) {
	dir := t.TempDir()
	inDir := filepath.Join(dir, "notes")
	if err := os.MkdirAll(filepath.Join(inDir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(inDir, "a.md"), "# 가\n")
	writeFile(t, filepath.Join(inDir, "sub", "b.md"), "- 나\n")
	outDir := filepath.Join(dir, "out")

	stdout, _, err := execute(t, "batch", inDir, outDir, "--format", "hwpx", "--recursive", "-q")
	if err != nil {
		t.Fatalf("batch failed: %v\n%s", err, stdout)
	}
	for _, path := range []string{"a.hwpx", filepath.Join("sub", "b.hwpx")} {
		if _, err := os.Stat(filepath.Join(outDir, path)); err != nil {
			t.Errorf("expected output %s: %v", path, err)
		}
	}
	if !strings.Contains(stdout, "성공: 2/2") {
		t.Errorf("unexpected report\n%s", stdout)
	}
}

func TestConfigSetGet(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	runConfig := func(args ...string) (string, string, error) {
		return execute(t, append([]string{"--config", cfgPath, "config"}, args...)...)
	}

	if _, _, err := runConfig("set", "batch.workers", "8"); err != nil {
		t.Fatalf("config set failed: %v", err)
	}
	stdout, _, err := runConfig("get", "batch.workers")
	if err != nil {
		t.Fatalf("config get failed: %v", err)
	}
	if strings.TrimSpace(stdout) != "8" {
		t.Errorf("expected '8', got %q", stdout)
	}

	if _, _, err := runConfig("set", "unknown.key", "1"); err == nil {
		t.Error("expected error for unknown key")
	}

	stdout, _, err = runConfig("path")
	if err != nil {
		t.Fatalf("config path failed: %v", err)
	}
	if strings.TrimSpace(stdout) != cfgPath {
		t.Errorf("expected %s, got %q", cfgPath, stdout)
	}

	stdout, _, err = runConfig("show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	for _, want := range []string{cfgPath, "workers: 8", "HWPXMD_FORMAT_TABLES"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected output to contain %q\n%s", want, stdout)
		}
	}

	if _, _, err := runConfig("init"); err == nil {
		t.Error("expected error for existing config without --force")
	}
	if _, _, err := runConfig("init", "--force"); err != nil {
		t.Fatalf("config init --force failed: %v", err)
	}
}
