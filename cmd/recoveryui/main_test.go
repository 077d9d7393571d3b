package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"recoveryui/internal/buildinfo"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const themeXML = `<recovery>
	<details><resolution width="100" height="100"/></details>
	<resources>
		<string name="title">Install</string>
	</resources>
	<pages>
		<page name="main">
			<object type="text">
				<font resource="builtin" color="#ffffff"/>
				<placement x="0" y="0"/>
				<text>{@title} {@wipe_btn}</text>
			</object>
		</page>
	</pages>
</recovery>`

func executeCommand(cmd *cobra.Command, args ...string) (string, error) {
	cmd.SetArgs(args)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	themeDir := filepath.Join(dir, "theme")
	require.NoError(t, os.MkdirAll(themeDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(themeDir, "ui.xml"), []byte(themeXML), 0o644))

	cfg := "theme: " + themeDir + "\n" +
		"scratch:\n  path: " + filepath.Join(dir, "extract.bin") + "\n  font_tmp_dir: " + dir + "\n" +
		"display:\n  backend: headless\n  width: 100\n  height: 100\n  hz: 1000\n  ticks: 2\n" +
		"log:\n  level: error\n"
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

func TestVersionCommandOutputsBuildInfo(t *testing.T) {
	origVersion, origCommit, origDate := buildinfo.Version, buildinfo.Commit, buildinfo.Date
	t.Cleanup(func() {
		buildinfo.Version, buildinfo.Commit, buildinfo.Date = origVersion, origCommit, origDate
	})
	buildinfo.Version = "1.2.3"
	buildinfo.Commit = "abcdef1"
	buildinfo.Date = "2026-01-02"

	out, err := executeCommand(newRootCmd(), "version")
	require.NoError(t, err)
	require.Contains(t, out, "1.2.3")
	require.Contains(t, out, "abcdef1")
	require.Contains(t, out, "2026-01-02")
}

func TestRunCommandHeadless(t *testing.T) {
	_, err := executeCommand(newRootCmd(), "run", "--config", writeConfig(t))
	require.NoError(t, err)
}

func TestStringsCommandDumpsTable(t *testing.T) {
	out, err := executeCommand(newRootCmd(), "strings", "--config", writeConfig(t))
	require.NoError(t, err)
	require.Contains(t, out, "'title' = 'Install'")
	require.Contains(t, out, "'wipe_btn' = '[wipe_btn]'")
}

func TestFlagsOverrideConfig(t *testing.T) {
	flags := &rootFlags{configPath: writeConfig(t), backend: "window", width: 320, ticks: 9, logLevel: "debug"}
	cfg, err := loadConfig(flags)
	require.NoError(t, err)
	require.Equal(t, "window", cfg.Display.Backend)
	require.Equal(t, 320, cfg.Display.Width)
	require.Equal(t, 100, cfg.Display.Height)
	require.Equal(t, uint64(9), cfg.Display.Ticks)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigRejectsInvalidBackend(t *testing.T) {
	_, err := loadConfig(&rootFlags{theme: t.TempDir(), backend: "vga"})
	require.Error(t, err)
}

func TestLoadConfigRequiresTheme(t *testing.T) {
	_, err := loadConfig(&rootFlags{})
	require.Error(t, err)
}
