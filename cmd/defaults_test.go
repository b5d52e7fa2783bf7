package cmd

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/avtools-cli/internal/config"
)

func TestApplyRootDefaultsEnvOverridesConfig(t *testing.T) {
	prevCfg := activeProjectConfig
	prevOutput := outputDir
	prevWorkers := workers
	t.Cleanup(func() {
		activeProjectConfig = prevCfg
		outputDir = prevOutput
		workers = prevWorkers
	})

	activeProjectConfig = &config.ProjectConfig{
		DefaultOutput: "/from-config",
		Workers:       3,
	}
	outputDir = ""
	workers = 1

	t.Setenv(envOutput, "/from-env")
	t.Setenv(envWorkers, "9")

	c := newTestRootCommand()
	if err := applyRootDefaults(c); err != nil {
		t.Fatalf("applyRootDefaults failed: %v", err)
	}

	if outputDir != "/from-env" {
		t.Fatalf("expected env output, got %s", outputDir)
	}
	if workers != 9 {
		t.Fatalf("expected env workers 9, got %d", workers)
	}
}

func TestApplyRootDefaultsConfigFallback(t *testing.T) {
	prevCfg := activeProjectConfig
	prevOutput := outputDir
	prevWorkers := workers
	t.Cleanup(func() {
		activeProjectConfig = prevCfg
		outputDir = prevOutput
		workers = prevWorkers
	})

	activeProjectConfig = &config.ProjectConfig{
		DefaultOutput: "/from-config",
		Workers:       5,
	}
	outputDir = ""
	workers = 1

	t.Setenv(envOutput, "")
	t.Setenv(envWorkers, "")

	c := newTestRootCommand()
	if err := applyRootDefaults(c); err != nil {
		t.Fatalf("applyRootDefaults failed: %v", err)
	}

	if outputDir != "/from-config" {
		t.Fatalf("expected config output, got %s", outputDir)
	}
	if workers != 5 {
		t.Fatalf("expected config workers 5, got %d", workers)
	}
}

func TestApplyRootDefaultsAppConfigFallback(t *testing.T) {
	prevProject := activeProjectConfig
	prevApp := activeAppConfig
	prevOutput := outputDir
	prevWorkers := workers
	t.Cleanup(func() {
		activeProjectConfig = prevProject
		activeAppConfig = prevApp
		outputDir = prevOutput
		workers = prevWorkers
	})

	activeProjectConfig = nil
	activeAppConfig = &config.AppConfig{DefaultOutputDir: " /from-app ", Workers: 7}
	outputDir = ""
	workers = 1

	t.Setenv(envOutput, "")
	t.Setenv(envWorkers, "")

	c := newTestRootCommand()
	if err := applyRootDefaults(c); err != nil {
		t.Fatalf("applyRootDefaults failed: %v", err)
	}

	if outputDir != "/from-app" {
		t.Fatalf("expected trimmed app config output, got %q", outputDir)
	}
	if workers != 7 {
		t.Fatalf("expected app config workers 7, got %d", workers)
	}
}

func TestApplyQualityAndConflictAppFallback(t *testing.T) {
	prevProject := activeProjectConfig
	prevApp := activeAppConfig
	t.Cleanup(func() {
		activeProjectConfig = prevProject
		activeAppConfig = prevApp
	})

	activeProjectConfig = nil
	activeAppConfig = &config.AppConfig{Quality: 70, OnConflict: "Overwrite"}
	t.Setenv(envQuality, "")
	t.Setenv(envConflict, "")

	c := &cobra.Command{Use: "test"}
	c.Flags().Int("quality", 0, "")
	c.Flags().String("on-conflict", "versioned", "")

	quality := 0
	applyQualityDefault(c, "quality", &quality)
	if quality != 70 {
		t.Fatalf("expected app config quality 70, got %d", quality)
	}

	conflict := "versioned"
	applyOnConflictDefault(c, "on-conflict", &conflict)
	if conflict != "overwrite" {
		t.Fatalf("expected lowercased app config conflict, got %s", conflict)
	}
}

func TestApplyRootDefaultsRespectsChangedFlags(t *testing.T) {
	prevCfg := activeProjectConfig
	prevOutput := outputDir
	prevWorkers := workers
	t.Cleanup(func() {
		activeProjectConfig = prevCfg
		outputDir = prevOutput
		workers = prevWorkers
	})

	activeProjectConfig = &config.ProjectConfig{
		DefaultOutput: "/from-config",
		Workers:       5,
	}
	outputDir = "/manual"
	workers = 11

	c := newTestRootCommand()
	if err := c.Flags().Set("output", "/manual"); err != nil {
		t.Fatalf("set output flag failed: %v", err)
	}
	if err := c.Flags().Set("workers", "11"); err != nil {
		t.Fatalf("set workers flag failed: %v", err)
	}

	if err := applyRootDefaults(c); err != nil {
		t.Fatalf("applyRootDefaults failed: %v", err)
	}

	if outputDir != "/manual" {
		t.Fatalf("expected manual output unchanged, got %s", outputDir)
	}
	if workers != 11 {
		t.Fatalf("expected manual workers unchanged, got %d", workers)
	}
}

func TestApplyQualityDefaultEnv(t *testing.T) {
	prevCfg := activeProjectConfig
	t.Cleanup(func() { activeProjectConfig = prevCfg })
	activeProjectConfig = nil

	t.Setenv(envQuality, "85")

	c := &cobra.Command{Use: "test"}
	c.Flags().Int("quality", 0, "")

	value := 0
	applyQualityDefault(c, "quality", &value)
	if value != 85 {
		t.Fatalf("expected env quality 85, got %d", value)
	}
}

func TestApplyOnConflictDefaultConfig(t *testing.T) {
	prevCfg := activeProjectConfig
	t.Cleanup(func() { activeProjectConfig = prevCfg })

	activeProjectConfig = &config.ProjectConfig{OnConflict: "Skip"}
	t.Setenv(envConflict, "")

	c := &cobra.Command{Use: "test"}
	c.Flags().String("on-conflict", "versioned", "")

	value := "versioned"
	applyOnConflictDefault(c, "on-conflict", &value)
	if value != "skip" {
		t.Fatalf("expected lowercased config conflict, got %s", value)
	}
}

func TestApplyRetryDefaults(t *testing.T) {
	prevCfg := activeProjectConfig
	t.Cleanup(func() { activeProjectConfig = prevCfg })
	activeProjectConfig = nil

	t.Setenv(envRetry, "4")
	t.Setenv(envRetryDelay, "250ms")

	c := &cobra.Command{Use: "test"}
	c.Flags().Int("retry", 0, "")
	c.Flags().Duration("retry-delay", 0, "")

	retry := 0
	delay := time.Duration(0)
	applyRetryDefaults(c, "retry", &retry, "retry-delay", &delay)

	if retry != 4 {
		t.Fatalf("expected retry 4, got %d", retry)
	}
	if delay != 250*time.Millisecond {
		t.Fatalf("expected 250ms delay, got %s", delay)
	}
}

func newTestRootCommand() *cobra.Command {
	c := &cobra.Command{Use: "test"}
	c.Flags().String("output", "", "")
	c.Flags().Int("workers", 0, "")
	return c
}

func TestReadEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "12")
	if v, ok := readEnvInt("X_INT"); !ok || v != 12 {
		t.Fatalf("unexpected int parse result")
	}

	t.Setenv("X_DUR", "2s")
	if _, ok := readEnvDuration("X_DUR"); !ok {
		t.Fatalf("expected duration parse success")
	}

	_ = os.Unsetenv("X_INT")
	_ = os.Unsetenv("X_DUR")
}
