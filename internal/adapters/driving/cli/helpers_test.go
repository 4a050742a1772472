package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/snapfind/internal/adapters/driven/ai"
	"github.com/custodia-labs/snapfind/internal/core/domain"
	"github.com/custodia-labs/snapfind/internal/core/ports/driven"
	"github.com/custodia-labs/snapfind/internal/logger"
)

// mockVisionService implements driven.VisionService for testing.
type mockVisionService struct {
	reply string
	err   error
	calls int
	model string
}

func (m *mockVisionService) Describe(_ context.Context, _ driven.VisionRequest) (string, error) {
	m.calls++
	return m.reply, m.err
}

func (m *mockVisionService) ModelName() string { return m.model }

func (m *mockVisionService) Close() error { return nil }

// testEnv is the environment seen by the commands under test.
type testEnv struct {
	vars   map[string]string
	vision *mockVisionService
	config string
}

// setupTestServices swaps the vision factory for a mock and isolates the
// environment and config file. The credential check still runs.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		vars:   map[string]string{"OPENAI_API_KEY": "sk-test-1234567890"},
		vision: &mockVisionService{},
		config: filepath.Join(t.TempDir(), "config.toml"),
	}

	oldGetenv, oldVision := getenv, newVision
	getenv = func(key string) string { return env.vars[key] }
	newVision = func(settings domain.Settings) (driven.VisionService, error) {
		if _, err := ai.CheckCredential(settings.Provider, getenv); err != nil {
			return nil, err
		}
		env.vision.model = settings.EffectiveModel()
		return env.vision, nil
	}

	var logs bytes.Buffer
	logger.SetOutput(&logs)

	t.Cleanup(func() {
		getenv, newVision = oldGetenv, oldVision
		logger.SetOutput(os.Stderr)
		logger.SetVerbose(false)
		settingsService = nil
		promptStore = nil
	})
	return env
}

// run executes the root command with a fresh flag state and returns stdout.
func (e *testEnv) run(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	return e.runContext(t, context.Background(), stdin, args...)
}

// runContext is run with a caller-controlled context.
func (e *testEnv) runContext(t *testing.T, ctx context.Context, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetIn(stdin)
	rootCmd.SetArgs(append([]string{"--config", e.config}, args...))
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.ExecuteContext(ctx)
	return out.String(), err
}

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

// writeFixture creates a file under dir and returns its absolute path.
func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// reportsFixture creates a reports folder, an image and a db path.
func reportsFixture(t *testing.T) (reports, image, db string) {
	t.Helper()
	base := t.TempDir()
	reports = filepath.Join(base, "reports")
	writeFixture(t, reports, "tsmc.txt", "TSMC raised capex guidance\n\nfor 2026")
	writeFixture(t, reports, "robots/arm.md", "# Robotics\nActuator   torque notes")
	writeFixture(t, reports, "empty.txt", "   \n\t")
	image = writeFixture(t, base, "slide.png", "\x89PNG fake")
	db = filepath.Join(base, "reports_fts.db")
	return reports, image, db
}
