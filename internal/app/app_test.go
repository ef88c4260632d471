package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.smelt.dev/smelt/internal/adapters/fs"
	"go.smelt.dev/smelt/internal/adapters/manifest"
	"go.smelt.dev/smelt/internal/app"
	"go.smelt.dev/smelt/internal/artifacts"
	"go.smelt.dev/smelt/internal/core/domain"
	"go.smelt.dev/smelt/internal/core/ports"
	"go.smelt.dev/smelt/internal/core/ports/mocks"
	"go.smelt.dev/smelt/internal/devshell"
	"go.smelt.dev/smelt/internal/recipe"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader    *mocks.MockConfigLoader
	runner    *mocks.MockRunner
	logger    *mocks.MockLogger
	telemetry *mocks.MockTelemetry
	app       *app.App
}

func newFixture(t *testing.T, ctrl *gomock.Controller) *fixture {
	t.Helper()

	loader := mocks.NewMockConfigLoader(ctrl)
	runner := mocks.NewMockRunner(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	telemetry := mocks.NewMockTelemetry(ctrl)

	walker := fs.NewWalker()
	builder := recipe.NewBuilder()
	store, err := manifest.NewStore(filepath.Join(t.TempDir(), "manifests.json"))
	if err != nil {
		t.Fatalf("failed to create manifest store: %v", err)
	}

	a := app.New(
		loader,
		runner,
		logger,
		telemetry,
		builder,
		artifacts.NewGenerator(runner, logger),
		devshell.NewConstructor(builder),
		fs.NewSnapshotter(walker),
		fs.NewHasher(walker),
		store,
	)

	return &fixture{
		loader:    loader,
		runner:    runner,
		logger:    logger,
		telemetry: telemetry,
		app:       a,
	}
}

func testConfig() *domain.Config {
	return &domain.Config{
		PackageName:      "jj",
		Command:          "jj",
		Features:         []string{"packaging"},
		RevisionEnv:      "JJ_GIT_HASH",
		ToolchainCommand: "cargo",
		ExcludeRules:     []string{"^target/"},
		Shells:           []string{"bash"},
	}
}

// completeVertex returns a Record stub handing back a vertex that expects a
// single Complete call with the given error.
func completeVertex(ctrl *gomock.Controller, err error) func(context.Context, string) (context.Context, ports.Vertex) {
	return func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
		vertex := mocks.NewMockVertex(ctrl)
		vertex.EXPECT().Stdout().Return(io.Discard).AnyTimes()
		vertex.EXPECT().Stderr().Return(io.Discard).AnyTimes()
		vertex.EXPECT().Complete(gomock.Eq(err)).Times(1)
		return ctx, vertex
	}
}

func TestApp_Build(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.loader.EXPECT().Load(".").Return(testConfig(), nil)

	dest := t.TempDir()

	// Build and install phases, then the artifacts vertex.
	f.telemetry.EXPECT().Record(gomock.Any(), "build").DoAndReturn(completeVertex(ctrl, nil))
	f.telemetry.EXPECT().Record(gomock.Any(), "install").DoAndReturn(completeVertex(ctrl, nil))
	f.telemetry.EXPECT().Record(gomock.Any(), "artifacts").DoAndReturn(completeVertex(ctrl, nil))

	f.runner.EXPECT().Run(gomock.Any(),
		[]string{"cargo", "build", "--locked", "--release", "--features", "packaging", "--bin", "jj"},
		gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.runner.EXPECT().Run(gomock.Any(),
		[]string{"cargo", "install", "--path", ".", "--locked", "--bin", "jj", "--root", dest},
		gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	binary := filepath.Join(dest, "bin", "jj")
	f.runner.EXPECT().Capture(gomock.Any(), []string{binary, "util", "mangen"}, gomock.Any()).
		Return([]byte("man page"), nil)
	f.runner.EXPECT().Capture(gomock.Any(), []string{binary, "util", "completion", "bash"}, gomock.Any()).
		Return([]byte("completions"), nil)

	err := f.app.Build(context.Background(), app.PipelineOptions{
		Platform: "linux",
		Revision: "abc123",
		Dest:     dest,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dest, "man", "man1", "jj.1"))
	if err != nil {
		t.Fatalf("man page missing: %v", err)
	}
	if string(data) != "man page" {
		t.Errorf("unexpected man page content: %q", data)
	}
}

func TestApp_Build_PhaseFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	f.loader.EXPECT().Load(".").Return(testConfig(), nil)

	buildErr := errors.New("compilation failed")
	f.telemetry.EXPECT().Record(gomock.Any(), "build").DoAndReturn(completeVertex(ctrl, buildErr))
	f.runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(buildErr)

	err := f.app.Build(context.Background(), app.PipelineOptions{Platform: "linux"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "phase failed") {
		t.Errorf("expected phase failure, got: %v", err)
	}
}

func TestApp_Build_ConfigLoaderError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	f.loader.EXPECT().Load(".").Return(nil, errors.New("config load error"))

	err := f.app.Build(context.Background(), app.PipelineOptions{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "failed to load configuration") {
		t.Errorf("expected configuration error, got: %v", err)
	}
}

func TestApp_Build_UnknownPlatform(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	f.loader.EXPECT().Load(".").Return(testConfig(), nil)

	err := f.app.Build(context.Background(), app.PipelineOptions{Platform: "plan9"})
	if err == nil {
		t.Fatal("expected error for unknown platform, got nil")
	}
	if !strings.Contains(err.Error(), "unknown platform") {
		t.Errorf("expected unknown platform error, got: %v", err)
	}
}

func TestApp_Check_SkipsNoOpPhases(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	f.loader.EXPECT().Load(".").Return(testConfig(), nil)

	// The build and install no-ops are logged and skipped; only the check
	// phase reaches the runner and the telemetry.
	f.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Info("skipping phase build").Times(1)
	f.logger.EXPECT().Info("skipping phase install").Times(1)
	f.telemetry.EXPECT().Record(gomock.Any(), "check").DoAndReturn(completeVertex(ctrl, nil))
	f.runner.EXPECT().Run(gomock.Any(),
		[]string{"cargo", "test", "--locked", "--profile", "test"},
		gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	err := f.app.Check(context.Background(), app.PipelineOptions{Platform: "linux"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApp_Check_PhaseOutputRecordedOnVertex(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	f.loader.EXPECT().Load(".").Return(testConfig(), nil)

	// The runner receives the vertex's own stream writers, so whatever the
	// toolchain prints ends up recorded on the phase vertex.
	var stdout, stderr bytes.Buffer
	f.telemetry.EXPECT().Record(gomock.Any(), "check").DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			vertex := mocks.NewMockVertex(ctrl)
			vertex.EXPECT().Stdout().Return(&stdout)
			vertex.EXPECT().Stderr().Return(&stderr)
			vertex.EXPECT().Complete(gomock.Nil()).Times(1)
			return ctx, vertex
		})
	f.runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ []string, _ []string, out, errOut io.Writer) error {
			_, _ = io.WriteString(out, "running 12 tests\n")
			_, _ = io.WriteString(errOut, "warning: slow test\n")
			return nil
		})

	err := f.app.Check(context.Background(), app.PipelineOptions{Platform: "linux", Revision: "abc123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stdout.String() != "running 12 tests\n" {
		t.Errorf("unexpected vertex stdout: %q", stdout.String())
	}
	if stderr.String() != "warning: slow test\n" {
		t.Errorf("unexpected vertex stderr: %q", stderr.String())
	}
}

func TestApp_Shell(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	f.loader.EXPECT().Load(".").Return(testConfig(), nil)

	var out bytes.Buffer
	err := f.app.Shell(context.Background(), app.PipelineOptions{Platform: "linux"}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	script := out.String()
	if !strings.Contains(script, "export RUST_BACKTRACE='1'") {
		t.Errorf("expected backtrace export in script, got: %q", script)
	}
	if !strings.Contains(script, "# requires: mold") {
		t.Errorf("expected mold requirement in script, got: %q", script)
	}
}

func TestApp_Snapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.loader.EXPECT().Load(".").Return(testConfig(), nil)

	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "src"), 0o750); err != nil {
		t.Fatalf("failed to create source dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "src", "main.x"), []byte("fn main() {}"), 0o600); err != nil {
		t.Fatalf("failed to write source file: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(root, "target"), 0o750); err != nil {
		t.Fatalf("failed to create target dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "target", "out.bin"), []byte("binary"), 0o600); err != nil {
		t.Fatalf("failed to write target file: %v", err)
	}

	dest := filepath.Join(t.TempDir(), "snap")
	err := f.app.Snapshot(context.Background(), app.SnapshotOptions{Root: root, Dest: dest})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dest, "src", "main.x")); err != nil {
		t.Errorf("snapshot file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "target")); !os.IsNotExist(err) {
		t.Error("excluded directory should not appear in snapshot")
	}
}

func TestApp_Snapshot_ReportsSourceChanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	var infos []string
	f.logger.EXPECT().Info(gomock.Any()).Do(func(msg string) { infos = append(infos, msg) }).AnyTimes()
	f.loader.EXPECT().Load(".").Return(testConfig(), nil).Times(3)

	root := t.TempDir()
	source := filepath.Join(root, "src", "main.x")
	if err := os.MkdirAll(filepath.Dir(source), 0o750); err != nil {
		t.Fatalf("failed to create source dir: %v", err)
	}
	if err := os.WriteFile(source, []byte("fn main() {}"), 0o600); err != nil {
		t.Fatalf("failed to write source file: %v", err)
	}

	dest := filepath.Join(t.TempDir(), "snap")
	snapshot := func() {
		t.Helper()
		if err := f.app.Snapshot(context.Background(), app.SnapshotOptions{Root: root, Dest: dest}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	logged := func(want string) bool {
		for _, msg := range infos {
			if strings.Contains(msg, want) {
				return true
			}
		}
		return false
	}

	// The first snapshot has no earlier manifest to compare against.
	snapshot()
	if logged("since snapshot of") {
		t.Errorf("unexpected comparison on first snapshot: %q", infos)
	}

	infos = nil
	snapshot()
	if !logged("source unchanged since snapshot of") {
		t.Errorf("expected unchanged report, got: %q", infos)
	}

	if err := os.WriteFile(source, []byte("fn main() { run() }"), 0o600); err != nil {
		t.Fatalf("failed to modify source file: %v", err)
	}
	infos = nil
	snapshot()
	if !logged("source changed since snapshot of") {
		t.Errorf("expected changed report, got: %q", infos)
	}
}

func TestApp_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	f.telemetry.EXPECT().Close().Return(nil)

	if err := f.app.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
