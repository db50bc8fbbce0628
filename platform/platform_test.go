// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cogentcore.org/launch/base/errors"
	"cogentcore.org/launch/base/exec"
	"cogentcore.org/launch/telemetry"
	"cogentcore.org/launch/verify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProcess delivers buffered lines and exits with err.
type fakeProcess struct {
	lines    chan string
	err      error
	detached bool
}

func (p *fakeProcess) Lines() <-chan string { return p.lines }
func (p *fakeProcess) Wait() error          { return p.err }
func (p *fakeProcess) Detach()              { p.detached = true }

// fakeSpawner records what it is asked to spawn.
type fakeSpawner struct {
	lines    []string
	exitErr  error
	startErr error
	hang     bool

	calls   int
	verb    string
	args    []string
	env     map[string]string
	process *fakeProcess
}

func (s *fakeSpawner) Spawn(ctx context.Context, verb string, args []string, env map[string]string) (Process, error) {
	s.calls++
	s.verb, s.args, s.env = verb, args, env
	if s.startErr != nil {
		return nil, s.startErr
	}
	p := &fakeProcess{lines: make(chan string, len(s.lines)), err: s.exitErr}
	for _, ln := range s.lines {
		p.lines <- ln
	}
	if !s.hang {
		close(p.lines)
	}
	s.process = p
	return p, nil
}

type testRun struct {
	platform *Platform
	spawner  *fakeSpawner
	states   []State
}

func newTestRun(t *testing.T, opts RunOptions, sp *fakeSpawner) *testRun {
	tr := &testRun{spawner: sp}
	p, err := New(opts, Deps{
		Spawner:    sp,
		ProcessEnv: func() []string { return []string{"HOME=/home/test"} },
		OnState:    func(s State) { tr.states = append(tr.states, s) },
	})
	require.NoError(t, err)
	tr.platform = p
	return tr
}

func macOSOptions() RunOptions {
	return RunOptions{
		Platform: MacOS,
		Target:   SimulatorTarget,
		Versions: Versions{Framework: "0.53.0", Platform: "0.53.0"},
	}
}

func TestRunAppLaunchingApp(t *testing.T) {
	tr := newTestRun(t, macOSOptions(), &fakeSpawner{lines: []string{"info Building", "Launching app"}})
	require.NoError(t, tr.platform.RunApp(context.Background()))

	assert.Equal(t, "run-macos", tr.spawner.verb)
	assert.Equal(t, []string{"--no-packager"}, tr.spawner.args)
	assert.Equal(t, map[string]string{"HOME": "/home/test"}, tr.spawner.env)
	assert.Equal(t, []State{Spawning, Observing, Succeeded}, tr.states)
	assert.True(t, tr.spawner.process.detached)
}

func TestRunAppPluginNotInstalled(t *testing.T) {
	tr := newTestRun(t, macOSOptions(), &fakeSpawner{lines: []string{"error Unrecognized command 'run-macos'", "Launching app"}})
	err := tr.platform.RunApp(context.Background())
	code, ok := verify.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, verify.PlatformPluginNotInstalled, code)
	assert.Equal(t, []State{Spawning, Observing, Failed}, tr.states)
}

func TestRunAppSuccessBeforeErrorExit(t *testing.T) {
	tr := newTestRun(t, macOSOptions(), &fakeSpawner{lines: []string{"Launching app"}, exitErr: fmt.Errorf("exit status 1")})
	assert.NoError(t, tr.platform.RunApp(context.Background()))
}

func TestRunAppCleanExitNoMatch(t *testing.T) {
	tr := newTestRun(t, macOSOptions(), &fakeSpawner{lines: []string{"some output"}})
	assert.NoError(t, tr.platform.RunApp(context.Background()))
	assert.Equal(t, []State{Spawning, Observing, Succeeded}, tr.states)
}

func TestRunAppErrorExitNoMatch(t *testing.T) {
	exitErr := fmt.Errorf("exit status 1")
	tr := newTestRun(t, macOSOptions(), &fakeSpawner{lines: []string{"some output"}, exitErr: exitErr})
	err := tr.platform.RunApp(context.Background())
	code, ok := verify.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, verify.UnrecognizedFailure, code)
	assert.ErrorIs(t, err, exitErr)
	assert.Equal(t, []State{Spawning, Observing, Failed}, tr.states)
}

func TestRunAppStartFailure(t *testing.T) {
	startErr := errors.New("executable file not found in $PATH")
	tr := newTestRun(t, macOSOptions(), &fakeSpawner{startErr: startErr})
	err := tr.platform.RunApp(context.Background())
	assert.Equal(t, startErr, err)
	assert.Equal(t, []State{Spawning, Failed}, tr.states)
}

func TestRunAppEnvFailure(t *testing.T) {
	opts := macOSOptions()
	opts.ProjectPath = t.TempDir()
	opts.EnvFile = "missing.env"
	tr := newTestRun(t, opts, &fakeSpawner{})
	err := tr.platform.RunApp(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, 0, tr.spawner.calls)
	assert.Equal(t, []State{Failed}, tr.states)
}

func TestRunAppEnvironment(t *testing.T) {
	opts := macOSOptions()
	opts.ProjectPath = t.TempDir()
	opts.EnvFile = ".env"
	opts.Env = map[string]string{"API_URL": "inline"}
	require.NoError(t, os.WriteFile(filepath.Join(opts.ProjectPath, ".env"), []byte("API_URL=file\nHOME=/from/file\nMODE=dev\n"), 0666))

	tr := newTestRun(t, opts, &fakeSpawner{})
	require.NoError(t, tr.platform.RunApp(context.Background()))
	assert.Equal(t, map[string]string{"API_URL": "inline", "HOME": "/from/file", "MODE": "dev"}, tr.spawner.env)
}

func TestRunAppTimeout(t *testing.T) {
	opts := macOSOptions()
	opts.Timeout = 20 * time.Millisecond
	tr := newTestRun(t, opts, &fakeSpawner{hang: true})
	err := tr.platform.RunApp(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, []State{Spawning, Observing, Failed}, tr.states)
}

func TestLaunchArguments(t *testing.T) {
	opts := RunOptions{Platform: MacOS, Target: "MyDevice", Versions: Versions{Framework: "0.52.2"}}
	tr := newTestRun(t, opts, &fakeSpawner{})
	assert.Equal(t, []string{"--MyDevice"}, tr.platform.LaunchArguments())

	opts.Versions.Framework = "custom-build"
	tr = newTestRun(t, opts, &fakeSpawner{})
	assert.Equal(t, []string{"--no-packager", "--MyDevice"}, tr.platform.LaunchArguments())

	opts.RunArguments = []string{"--foo", "--no-packager"}
	tr = newTestRun(t, opts, &fakeSpawner{})
	assert.Equal(t, []string{"--foo", "--no-packager"}, tr.platform.LaunchArguments())
	assert.Equal(t, tr.platform.LaunchArguments(), tr.platform.LaunchArguments())
}

func TestRunArgumentsIdempotent(t *testing.T) {
	tr := newTestRun(t, RunOptions{Platform: IOS, Target: "iPhone 15"}, &fakeSpawner{})
	a := tr.platform.RunArguments()
	a[0] = "--changed"
	assert.Equal(t, []string{"--simulator", "iPhone 15"}, tr.platform.RunArguments())
	assert.Equal(t, tr.platform.RunArguments(), tr.platform.RunArguments())
}

func TestRunAppTwice(t *testing.T) {
	sp := &fakeSpawner{lines: []string{"Launching app"}}
	tr := newTestRun(t, macOSOptions(), sp)
	require.NoError(t, tr.platform.RunApp(context.Background()))
	require.NoError(t, tr.platform.RunApp(context.Background()))
	assert.Equal(t, []string{"--no-packager"}, sp.args)
}

func TestRunAppAndroid(t *testing.T) {
	opts := RunOptions{Platform: Android, Target: "emulator-5554", Versions: Versions{Framework: "0.41.0"}}
	tr := newTestRun(t, opts, &fakeSpawner{lines: []string{"error: more than one device/emulator"}, exitErr: fmt.Errorf("exit status 1")})
	err := tr.platform.RunApp(context.Background())
	code, _ := verify.CodeOf(err)
	assert.Equal(t, verify.AndroidMoreThanOneDevice, code)
	assert.Equal(t, "run-android", tr.spawner.verb)
	assert.Equal(t, []string{"--deviceId", "emulator-5554"}, tr.spawner.args)
}

type spanRecord struct {
	name  string
	props telemetry.Properties
	err   error
}

type testRecorder struct {
	spans []*spanRecord
}

func (r *testRecorder) Start(ctx context.Context, name string, props telemetry.Properties) (context.Context, telemetry.Span) {
	s := &spanRecord{name: name, props: props}
	r.spans = append(r.spans, s)
	return ctx, s
}

func (s *spanRecord) End(err error) { s.err = err }

func TestRunAppTelemetry(t *testing.T) {
	rec := &testRecorder{}
	sp := &fakeSpawner{lines: []string{"Unrecognized command 'run-macos'"}}
	opts := macOSOptions()
	opts.Versions = Versions{Framework: "0.73.0", Platform: "0.73.4"}
	p, err := New(opts, Deps{Spawner: sp, Recorder: rec})
	require.NoError(t, err)

	err = p.RunApp(context.Background())
	require.Len(t, rec.spans, 1)
	s := rec.spans[0]
	assert.Equal(t, "macOSPlatform.runApp", s.name)
	assert.Equal(t, err, s.err)
	assert.Equal(t, map[string]any{
		"platform":                "macos",
		"reactNativeVersion":      "0.73.0",
		"reactNativemacOSVersion": "0.73.4",
	}, s.props.Public())
}

func TestPrewarmBundleCache(t *testing.T) {
	pk := &recordingPackager{}
	p, err := New(RunOptions{Platform: Windows}, Deps{Spawner: &fakeSpawner{}, Packager: pk})
	require.NoError(t, err)
	require.NoError(t, p.PrewarmBundleCache(context.Background()))
	assert.Equal(t, []PlatformType{Windows}, pk.platforms)

	p, err = New(RunOptions{Platform: Windows}, Deps{Spawner: &fakeSpawner{}})
	require.NoError(t, err)
	assert.NoError(t, p.PrewarmBundleCache(context.Background()))
}

type recordingPackager struct {
	platforms []PlatformType
}

func (p *recordingPackager) PrewarmBundleCache(ctx context.Context, platform PlatformType) error {
	p.platforms = append(p.platforms, platform)
	return nil
}

func TestNewUnsupported(t *testing.T) {
	_, err := New(RunOptions{Platform: "tvos"}, Deps{})
	assert.Error(t, err)
}

// shellSpawner returns a spawner running the given shell script
// in place of the framework CLI; the verb is passed as $0.
func shellSpawner(t *testing.T, script string) *CommandSpawner {
	return &CommandSpawner{
		Command: []string{"sh", "-c", script},
		Dir:     t.TempDir(),
		Exec:    exec.Silent(),
	}
}

func TestRunAppCommandSpawner(t *testing.T) {
	sp := shellSpawner(t, `echo "invoked $0 $@"; echo "mode $LAUNCH_MODE"; echo "Launching app"`)
	opts := macOSOptions()
	opts.Env = map[string]string{"LAUNCH_MODE": "test"}
	p, err := New(opts, Deps{Spawner: sp})
	require.NoError(t, err)
	assert.NoError(t, p.RunApp(context.Background()))
}

func TestRunAppCommandSpawnerPluginNotInstalled(t *testing.T) {
	sp := shellSpawner(t, `echo "error Unrecognized command '$0'"; exit 0`)
	p, err := New(macOSOptions(), Deps{Spawner: sp})
	require.NoError(t, err)
	code, ok := verify.CodeOf(p.RunApp(context.Background()))
	assert.True(t, ok)
	assert.Equal(t, verify.PlatformPluginNotInstalled, code)
}

func TestRunAppCommandSpawnerExitCode(t *testing.T) {
	sp := shellSpawner(t, `echo "something went wrong"; exit 3`)
	p, err := New(macOSOptions(), Deps{Spawner: sp})
	require.NoError(t, err)
	err = p.RunApp(context.Background())
	code, _ := verify.CodeOf(err)
	assert.Equal(t, verify.UnrecognizedFailure, code)
	assert.Equal(t, 3, exec.ExitStatus(err))
}

func TestRunAppCommandSpawnerBackgroundChild(t *testing.T) {
	sp := shellSpawner(t, `sleep 30 & echo "starting the packager"; exit 0`)
	p, err := New(macOSOptions(), Deps{Spawner: sp})
	require.NoError(t, err)
	start := time.Now()
	assert.NoError(t, p.RunApp(context.Background()))
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestRunAppCommandSpawnerProcessEnv(t *testing.T) {
	t.Setenv("LAUNCH_INHERITED", "yes")
	sp := shellSpawner(t, `[ -z "$LAUNCH_INHERITED" ] && [ "$LAUNCH_MODE" = test ] && echo "Launching app"; exit 1`)
	opts := macOSOptions()
	opts.Env = map[string]string{"LAUNCH_MODE": "test"}
	p, err := New(opts, Deps{
		Spawner:    sp,
		ProcessEnv: func() []string { return []string{"PATH=" + os.Getenv("PATH")} },
	})
	require.NoError(t, err)
	assert.NoError(t, p.RunApp(context.Background()))

	p, err = New(opts, Deps{Spawner: sp})
	require.NoError(t, err)
	code, _ := verify.CodeOf(p.RunApp(context.Background()))
	assert.Equal(t, verify.UnrecognizedFailure, code)
}

func TestRunAppCommandSpawnerNotFound(t *testing.T) {
	sp := &CommandSpawner{Command: []string{"this-command-does-not-exist-anywhere"}, Exec: exec.Silent()}
	p, err := New(macOSOptions(), Deps{Spawner: sp})
	require.NoError(t, err)
	err = p.RunApp(context.Background())
	assert.ErrorIs(t, err, exec.ErrNotFound)
	assert.ErrorContains(t, err, "framework CLI")
	_, ok := verify.CodeOf(err)
	assert.False(t, ok)
}

func TestNewCommandSpawner(t *testing.T) {
	sp, err := NewCommandSpawner("/project", `npx "react-native"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"npx", "react-native"}, sp.Command)
	assert.Equal(t, "/project", sp.Dir)

	_, err = NewCommandSpawner("/project", "")
	assert.Error(t, err)
}
