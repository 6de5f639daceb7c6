package game

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"k9console/internal/console"
	"k9console/internal/logger"
	"k9console/internal/testutils"
	"k9console/pkg/consoletypes"
)

type fixture struct {
	director *Director
	console  *console.Console
	logs     *bytes.Buffer
	log      *log.Logger
	start    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	var logs bytes.Buffer
	l := log.New(&logs)
	l.SetLevel(logger.TraceLevel)

	f := &fixture{
		director: NewDirector(testutils.SeededRand(42)),
		console:  console.New(console.Options{Output: &bytes.Buffer{}}),
		logs:     &logs,
		log:      l,
		start:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, f.director.OnInit(&consoletypes.RegistrationContext{
		Commands: f.console.Commands(),
		Windows:  f.console.Windows(),
		Frame:    &consoletypes.FrameContext{Now: f.start, Logger: l},
	}))
	return f
}

func (f *fixture) frame(n uint64, at time.Duration) *consoletypes.FrameContext {
	return &consoletypes.FrameContext{Frame: n, Elapsed: at, Now: f.start.Add(at), Logger: f.log}
}

func TestDirector_Identity(t *testing.T) {
	d := NewDirector(nil)
	assert.Equal(t, "6ee51c3f-1e07-40e2-a40d-1f6f16e17a6f", d.UUID().String())
	assert.Equal(t, "GameDirector", d.Name())
}

func TestDirector_InitLogsEveryLevel(t *testing.T) {
	f := newFixture(t)
	out := f.logs.String()
	for _, msg := range []string{"have some info", "have some trace", "have some debug", "have some warn", "have some error"} {
		assert.Contains(t, out, msg)
	}
}

func TestDirector_RegistersCommands(t *testing.T) {
	f := newFixture(t)
	commands := f.console.Commands()

	for _, name := range []string{"foo", "four", "friday", "foo_window"} {
		assert.True(t, commands.Has(name), name)
	}

	var many []string
	for _, name := range commands.Names() {
		if strings.HasPrefix(name, "many_") {
			many = append(many, name)
			suffix := strings.TrimPrefix(name, "many_")
			assert.GreaterOrEqual(t, len(suffix), 5)
			assert.LessOrEqual(t, len(suffix), 54)
			assert.Equal(t, strings.Trim(suffix, "abcdefghijklmnopqrstuvwxyz"), "", name)
		}
	}
	assert.Len(t, many, 100)

	for _, name := range many {
		require.NoError(t, f.console.Execute(name+" 1 2 3"), name)
	}
	assert.ErrorIs(t, f.console.Execute(many[0]+" 1 2"), consoletypes.ErrMissingRequiredArgument)
}

func TestDirector_FooWritesGivenComponents(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		line     string
		expected Vec3
	}{
		{"foo", Vec3{}},
		{"foo x=1.5", Vec3{X: 1.5}},
		{"foo z=3", Vec3{X: 1.5, Z: 3}},
		{"foo 7 8", Vec3{X: 7, Y: 8, Z: 3}},
		{"foo y=-1 x=0", Vec3{X: 0, Y: -1, Z: 3}},
	}

	for _, tt := range tests {
		require.NoError(t, f.console.Execute(tt.line), tt.line)
		got, err := f.director.XYZ()
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got, tt.line)
	}

	assert.ErrorIs(t, f.console.Execute("foo x=abc"), consoletypes.ErrTypeMismatch)
}

func TestDirector_FooWindow(t *testing.T) {
	f := newFixture(t)
	windows := f.console.Windows()
	surface := testutils.NewRecordingSurface()

	assert.False(t, windows.IsOpen("foo_window"))

	require.NoError(t, f.console.Execute("foo_window true"))
	assert.True(t, windows.IsOpen("foo_window"))

	require.NoError(t, f.console.Execute("foo x=1 y=2 z=3"))
	require.True(t, windows.Draw("foo_window", surface))
	assert.Equal(t, []string{
		"hello from foo window",
		"---",
		"x: 1",
		"y: 2",
		"z: 3",
	}, surface.Lines())

	require.NoError(t, f.console.Execute("foo_window open=false"))
	assert.False(t, windows.IsOpen("foo_window"))
	assert.ErrorIs(t, f.console.Execute("foo_window"), consoletypes.ErrMissingRequiredArgument)
}

func TestDirector_UpdateReportsAfterThreeWholeSeconds(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.console.Execute("foo x=4"))
	f.logs.Reset()

	f.director.OnUpdate(f.frame(1, time.Second))
	f.director.OnUpdate(f.frame(2, 3*time.Second))
	assert.Empty(t, f.logs.String())

	f.director.OnUpdate(f.frame(3, 3*time.Second+500*time.Millisecond))
	f.director.OnUpdate(f.frame(4, 4*time.Second-time.Millisecond))
	assert.Empty(t, f.logs.String(), "elapsed time counts in whole seconds")

	f.director.OnUpdate(f.frame(5, 4*time.Second))
	assert.Equal(t, 1, strings.Count(f.logs.String(), "xyz"))
	assert.Contains(t, f.logs.String(), "x=4")

	f.director.OnUpdate(f.frame(6, 7*time.Second))
	assert.Equal(t, 1, strings.Count(f.logs.String(), "xyz"), "timer was reset")

	f.director.OnUpdate(f.frame(7, 8*time.Second))
	assert.Equal(t, 2, strings.Count(f.logs.String(), "xyz"))
}

func TestDirector_ExitReleasesState(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, 3, f.director.xyz.Refs())

	f.director.OnExit(f.frame(10, time.Minute))

	_, err := f.director.XYZ()
	assert.Error(t, err)
	assert.Error(t, f.console.Execute("foo x=1"), "handlers fail once state is dropped")
}
