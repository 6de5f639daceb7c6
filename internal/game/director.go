// Package game holds the example application driven by the host: a single
// director system that registers sample commands and a debug window.
package game

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"k9console/internal/logger"
	"k9console/internal/shared"
	"k9console/pkg/consoletypes"
)

// DirectorID identifies the GameDirector system.
var DirectorID = uuid.MustParse("6ee51c3f-1e07-40e2-a40d-1f6f16e17a6f")

const (
	manyCommands  = 100
	reportEvery   = 3 * time.Second
	fooWindowName = "foo_window"
)

// Vec3 is the director's shared position.
type Vec3 struct {
	X, Y, Z float64
}

// Director is the example system. Its xyz cell is shared with the foo command
// and the foo window.
type Director struct {
	xyz    *shared.Handle[Vec3]
	rng    *rand.Rand
	timer  time.Time
	owners []*shared.Handle[Vec3]
}

var _ consoletypes.System = (*Director)(nil)

// NewDirector creates a director. A nil rng uses a randomly seeded source for
// the generated command names.
func NewDirector(rng *rand.Rand) *Director {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Director{
		xyz: shared.New(Vec3{}),
		rng: rng,
	}
}

// UUID implements System.UUID
func (d *Director) UUID() uuid.UUID {
	return DirectorID
}

// Name implements System.Name
func (d *Director) Name() string {
	return "GameDirector"
}

// XYZ returns a copy of the shared position.
func (d *Director) XYZ() (Vec3, error) {
	return d.xyz.Load()
}

// OnInit implements System.OnInit
func (d *Director) OnInit(rc *consoletypes.RegistrationContext) error {
	d.timer = rc.Frame.Now

	log := rc.Frame.Logger
	log.Info("have some info")
	log.Log(logger.TraceLevel, "have some trace")
	log.Debug("have some debug")
	log.Warn("have some warn")
	log.Error("have some error")

	xyzSchema := consoletypes.MustParamSchema(
		consoletypes.Required("x", consoletypes.KindFloat),
		consoletypes.Required("y", consoletypes.KindFloat),
		consoletypes.Required("z", consoletypes.KindFloat),
	)
	noop := func(consoletypes.ExecutionContext, consoletypes.TypedArgs) error { return nil }

	rc.Commands.RegisterFunc("foo", "sample foo command",
		consoletypes.MustParamSchema(
			consoletypes.Optional("x", consoletypes.KindFloat),
			consoletypes.Optional("y", consoletypes.KindFloat),
			consoletypes.Optional("z", consoletypes.KindFloat),
		),
		d.fooCommand(d.own()),
	)
	rc.Commands.RegisterFunc("four", "sample four command.", xyzSchema, noop)
	rc.Commands.RegisterFunc("friday", "sample friday command.", xyzSchema, noop)

	for i := 0; i < manyCommands; i++ {
		rc.Commands.RegisterFunc("many_"+d.randomName(), "sample many command.", xyzSchema, noop)
	}

	rc.Windows.Register(fooWindowName, &FooWindow{xyz: d.own()})
	rc.Commands.RegisterFunc(fooWindowName, "foo window command.",
		consoletypes.MustParamSchema(consoletypes.Required("open", consoletypes.KindBool)),
		func(ctx consoletypes.ExecutionContext, args consoletypes.TypedArgs) error {
			ctx.SetOpenDebugWindow(fooWindowName, args.Bool("open"))
			return nil
		},
	)

	return nil
}

// own clones the xyz handle for a new owner, released again in OnExit.
func (d *Director) own() *shared.Handle[Vec3] {
	h := d.xyz.Clone()
	d.owners = append(d.owners, h)
	return h
}

// fooCommand writes the given components into xyz and leaves the others alone.
func (d *Director) fooCommand(xyz *shared.Handle[Vec3]) consoletypes.Handler {
	return func(_ consoletypes.ExecutionContext, args consoletypes.TypedArgs) error {
		return xyz.Write(func(v *Vec3) {
			if x, ok := args.OptFloat("x"); ok {
				v.X = x
			}
			if y, ok := args.OptFloat("y"); ok {
				v.Y = y
			}
			if z, ok := args.OptFloat("z"); ok {
				v.Z = z
			}
		})
	}
}

// randomName returns 5 to 54 lowercase letters.
func (d *Director) randomName() string {
	n := d.rng.IntN(50) + 5
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(byte('a' + d.rng.IntN(26)))
	}
	return b.String()
}

// OnUpdate implements System.OnUpdate
func (d *Director) OnUpdate(fc *consoletypes.FrameContext) {
	// Whole seconds only: 3.9s since the last report is still 3.
	if fc.Now.Sub(d.timer).Truncate(time.Second) <= reportEvery {
		return
	}
	d.timer = fc.Now

	if v, err := d.xyz.Load(); err == nil {
		fc.Logger.Debug("xyz", "x", v.X, "y", v.Y, "z", v.Z)
	}
}

// OnExit implements System.OnExit
func (d *Director) OnExit(fc *consoletypes.FrameContext) {
	for _, h := range d.owners {
		h.Release()
	}
	d.owners = nil
	d.xyz.Release()
	fc.Logger.Debug("Director exited", "frame", fc.Frame)
}
