// Package consoletypes defines the contracts shared between the developer console,
// the debug window registry, the host frame loop and user systems.
//
// The package holds data and interfaces only; registries, parsing and dispatch
// live under internal/. User code depends on this package to declare commands
// and windows without knowing how or when they are invoked.
//
// # Package Organization
//
// ## Values and Schemas (kind.go, schema.go, args.go)
//
//   - Kind: the scalar kinds a parameter can take (int, float, bool, string)
//   - Value: a tagged union holding one scalar of a given Kind
//   - Param, ParamSchema: the ordered parameter list of one command
//   - TypedArgs: the per-invocation mapping from parameter name to value
//
// ## Commands (command_types.go)
//
//   - Handler: the function run for a successfully parsed invocation
//   - CommandEntry: description, schema and handler of one command
//   - ExecutionContext: the capability object passed to a handler
//   - CommandRegistrar: write access to the command registry at init time
//
// ## Debug Windows (window_types.go)
//
//   - Drawable: a panel that can draw itself onto a Surface
//   - Surface: the opaque drawing target owned by the UI backend
//   - WindowRegistrar: write access to the window registry at init time
//
// ## Lifecycle (system_types.go)
//
//   - System: user code driven by the host (OnInit, OnUpdate, OnExit)
//   - RegistrationContext: handed to OnInit, grants registry write access
//   - FrameContext: handed to OnUpdate and OnExit, grants frame timing only
//
// ## Errors (errors.go)
//
// Every error returned by lookup, parsing or dispatch is one of the typed errors
// in errors.go and can be matched with errors.Is against the Err* sentinels.
//
// # Usage
//
// A system registers a command and a window during OnInit:
//
//	schema := consoletypes.MustParamSchema(
//		consoletypes.Optional("x", consoletypes.KindFloat),
//		consoletypes.Optional("y", consoletypes.KindFloat),
//	)
//	rc.Commands.RegisterFunc("move", "move the sensor", schema,
//		func(ctx consoletypes.ExecutionContext, args consoletypes.TypedArgs) error {
//			if x, ok := args.OptFloat("x"); ok {
//				sensor.X = x
//			}
//			return nil
//		})
//	rc.Windows.Register("sensor_window", sensorWindow{})
package consoletypes
