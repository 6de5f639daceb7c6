// Package consoletypes defines the host lifecycle contract.
// This file contains the System interface implemented by user code and the
// contexts the host passes to each lifecycle call.
package consoletypes

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// System is user code driven by the host frame loop. The host guarantees the
// order OnInit once, OnUpdate any number of times, OnExit once, and never runs
// two calls at the same time.
type System interface {
	// UUID identifies the system; the host rejects duplicates.
	UUID() uuid.UUID
	// Name is a human label used in logs.
	Name() string
	// OnInit runs once before the first frame. Commands and windows are registered here.
	OnInit(rc *RegistrationContext) error
	// OnUpdate runs once per frame after queued console commands were executed.
	OnUpdate(fc *FrameContext)
	// OnExit runs once at shutdown.
	OnExit(fc *FrameContext)
}

// RegistrationContext grants write access to both registries during OnInit.
type RegistrationContext struct {
	Commands CommandRegistrar
	Windows  WindowRegistrar
	Frame    *FrameContext
}

// FrameContext carries per-frame state. It grants no access to the registries.
type FrameContext struct {
	Frame   uint64        // Frame number, 0 during OnInit
	Delta   time.Duration // Time since the previous frame
	Elapsed time.Duration // Time since the host started
	Now     time.Time     // Wall clock at frame start
	Logger  *log.Logger   // Logger scoped to the running system
}
