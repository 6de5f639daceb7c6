package console

import (
	"strings"

	"k9console/pkg/consoletypes"
)

// RegisterBuiltins registers the commands every console carries: help,
// windows, toggle_window, history and echo. Systems may override any of them
// by registering the same name later.
func (c *Console) RegisterBuiltins() {
	c.commands.RegisterFunc("help",
		"List commands, or show the usage of one command.",
		consoletypes.MustParamSchema(
			consoletypes.Optional("command", consoletypes.KindString).Describe("Command to describe"),
		),
		c.helpCommand,
	)

	c.commands.RegisterFunc("windows",
		"List debug windows and whether they are open.",
		consoletypes.ParamSchema{},
		c.windowsCommand,
	)

	c.commands.RegisterFunc("toggle_window",
		"Open or close a debug window. Without open, flips its state.",
		consoletypes.MustParamSchema(
			consoletypes.Required("name", consoletypes.KindString).Describe("Window name"),
			consoletypes.Optional("open", consoletypes.KindBool).Describe("New open state"),
		),
		c.toggleWindowCommand,
	)

	c.commands.RegisterFunc("history",
		"Show the lines entered this session.",
		consoletypes.ParamSchema{},
		c.historyCommand,
	)

	c.commands.RegisterFunc("echo",
		"Print text to the console.",
		consoletypes.MustParamSchema(
			consoletypes.Required("text", consoletypes.KindString).Describe("Text to print"),
		),
		func(ctx consoletypes.ExecutionContext, args consoletypes.TypedArgs) error {
			ctx.Printf("%s", args.Str("text"))
			return nil
		},
	)
}

func (c *Console) windowsCommand(ctx consoletypes.ExecutionContext, _ consoletypes.TypedArgs) error {
	names := c.windows.Names()
	if len(names) == 0 {
		ctx.Printf("No debug windows registered.")
		return nil
	}
	for _, name := range names {
		state := "closed"
		if c.windows.IsOpen(name) {
			state = "open"
		}
		ctx.Printf("  %-24s %s", name, state)
	}
	return nil
}

func (c *Console) toggleWindowCommand(ctx consoletypes.ExecutionContext, args consoletypes.TypedArgs) error {
	name := args.Str("name")
	if !c.windows.Has(name) {
		return consoletypes.NewHandlerError("unknown window: %s", name)
	}

	open, given := args.OptBool("open")
	if given {
		ctx.SetOpenDebugWindow(name, open)
	} else {
		open = c.windows.Toggle(name)
	}
	if open {
		ctx.Printf("%s opened", name)
	} else {
		ctx.Printf("%s closed", name)
	}
	return nil
}

func (c *Console) historyCommand(ctx consoletypes.ExecutionContext, _ consoletypes.TypedArgs) error {
	for i, line := range c.History() {
		ctx.Printf("%4d  %s", i+1, line)
	}
	return nil
}

func (c *Console) helpCommand(ctx consoletypes.ExecutionContext, args consoletypes.TypedArgs) error {
	if name, given := args.OptString("command"); given {
		entry, exists := c.commands.Get(name)
		if !exists {
			return consoletypes.NewHandlerError("no command named %s, type help to list commands", name)
		}
		ctx.Printf("%s", c.renderHelp(name, entry))
		return nil
	}

	names := c.commands.Names()
	width := 0
	for _, name := range names {
		if len(name) > width {
			width = len(name)
		}
	}

	ctx.Printf("Available commands:")
	for _, name := range names {
		entry, _ := c.commands.Get(name)
		ctx.Printf("  %-*s  %s", width, name, strings.TrimSpace(entry.Description))
	}
	ctx.Printf("Type help command=<name> for usage.")
	return nil
}
