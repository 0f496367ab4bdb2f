package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

const prefix = "cmd"

// Command is a typed request consumed by the viewer controller. UI affordances, the pointer
// input source and the console all emit Commands instead of mutating scene state themselves.
type Command interface {
	Name() string
}

// Select picks whatever lies under the pointer at viewport pixel (X, Y).
type Select struct{ X, Y float32 }

// SetColor recolors the selection. Value is a color name or hex string.
type SetColor struct{ Value string }

// SetTexture applies the loaded texture with the given id to the selection.
type SetTexture struct{ ID string }

// SetParam changes a scalar material parameter of the selection
// ("roughness", "metalness", "envMapIntensity").
type SetParam struct {
	Param string
	Value float32
}

// Resize reports a new viewport size in pixels.
type Resize struct{ Width, Height int }

// PlaceOrder shows the order confirmation.
type PlaceOrder struct{}

// ClearSelection drops the selection and hides the menu.
type ClearSelection struct{}

func (Select) Name() string         { return "select" }
func (SetColor) Name() string       { return "color" }
func (SetTexture) Name() string     { return "texture" }
func (SetParam) Name() string       { return "param" }
func (Resize) Name() string         { return "resize" }
func (PlaceOrder) Name() string     { return "order" }
func (ClearSelection) Name() string { return "clear" }

// Builder turns a parsed FlagSet (and its remaining positional args) into a Command.
type Builder func(fs *flag.FlagSet) (Command, error)

type entry struct {
	name  string
	newFS func() *flag.FlagSet
	build func(*flag.FlagSet) (Command, error)
}

// Registry maps console subcommands to typed commands. Each subcommand gets a fresh
// FlagSet per Execute so flag values never leak between lines.
type Registry struct {
	cmds map[string]*entry
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*entry)}
}

// Register adds a subcommand. define declares its flags on a fresh FlagSet and returns the
// builder that reads them after Parse.
func (r *Registry) Register(name string, define func(fs *flag.FlagSet) Builder) {
	var build Builder
	r.cmds[name] = &entry{
		name: name,
		newFS: func() *flag.FlagSet {
			fs := flag.NewFlagSet(name, flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			build = define(fs)
			return fs
		},
		build: func(fs *flag.FlagSet) (Command, error) { return build(fs) },
	}
}

// Names returns the registered subcommands, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Parse tokenizes a console line. A leading "cmd" word is accepted and dropped.
// Returns nil, false for blank lines.
func Parse(line string) (args []string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) > 0 && fields[0] == prefix {
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return nil, false
	}
	return fields, true
}

// Execute builds the command for subcommand args[0] with args[1:] as flags.
// Returns an error for unknown commands, flag errors, or a builder error.
func (r *Registry) Execute(args []string) (Command, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("missing subcommand")
	}
	name := args[0]
	e, ok := r.cmds[name]
	if !ok {
		return nil, fmt.Errorf("unknown command: %s", name)
	}
	fs := e.newFS()
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, fmt.Errorf("%s: %s", name, usage(fs))
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return e.build(fs)
}

func usage(fs *flag.FlagSet) string {
	var parts []string
	fs.VisitAll(func(f *flag.Flag) {
		parts = append(parts, "--"+f.Name)
	})
	if len(parts) == 0 {
		return "no flags"
	}
	return "flags " + strings.Join(parts, " ")
}

// NewDefaultRegistry registers the viewer's console commands:
//
//	select --x 400 --y 300
//	color --value blue        (or: color blue)
//	texture --id texture1     (or: texture texture1)
//	param --name roughness --value 0.4
//	resize --w 1200 --h 800
//	order
//	clear
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("select", func(fs *flag.FlagSet) Builder {
		x := fs.Float64("x", 0, "pointer x in pixels")
		y := fs.Float64("y", 0, "pointer y in pixels")
		return func(*flag.FlagSet) (Command, error) {
			return Select{X: float32(*x), Y: float32(*y)}, nil
		}
	})
	r.Register("color", func(fs *flag.FlagSet) Builder {
		v := fs.String("value", "", "color name or hex")
		return func(fs *flag.FlagSet) (Command, error) {
			val := firstNonEmpty(*v, fs.Arg(0))
			if val == "" {
				return nil, fmt.Errorf("color: missing --value")
			}
			return SetColor{Value: val}, nil
		}
	})
	r.Register("texture", func(fs *flag.FlagSet) Builder {
		id := fs.String("id", "", "texture id")
		return func(fs *flag.FlagSet) (Command, error) {
			val := firstNonEmpty(*id, fs.Arg(0))
			if val == "" {
				return nil, fmt.Errorf("texture: missing --id")
			}
			return SetTexture{ID: val}, nil
		}
	})
	r.Register("param", func(fs *flag.FlagSet) Builder {
		name := fs.String("name", "", "roughness, metalness or envMapIntensity")
		value := fs.Float64("value", 0, "new value")
		return func(*flag.FlagSet) (Command, error) {
			if *name == "" {
				return nil, fmt.Errorf("param: missing --name")
			}
			return SetParam{Param: *name, Value: float32(*value)}, nil
		}
	})
	r.Register("resize", func(fs *flag.FlagSet) Builder {
		w := fs.Int("w", 0, "width in pixels")
		h := fs.Int("h", 0, "height in pixels")
		return func(*flag.FlagSet) (Command, error) {
			if *w <= 0 || *h <= 0 {
				return nil, fmt.Errorf("resize: --w and --h must be positive")
			}
			return Resize{Width: *w, Height: *h}, nil
		}
	})
	r.Register("order", func(*flag.FlagSet) Builder {
		return func(*flag.FlagSet) (Command, error) { return PlaceOrder{}, nil }
	})
	r.Register("clear", func(*flag.FlagSet) Builder {
		return func(*flag.FlagSet) (Command, error) { return ClearSelection{}, nil }
	})
	return r
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
