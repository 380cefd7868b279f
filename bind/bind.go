// Package bind maps options parsed by the getopt scanner onto typed
// destination variables and callbacks registered at runtime.
//
// A Set is a table of (short name, long name, value kind, setter) entries
// built through ordinary registration calls. Parse drives a getopt.State
// over the table and coerces each option's text through a per-kind
// conversion registry, so callers get filled-in variables instead of a
// result loop.
package bind

import (
	"fmt"
	"strconv"

	"github.com/optscan/getopt"
)

type BindErr string

const (
	// ErrOutOfBounds reports that a repeating option exceeded its
	// destination's declared capacity.
	ErrOutOfBounds = BindErr("destination storage exhausted")
)

func (e BindErr) Error() string {
	return string(e)
}

// Kind enumerates how an option's value text is interpreted.
type Kind int

const (
	FlagKind    Kind = iota // boolean presence flag
	CounterKind             // increments per occurrence
	StringKind
	IntKind
	Float64Kind
	FuncKind // raw text handed to a callback
)

// Conv converts option value text into a typed value. The conversion used
// for an option is looked up by its Kind at parse time.
type Conv func(text string) (any, error)

// Option is one registered entry. The registration methods on Set return
// it so modifiers like Optional can be chained.
type Option struct {
	Short rune
	Long  string
	Kind  Kind

	hasArg getopt.HasArg
	assign func(v any) error
	fn     func(text string) error
	seen   int
}

// Optional marks the option's value as optional: a value is consumed only
// when attached to the option itself (-ovalue, --opt=value). When absent,
// the destination keeps its previous value.
func (o *Option) Optional() *Option {
	if o.hasArg == getopt.RequiredArgument {
		o.hasArg = getopt.OptionalArgument
	}
	return o
}

// Seen returns how many times the option appeared in the last Parse.
func (o *Option) Seen() int { return o.seen }

// Set is a runtime registration table of options.
type Set struct {
	opts  []*Option
	convs map[Kind]Conv
	args  []string
}

func New() *Set {
	return &Set{
		convs: map[Kind]Conv{
			FlagKind:    func(string) (any, error) { return true, nil },
			StringKind:  func(text string) (any, error) { return text, nil },
			IntKind:     func(text string) (any, error) { return strconv.Atoi(text) },
			Float64Kind: func(text string) (any, error) { return strconv.ParseFloat(text, 64) },
		},
	}
}

// RegisterConv replaces the conversion used for options of kind k.
func (s *Set) RegisterConv(k Kind, c Conv) {
	s.convs[k] = c
}

func (s *Set) add(o *Option) *Option {
	s.opts = append(s.opts, o)
	return o
}

// BoolVar registers a presence flag stored through p.
func (s *Set) BoolVar(p *bool, short rune, long string) *Option {
	return s.add(&Option{
		Short: short, Long: long, Kind: FlagKind,
		hasArg: getopt.NoArgument,
		assign: func(v any) error { *p = v.(bool); return nil },
	})
}

// Bool registers a presence flag and returns its destination.
func (s *Set) Bool(short rune, long string) *bool {
	p := new(bool)
	s.BoolVar(p, short, long)
	return p
}

// CounterVar registers an option that increments *p on each occurrence.
func (s *Set) CounterVar(p *int, short rune, long string) *Option {
	return s.add(&Option{
		Short: short, Long: long, Kind: CounterKind,
		hasArg: getopt.NoArgument,
		assign: func(any) error { *p++; return nil },
	})
}

// StringVar registers a string-valued option stored through p.
func (s *Set) StringVar(p *string, short rune, long string) *Option {
	return s.add(&Option{
		Short: short, Long: long, Kind: StringKind,
		hasArg: getopt.RequiredArgument,
		assign: func(v any) error { *p = v.(string); return nil },
	})
}

// String registers a string-valued option with a default and returns its
// destination.
func (s *Set) String(short rune, long string, def string) *string {
	p := new(string)
	*p = def
	s.StringVar(p, short, long)
	return p
}

// IntVar registers an integer-valued option stored through p.
func (s *Set) IntVar(p *int, short rune, long string) *Option {
	return s.add(&Option{
		Short: short, Long: long, Kind: IntKind,
		hasArg: getopt.RequiredArgument,
		assign: func(v any) error { *p = v.(int); return nil },
	})
}

// Int registers an integer-valued option with a default and returns its
// destination.
func (s *Set) Int(short rune, long string, def int) *int {
	p := new(int)
	*p = def
	s.IntVar(p, short, long)
	return p
}

// Float64Var registers a float-valued option stored through p.
func (s *Set) Float64Var(p *float64, short rune, long string) *Option {
	return s.add(&Option{
		Short: short, Long: long, Kind: Float64Kind,
		hasArg: getopt.RequiredArgument,
		assign: func(v any) error { *p = v.(float64); return nil },
	})
}

// StringsVar registers a repeating string option appended to *p. max bounds
// the total number of values; parsing fails with ErrOutOfBounds once the
// destination is full.
func (s *Set) StringsVar(p *[]string, max int, short rune, long string) *Option {
	return s.add(&Option{
		Short: short, Long: long, Kind: StringKind,
		hasArg: getopt.RequiredArgument,
		assign: func(v any) error {
			if len(*p) >= max {
				return ErrOutOfBounds
			}
			*p = append(*p, v.(string))
			return nil
		},
	})
}

// Func registers a callback invoked with the option's raw value text.
func (s *Set) Func(short rune, long string, hasArg getopt.HasArg, fn func(text string) error) *Option {
	return s.add(&Option{
		Short: short, Long: long, Kind: FuncKind,
		hasArg: hasArg,
		fn:     fn,
	})
}

func (s *Set) config() getopt.Config {
	c := getopt.Config{Func: getopt.FuncGetOptLong, Mode: getopt.ModeGNU}
	for _, o := range s.opts {
		if o.Short != 0 {
			c.Opts = append(c.Opts, getopt.Opt{Char: o.Short, HasArg: o.hasArg})
		}
		if o.Long != "" {
			c.LongOpts = append(c.LongOpts, getopt.LongOpt{Name: o.Long, HasArg: o.hasArg})
		}
	}
	return c
}

func (s *Set) lookup(res getopt.Result) *Option {
	for _, o := range s.opts {
		if res.Name != "" && o.Long == res.Name {
			return o
		}
		if res.Name == "" && res.Char != 0 && o.Short == res.Char {
			return o
		}
	}
	return nil
}

// Parse scans args (args[0] is the program name), filling in every
// registered destination. It stops at the first error. The operands,
// permuted to the tail of args, are available from Args afterwards.
func (s *Set) Parse(args []string) error {
	for _, o := range s.opts {
		o.seen = 0
	}
	c := s.config()
	st := getopt.NewState(args)

	for res, err := range st.All(c) {
		if err != nil {
			if res.Name != "" {
				return fmt.Errorf("option --%s: %w", res.Name, err)
			}
			return fmt.Errorf("option -%c: %w", res.Char, err)
		}
		o := s.lookup(res)
		if o == nil {
			return fmt.Errorf("option %+v: %w", res, getopt.ErrUnknownOpt)
		}
		o.seen++
		if err := s.apply(o, res); err != nil {
			return err
		}
	}

	s.args = st.Args()[st.OptInd():]
	return nil
}

func (s *Set) apply(o *Option, res getopt.Result) error {
	if o.Kind == FuncKind {
		if err := o.fn(res.OptArg); err != nil {
			return fmt.Errorf("option %s: %w", o.name(), err)
		}
		return nil
	}
	if o.hasArg == getopt.OptionalArgument && res.OptArg == "" {
		return nil
	}
	if o.Kind == CounterKind {
		return o.assign(nil)
	}
	conv, ok := s.convs[o.Kind]
	if !ok {
		return fmt.Errorf("option %s: no conversion registered for kind %d", o.name(), o.Kind)
	}
	v, err := conv(res.OptArg)
	if err != nil {
		return fmt.Errorf("option %s: invalid value %q: %w", o.name(), res.OptArg, err)
	}
	if err := o.assign(v); err != nil {
		return fmt.Errorf("option %s: %w", o.name(), err)
	}
	return nil
}

func (o *Option) name() string {
	if o.Long != "" {
		return "--" + o.Long
	}
	return "-" + string(o.Short)
}

// Args returns the operands left after the last Parse, in their original
// relative order.
func (s *Set) Args() []string { return s.args }
