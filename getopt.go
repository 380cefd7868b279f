// Package getopt provides a Go implementation of the Unix `getopt` family of
// functions for parsing command-line options.
//
// This package scans command-line arguments using the POSIX convention,
// supporting short options (e.g., -a), option groups (-abc), and arguments
// for these options. It also supports the GNU extensions: long options
// (e.g., --option) with unambiguous abbreviation, optional option arguments,
// argument permutation, and the `-W longname` escape.
//
// Unlike the C original, all parser state lives in an explicit State value,
// so independent parses never interfere and no global reset is needed.
package getopt

import (
	"slices"
	"strings"
	"unicode"
)

type GetOptErr string

// Errors that can be returned by GetOpt.
const (
	ErrDone          = GetOptErr("done")
	ErrUnknownOpt    = GetOptErr("unknown option")
	ErrMissingOptArg = GetOptErr("missing required option argument")
	ErrAmbiguousOpt  = GetOptErr("ambiguous option")
	ErrIllegalOptArg = GetOptErr("option does not allow an argument")
)

func (e GetOptErr) Error() string {
	return string(e)
}

type HasArg int

const (
	NoArgument       HasArg = iota // Indicates that the option disallows arguments.
	RequiredArgument               // Indicates that the option requires an argument.
	OptionalArgument               // Indicates that the option optionally accepts an argument.
)

type Func int

const (
	FuncGetOpt         Func = iota // Indicates that GetOpt should behave like `getopt`.
	FuncGetOptLong                 // Indicates that GetOpt should behave like `getopt_long`.
	FuncGetOptLongOnly             // Indicates that GetOpt should behave like `getopt_long_only`.
)

type Mode int

const (
	ModeGNU     Mode = iota // Permute arguments so that options come first.
	ModePosix               // Stop scanning at the first non-option argument.
	ModeInOrder             // Report non-option arguments as InOrderChar pseudo-options.
)

// InOrderChar is the Result.Char reported for a non-option argument in
// ModeInOrder.
const InOrderChar rune = '\x01'

type Opt struct {
	Char   rune
	HasArg HasArg
}

// OptStr parses a getopt optstring body (e.g. "ab:c::") into a slice of
// Opts. Mode prefixes ('+', '-', ':') are not interpreted here; see Spec.
func OptStr(optStr string) (opts []Opt) {
	for i := 0; i < len(optStr); i++ {
		char := rune(optStr[i])
		hasArg := NoArgument

		if i+1 < len(optStr) && optStr[i+1] == ':' {
			hasArg = RequiredArgument
			i++
			if i+1 < len(optStr) && optStr[i+1] == ':' {
				hasArg = OptionalArgument
				i++
			}
		}
		opts = append(opts, Opt{Char: char, HasArg: hasArg})
	}

	return opts
}

// LongOpt describes one recognized long option. If Flag is non-nil, a match
// stores Val through it and the Result carries only the Name; otherwise Val
// (when non-zero) is reported as the Result's Char code.
type LongOpt struct {
	Name   string
	HasArg HasArg
	Flag   *int
	Val    int
}

// LongOptStr parses a comma-separated long option list (e.g.
// "alpha,beta:,gamma::") into a slice of LongOpts.
func LongOptStr(longOptStr string) (longOpts []LongOpt) {
	items := strings.Split(longOptStr, ",")
	if len(items) == 1 && items[0] == "" {
		return longOpts
	}
	for _, item := range items {
		var opt LongOpt
		opt.Name = strings.TrimRight(item, ":")
		if len(opt.Name) == len(item)-1 {
			opt.HasArg = RequiredArgument
		} else if len(opt.Name) == len(item)-2 {
			opt.HasArg = OptionalArgument
		}

		longOpts = append(longOpts, opt)
	}

	return longOpts
}

// Config carries the option tables and scanning behavior for one parse.
type Config struct {
	Opts     []Opt
	LongOpts []LongOpt
	Func     Func
	Mode     Mode
	Quiet    bool // suppress diagnostics without changing the returned error kind
	WLong    bool // "W;" convention: -W NAME is scanned as the long option NAME
}

// Spec builds a Config from a full optstring, honoring the historical
// leading characters: '+' forces POSIX ordering, '-' returns non-options in
// order, and a ':' (after any '+'/'-') silences diagnostics. A "W;" pair
// enables the -W long option escape. The first character of the remaining
// spec is never treated as a mode flag.
func Spec(optStr string) Config {
	c := Config{Mode: ModeGNU}
	switch {
	case strings.HasPrefix(optStr, "-"):
		c.Mode = ModeInOrder
		optStr = optStr[1:]
	case strings.HasPrefix(optStr, "+"):
		c.Mode = ModePosix
		optStr = optStr[1:]
	}
	if strings.HasPrefix(optStr, ":") {
		c.Quiet = true
		optStr = optStr[1:]
	}
	if i := strings.Index(optStr, "W;"); i >= 0 {
		c.WLong = true
		optStr = optStr[:i+1] + optStr[i+2:]
	}
	c.Opts = OptStr(optStr)
	return c
}

// Result is one classified option. Short options set Char; long options set
// Name (and Char, when the matched entry has a non-zero Val code and no
// Flag target). OptArg holds the option's argument, if any.
type Result struct {
	Char   rune
	Name   string
	OptArg string
}

func findOpt(char rune, opts []Opt) (opt Opt, found bool) {
	if !isLegalOptRune(char) {
		return opt, false
	}
	i := slices.IndexFunc(opts, func(o Opt) bool { return char == o.Char })
	if i >= 0 {
		return opts[i], true
	}
	return opt, false
}

func isGraph(r rune) bool {
	// POSIX 7.3.1
	// > Define characters to be classified as punctuation characters.
	// > In the POSIX locale, neither the <space> nor any characters in classes alpha, digit, or cntrl shall be included.
	return unicode.IsDigit(r) || unicode.IsLetter(r) || unicode.IsPunct(r)
}

func isLegalOptRune(r rune) bool {
	// > A legitimate option character is any visible one byte ascii(7)
	// > character (for which isgraph(3) would return nonzero) that is not ':' or ';'.
	return r != ':' && r != ';' && r <= unicode.MaxASCII && isGraph(r)
}
