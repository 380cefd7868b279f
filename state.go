package getopt

import (
	"fmt"
	"io"
	"iter"
	"unicode/utf8"
)

// State holds the progress of one option-parsing session over an argument
// slice. A State must not be shared between goroutines, and must be Reset
// before reuse against an unrelated argument slice.
type State struct {
	args     []string
	optInd   int // the next argument to process
	nextChar int // byte offset into the current argument (when processing a short group)

	// Bounds of the pending run of non-option arguments awaiting
	// permutation; -1 when no run is open.
	nonOptStart int
	nonOptEnd   int

	optOpt rune      // the offending option character after an error
	prefix rune      // the option-introducer character
	diag   io.Writer // diagnostic sink; nil disables reporting
}

const initOptInd = 1

func NewState(args []string) *State {
	s := &State{prefix: '-'}
	s.Reset(args)
	return s
}

// Reset restarts the session over args. The prefix character and diagnostic
// sink survive a reset; cursor, group offset, run bounds, and the recorded
// offending character do not. Resetting twice is the same as resetting once.
func (s *State) Reset(args []string) {
	s.args = args
	s.optInd = initOptInd
	s.nextChar = 0
	s.nonOptStart = -1
	s.nonOptEnd = -1
	s.optOpt = 0
}

// Args returns the argument slice, reordered in place by any permutation
// performed so far. Element order is not stable until GetOpt reports
// ErrDone.
func (s *State) Args() []string { return s.args }

// OptInd returns the index of the next argument to process. After ErrDone
// it is the index of the first operand.
func (s *State) OptInd() int { return s.optInd }

// SetOptInd moves the scan cursor, abandoning any partially scanned group
// and any pending non-option run.
func (s *State) SetOptInd(i int) {
	s.optInd = i
	s.nextChar = 0
	s.nonOptStart = -1
	s.nonOptEnd = -1
}

// OptOpt returns the offending option character from the most recent
// ErrUnknownOpt or ErrMissingOptArg result, or 0 if the error concerned a
// long option.
func (s *State) OptOpt() rune { return s.optOpt }

// Prefix returns the option-introducer character, '-' by default.
func (s *State) Prefix() rune { return s.prefix }

// SetPrefix changes the option-introducer character for subsequent calls.
// It must not be changed in the middle of a session.
func (s *State) SetPrefix(r rune) { s.prefix = r }

// SetErrOutput directs human-readable diagnostics to w. Diagnostics are
// disabled by default and never change the error kind returned by GetOpt.
func (s *State) SetErrOutput(w io.Writer) { s.diag = w }

func (s *State) report(c Config, format string, a ...any) {
	if s.diag == nil || c.Quiet {
		return
	}
	prog := "(unknown)"
	if len(s.args) > 0 {
		prog = s.args[0]
	}
	fmt.Fprintf(s.diag, "%s: "+format+"\n", append([]any{prog}, a...)...)
}

// isOptToken reports whether tok begins an option. A bare prefix character
// is an operand by tradition (standard input), unless the prefix itself is
// listed in the short option table.
func (s *State) isOptToken(c Config, tok string) bool {
	r, w := utf8.DecodeRuneInString(tok)
	if w == 0 || r != s.prefix {
		return false
	}
	if len(tok) > w {
		return true
	}
	_, listed := findOpt(s.prefix, c.Opts)
	return listed
}

// GetOpt scans and classifies the next option. It returns ErrDone at the
// end of the options; every other error is recoverable and the caller may
// keep calling. An empty Config (no short and no long table) reports
// ErrDone immediately.
func (s *State) GetOpt(c Config) (res Result, err error) {
	if len(c.Opts) == 0 && len(c.LongOpts) == 0 {
		return res, ErrDone
	}

	if s.nextChar != 0 {
		// Resume a partially scanned short option group.
		return s.readShort(c)
	}

	argc := len(s.args)

	if c.Mode == ModeGNU {
		// If options were consumed past a pending non-option run (a
		// group token finished on the resume path above), move the run
		// behind them first.
		if s.nonOptStart >= 0 && s.nonOptEnd != s.optInd {
			s.exchange()
		}
		// Skip over operands, extending the run.
		for s.optInd < argc && !s.isOptToken(c, s.args[s.optInd]) {
			if s.nonOptStart < 0 {
				s.nonOptStart = s.optInd
			}
			s.optInd++
			s.nonOptEnd = s.optInd
		}
	}

	// The doubled prefix terminates option scanning unconditionally and is
	// itself consumed.
	if s.optInd < argc && s.args[s.optInd] == string(s.prefix)+string(s.prefix) {
		s.optInd++
		if s.nonOptStart >= 0 && s.nonOptEnd != s.optInd {
			s.exchange()
		}
		return s.close()
	}

	if s.optInd >= argc {
		return s.close()
	}

	if !s.isOptToken(c, s.args[s.optInd]) {
		// Only reachable outside ModeGNU: the permute loop above never
		// stops on an operand.
		if c.Mode == ModePosix {
			return res, ErrDone
		}
		s.optInd++
		return Result{Char: InOrderChar, OptArg: s.args[s.optInd-1]}, nil
	}

	runOpen := s.nonOptStart >= 0
	runStart, runEnd := s.nonOptStart, s.optInd

	res, err = s.readToken(c)

	if runOpen && s.optInd > runEnd {
		// The consumed option tokens move ahead of the operand run; the
		// cursor backs up accordingly so the caller's index accounting
		// matches the new layout.
		rotateRuns(s.args, runStart, runEnd, s.optInd)
		s.optInd = runStart + (s.optInd - runEnd)
		s.nonOptStart = -1
		s.nonOptEnd = -1
	}
	return res, err
}

// close finishes the scan, moving the cursor back to the first operand when
// a non-option run is pending.
func (s *State) close() (Result, error) {
	if s.nonOptStart >= 0 {
		s.optInd = s.nonOptStart
		s.nonOptStart = -1
		s.nonOptEnd = -1
	}
	return Result{}, ErrDone
}

// readToken classifies the option token at the cursor, dispatching between
// the long option resolver and the short option scanner.
func (s *State) readToken(c Config) (Result, error) {
	tok := s.args[s.optInd]
	pw := utf8.RuneLen(s.prefix)
	rest := ""
	if len(tok) > pw {
		rest = tok[pw:]
	}

	if len(c.LongOpts) > 0 && c.Func != FuncGetOpt && rest != "" {
		second, sw := utf8.DecodeRuneInString(rest)
		if second == s.prefix {
			s.optInd++
			s.nextChar = 0
			res, _, err := s.resolveLong(c, rest[sw:], string(s.prefix)+string(s.prefix), false)
			return res, err
		}
		if c.Func == FuncGetOptLongOnly {
			_, listed := findOpt(second, c.Opts)
			if len(rest) > sw || !listed {
				s.optInd++
				s.nextChar = 0
				res, handled, err := s.resolveLong(c, rest, string(s.prefix), listed)
				if handled {
					return res, err
				}
				// Declined in favor of the short scanner.
				s.optInd--
			}
		}
	}

	s.nextChar = pw
	return s.readShort(c)
}

// readShort scans the next character of the current short option group.
func (s *State) readShort(c Config) (Result, error) {
	arg := s.args[s.optInd]

	if s.nextChar >= len(arg) {
		// A bare prefix token, reachable only when the prefix character
		// itself is a listed option.
		s.optInd++
		s.nextChar = 0
		opt, _ := findOpt(s.prefix, c.Opts)
		return s.shortArg(c, s.prefix, "", opt)
	}

	ch, w := utf8.DecodeRuneInString(arg[s.nextChar:])
	s.nextChar += w
	rest := arg[s.nextChar:]
	if rest == "" {
		// Advance the cursor when processing the group's last character.
		s.optInd++
		s.nextChar = 0
	}

	opt, found := findOpt(ch, c.Opts)
	if !found {
		s.optOpt = ch
		s.report(c, "invalid option -- '%c'", ch)
		return Result{Char: ch}, ErrUnknownOpt
	}

	if ch == 'W' && c.WLong && len(c.LongOpts) > 0 {
		// "W;": the rest of the token, or the next one, is a long
		// option name.
		text := rest
		if text == "" {
			if s.optInd >= len(s.args) {
				s.optOpt = ch
				s.report(c, "option requires an argument -- '%c'", ch)
				return Result{Char: ch}, ErrMissingOptArg
			}
			text = s.args[s.optInd]
			s.optInd++
		} else {
			s.optInd++
			s.nextChar = 0
		}
		res, _, err := s.resolveLong(c, text, string(s.prefix)+"W ", false)
		return res, err
	}

	return s.shortArg(c, ch, rest, opt)
}

// shortArg applies the option's argument rules given the unscanned
// remainder of the current token.
func (s *State) shortArg(c Config, ch rune, rest string, opt Opt) (Result, error) {
	res := Result{Char: ch}

	switch opt.HasArg {
	case OptionalArgument:
		// An optional argument is only ever taken from the same token.
		if rest != "" {
			res.OptArg = rest
			s.optInd++
			s.nextChar = 0
		}
	case RequiredArgument:
		if rest != "" {
			res.OptArg = rest
			s.optInd++
			s.nextChar = 0
		} else if s.optInd >= len(s.args) {
			s.optOpt = ch
			s.report(c, "option requires an argument -- '%c'", ch)
			return res, ErrMissingOptArg
		} else {
			res.OptArg = s.args[s.optInd]
			s.optInd++
		}
	}
	return res, nil
}

// All returns an iterator over the remaining options, stopping at ErrDone.
// Recoverable errors are yielded with their partial Result, and scanning
// continues afterwards.
func (s *State) All(c Config) iter.Seq2[Result, error] {
	return func(yield func(Result, error) bool) {
		for {
			res, err := s.GetOpt(c)
			if err == ErrDone {
				return
			}
			if !yield(res, err) {
				return
			}
		}
	}
}
