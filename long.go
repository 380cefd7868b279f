package getopt

import "strings"

// resolveLong matches text ("name" or "name=value", already stripped of its
// prefix) against the long option table. The cursor must already be past
// the token holding the name. pfx is the prefix form used, for diagnostics
// only.
//
// When shortToo is set the token could also be a short option group; a
// failed match then declines (handled=false) without error or cursor
// movement, so the short scanner can try.
func (s *State) resolveLong(c Config, text, pfx string, shortToo bool) (res Result, handled bool, err error) {
	name, inline, hasInline := strings.Cut(text, "=")

	var found *LongOpt
	for i := range c.LongOpts {
		if c.LongOpts[i].Name == name {
			// An exact match always wins, however many entries it
			// abbreviates.
			found = &c.LongOpts[i]
			break
		}
	}

	if found == nil && (!shortToo || len(name) > 1) {
		// Look for an unambiguous abbreviation. A later candidate only
		// makes the name ambiguous if it behaves differently from the
		// first, or in long-only mode, where any second candidate does.
		ambig := false
		for i := range c.LongOpts {
			lo := &c.LongOpts[i]
			if !strings.HasPrefix(lo.Name, name) {
				continue
			}
			if found == nil {
				found = lo
				continue
			}
			if c.Func == FuncGetOptLongOnly ||
				found.HasArg != lo.HasArg || found.Flag != lo.Flag || found.Val != lo.Val {
				ambig = true
			}
		}
		if ambig {
			s.optOpt = 0
			s.report(c, "option '%s%s' is ambiguous", pfx, name)
			return Result{Name: name}, true, ErrAmbiguousOpt
		}
	}

	if found == nil {
		if shortToo {
			return res, false, nil
		}
		s.optOpt = 0
		s.report(c, "unrecognized option '%s%s'", pfx, text)
		return Result{Name: name}, true, ErrUnknownOpt
	}

	res.Name = found.Name
	if hasInline {
		if found.HasArg == NoArgument {
			s.optOpt = 0
			s.report(c, "option '%s%s' doesn't allow an argument", pfx, name)
			return Result{Name: found.Name}, true, ErrIllegalOptArg
		}
		res.OptArg = inline
	} else if found.HasArg == RequiredArgument {
		if s.optInd >= len(s.args) {
			s.optOpt = 0
			s.report(c, "option '%s%s' requires an argument", pfx, name)
			return Result{Name: found.Name}, true, ErrMissingOptArg
		}
		res.OptArg = s.args[s.optInd]
		s.optInd++
	}

	if found.Flag != nil {
		*found.Flag = found.Val
		return res, true, nil
	}
	if found.Val != 0 {
		res.Char = rune(found.Val)
	}
	return res, true, nil
}
