// Package testgen builds the JSON fixture corpus that the scanner's
// fixture tests replay. The generator runs the scanner itself over a
// curated case list, pinning current behavior against regressions.
package testgen

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/optscan/getopt"
)

// CaseRecord is one curated input in testdata/cases.json.
type CaseRecord struct {
	Label    string   `json:"label"`
	Func     string   `json:"func"`
	Mode     string   `json:"mode"`
	Args     []string `json:"args"`
	Opts     string   `json:"opts"`
	LongOpts string   `json:"lopts"`
}

// ResultRecord is one expected GetOpt outcome.
type ResultRecord struct {
	Char   string `json:"char,omitempty"`
	Name   string `json:"name,omitempty"`
	OptArg string `json:"opt_arg,omitempty"`
	Err    string `json:"err,omitempty"`
}

// FixtureRecord is one replayable fixture in testdata/fixtures.json.
type FixtureRecord struct {
	Label       string         `json:"label"`
	Func        string         `json:"func"`
	Mode        string         `json:"mode"`
	Args        []string       `json:"args"`
	Opts        string         `json:"opts"`
	LongOpts    string         `json:"lopts"`
	WantArgs    []string       `json:"want_args"`
	WantOptInd  int            `json:"want_optind"`
	WantResults []ResultRecord `json:"want_results"`
}

// Config builds the scanner configuration a record describes. The record's
// func and mode fields take precedence over any optstring prefix.
func (c CaseRecord) Config() (getopt.Config, error) {
	conf := getopt.Spec(c.Opts)
	conf.LongOpts = getopt.LongOptStr(c.LongOpts)

	switch c.Func {
	case "getopt":
		conf.Func = getopt.FuncGetOpt
	case "getopt_long":
		conf.Func = getopt.FuncGetOptLong
	case "getopt_long_only":
		conf.Func = getopt.FuncGetOptLongOnly
	default:
		return conf, fmt.Errorf("unknown function type %q", c.Func)
	}

	switch c.Mode {
	case "gnu":
		conf.Mode = getopt.ModeGNU
	case "posix":
		conf.Mode = getopt.ModePosix
	case "inorder":
		conf.Mode = getopt.ModeInOrder
	default:
		return conf, fmt.Errorf("unknown mode type %q", c.Mode)
	}

	return conf, nil
}

// ErrString encodes a GetOpt error for the fixture corpus.
func ErrString(err error) (string, error) {
	switch err {
	case nil:
		return "", nil
	case getopt.ErrDone:
		return "done", nil
	case getopt.ErrUnknownOpt:
		return "unknown", nil
	case getopt.ErrMissingOptArg:
		return "missing", nil
	case getopt.ErrAmbiguousOpt:
		return "ambiguous", nil
	case getopt.ErrIllegalOptArg:
		return "illegal", nil
	}
	return "", fmt.Errorf("unknown error %v", err)
}

// ParseErr is the inverse of ErrString.
func ParseErr(s string) (error, error) {
	switch s {
	case "":
		return nil, nil
	case "done":
		return getopt.ErrDone, nil
	case "unknown":
		return getopt.ErrUnknownOpt, nil
	case "missing":
		return getopt.ErrMissingOptArg, nil
	case "ambiguous":
		return getopt.ErrAmbiguousOpt, nil
	case "illegal":
		return getopt.ErrIllegalOptArg, nil
	}
	return nil, fmt.Errorf("unknown error string %q", s)
}

// maxSteps caps a runaway scan so a generator bug cannot loop forever.
const maxSteps = 1000

func generate(c CaseRecord) (FixtureRecord, error) {
	conf, err := c.Config()
	if err != nil {
		return FixtureRecord{}, err
	}

	args := make([]string, len(c.Args))
	copy(args, c.Args)
	s := getopt.NewState(args)

	f := FixtureRecord{
		Label:    c.Label,
		Func:     c.Func,
		Mode:     c.Mode,
		Args:     c.Args,
		Opts:     c.Opts,
		LongOpts: c.LongOpts,
	}

	for i := 0; ; i++ {
		if i >= maxSteps {
			return f, fmt.Errorf("case %q: no ErrDone after %d steps", c.Label, maxSteps)
		}
		res, err := s.GetOpt(conf)
		errStr, convErr := ErrString(err)
		if convErr != nil {
			return f, fmt.Errorf("case %q: %v", c.Label, convErr)
		}
		rr := ResultRecord{Name: res.Name, OptArg: res.OptArg, Err: errStr}
		if res.Char != 0 {
			rr.Char = string(res.Char)
		}
		f.WantResults = append(f.WantResults, rr)
		if err == getopt.ErrDone {
			break
		}
	}

	f.WantArgs = s.Args()
	f.WantOptInd = s.OptInd()
	return f, nil
}

// ProcessCases reads a JSON array of CaseRecords from in and writes the
// generated FixtureRecord array to out.
func ProcessCases(in io.Reader, out io.Writer) error {
	decoder := json.NewDecoder(in)

	// read open bracket
	if _, err := decoder.Token(); err != nil {
		return fmt.Errorf("error decoding cases: %v", err)
	}

	var fixtures []FixtureRecord
	for decoder.More() {
		var c CaseRecord
		if err := decoder.Decode(&c); err != nil {
			return fmt.Errorf("error decoding cases: %v", err)
		}
		f, err := generate(c)
		if err != nil {
			return fmt.Errorf("error generating fixture: %v", err)
		}
		fixtures = append(fixtures, f)
	}

	// read closing bracket
	if _, err := decoder.Token(); err != nil {
		return fmt.Errorf("error decoding cases: %v", err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "\t")
	return enc.Encode(fixtures)
}
