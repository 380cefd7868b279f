package bind_test

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/optscan/getopt"
	"github.com/optscan/getopt/bind"
)

func TestParse(t *testing.T) {
	t.Run("it fills registered destinations", func(t *testing.T) {
		var (
			all     bool
			verbose int
			name    string
			level   int
			ratio   float64
		)
		s := bind.New()
		s.BoolVar(&all, 'a', "all")
		counter := s.CounterVar(&verbose, 'v', "verbose")
		s.StringVar(&name, 'n', "name")
		s.IntVar(&level, 'l', "level")
		s.Float64Var(&ratio, 'r', "ratio")

		err := s.Parse([]string{
			"prgm", "-v", "--name=x", "file1", "-l", "3", "--verbose", "file2", "-r", "0.5",
		})
		if err != nil {
			t.Fatalf("wanted no error, but got %q", err)
		}

		if all {
			t.Error("got all true, but wanted false")
		}
		if verbose != 2 {
			t.Errorf("got verbose %d, but wanted 2", verbose)
		}
		if name != "x" {
			t.Errorf("got name %q, but wanted %q", name, "x")
		}
		if level != 3 {
			t.Errorf("got level %d, but wanted 3", level)
		}
		if ratio != 0.5 {
			t.Errorf("got ratio %v, but wanted 0.5", ratio)
		}
		if counter.Seen() != 2 {
			t.Errorf("got Seen %d, but wanted 2", counter.Seen())
		}
		if diff := cmp.Diff([]string{"file1", "file2"}, s.Args()); diff != "" {
			t.Errorf("operands mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("it returns defaulted destinations", func(t *testing.T) {
		s := bind.New()
		quiet := s.Bool('q', "quiet")
		out := s.String('o', "output", "a.out")
		jobs := s.Int('j', "jobs", 1)

		if err := s.Parse([]string{"prgm", "-q"}); err != nil {
			t.Fatalf("wanted no error, but got %q", err)
		}

		if !*quiet {
			t.Error("got quiet false, but wanted true")
		}
		if *out != "a.out" {
			t.Errorf("got output %q, but wanted %q", *out, "a.out")
		}
		if *jobs != 1 {
			t.Errorf("got jobs %d, but wanted 1", *jobs)
		}
	})

	t.Run("optional values are only taken attached", func(t *testing.T) {
		var color string
		s := bind.New()
		s.StringVar(&color, 'c', "color").Optional()

		if err := s.Parse([]string{"prgm", "--color", "auto"}); err != nil {
			t.Fatalf("wanted no error, but got %q", err)
		}
		if color != "" {
			t.Errorf("got color %q, but wanted it untouched", color)
		}
		if diff := cmp.Diff([]string{"auto"}, s.Args()); diff != "" {
			t.Errorf("operands mismatch (-want +got):\n%s", diff)
		}

		if err := s.Parse([]string{"prgm", "--color=red"}); err != nil {
			t.Fatalf("wanted no error, but got %q", err)
		}
		if color != "red" {
			t.Errorf("got color %q, but wanted %q", color, "red")
		}
	})

	t.Run("a repeating option stops at its bound", func(t *testing.T) {
		var files []string
		s := bind.New()
		s.StringsVar(&files, 2, 'f', "file")

		err := s.Parse([]string{"prgm", "-f", "a", "-f", "b", "-f", "c"})
		if !errors.Is(err, bind.ErrOutOfBounds) {
			t.Fatalf("got error %v, but wanted ErrOutOfBounds", err)
		}
		if diff := cmp.Diff([]string{"a", "b"}, files); diff != "" {
			t.Errorf("values mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("it reports conversion failures", func(t *testing.T) {
		var level int
		s := bind.New()
		s.IntVar(&level, 'l', "level")

		err := s.Parse([]string{"prgm", "-l", "abc"})
		if err == nil {
			t.Fatal("wanted an error, but didn't get one")
		}
		if !strings.Contains(err.Error(), `invalid value "abc"`) {
			t.Errorf("got error %q, but wanted it to name the bad value", err)
		}
	})

	t.Run("it invokes callbacks with raw text", func(t *testing.T) {
		var got []string
		s := bind.New()
		s.Func('x', "exec", getopt.RequiredArgument, func(text string) error {
			got = append(got, text)
			return nil
		})

		if err := s.Parse([]string{"prgm", "-x", "one", "--exec=two"}); err != nil {
			t.Fatalf("wanted no error, but got %q", err)
		}
		if diff := cmp.Diff([]string{"one", "two"}, got); diff != "" {
			t.Errorf("callback values mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("it surfaces scanner errors", func(t *testing.T) {
		s := bind.New()
		s.Bool('a', "all")

		err := s.Parse([]string{"prgm", "-z"})
		if !errors.Is(err, getopt.ErrUnknownOpt) {
			t.Fatalf("got error %v, but wanted ErrUnknownOpt", err)
		}
	})

	t.Run("a registered conversion replaces the default", func(t *testing.T) {
		var level int
		s := bind.New()
		s.IntVar(&level, 'l', "level")
		s.RegisterConv(bind.IntKind, func(text string) (any, error) {
			v, err := strconv.ParseInt(text, 16, 64)
			return int(v), err
		})

		if err := s.Parse([]string{"prgm", "-l", "ff"}); err != nil {
			t.Fatalf("wanted no error, but got %q", err)
		}
		if level != 255 {
			t.Errorf("got level %d, but wanted 255", level)
		}
	})
}
