// Command brigdump prints the records of a BRIG module container.
//
// Usage:
//
//	brigdump [options] <module.brig>
//
// Every section is walked record by record. Each line holds the record
// location, its kind and its decoded fields. Dumping a section stops at the
// first record that cannot be decoded.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gogpu/brig/container"
	"github.com/gogpu/brig/format"
	"github.com/gogpu/brig/section"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("brigdump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	blocks := fs.Bool("blocks", false, "print the control blocks of every function and kernel")
	only := fs.String("section", "", "dump only this section (directives, code, operands, strings)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: brigdump [options] <module.brig>\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: expected exactly one input file")
		fs.Usage()
		return 1
	}

	m, err := container.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	d := dumper{w: stdout}
	d.dirs, d.code, d.operands, d.strings = section.Views(m)
	status := 0
	for _, v := range []section.View{d.dirs, d.code, d.operands, d.strings} {
		if *only != "" && *only != v.ID().String() {
			continue
		}
		if err := d.section(v); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			status = 1
		}
	}
	if *blocks {
		if err := d.blocks(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			status = 1
		}
	}
	return status
}

type dumper struct {
	w                             io.Writer
	dirs, code, operands, strings section.View
}

func (d *dumper) section(v section.View) error {
	fmt.Fprintf(d.w, "%s (%d bytes)\n", v.ID(), v.Len())
	if v.ID() == format.Strings {
		return d.stringTable(v)
	}
	for c := section.Begin(v); !c.Done(); {
		if err := d.record(v, c.Offset()); err != nil {
			return err
		}
		if err := c.Next(); err != nil {
			return err
		}
	}
	return nil
}

func (d *dumper) record(v section.View, off uint32) error {
	var (
		kind   fmt.Stringer
		fields any
	)
	switch v.ID() {
	case format.Directives:
		r, err := section.DecodeDirective(v, off)
		if err != nil {
			return err
		}
		kind, fields = r.Header().Kind, r
	case format.Code:
		r, err := section.DecodeInst(v, off)
		if err != nil {
			return err
		}
		h := r.Header()
		fmt.Fprintf(d.w, "  %6d  %-14s %s_%s %v\n", off, h.Kind, h.Opcode, h.Type, h.Operands[:h.NumOperands()])
		return nil
	case format.Operands:
		r, err := section.DecodeOperand(v, off)
		if err != nil {
			return err
		}
		kind, fields = r.Header().Kind, r
	}
	fmt.Fprintf(d.w, "  %6d  %-14s %s\n", off, kind, strings.TrimPrefix(fmt.Sprintf("%+v", fields), "&"))
	return nil
}

func (d *dumper) stringTable(v section.View) error {
	data := v.Bytes()
	for p := uint32(format.SectionPrefix); p < v.Len(); {
		n := bytes.IndexByte(data[p:], 0)
		if n < 0 {
			return fmt.Errorf("strings+%d: %w", p, section.ErrUnterminated)
		}
		fmt.Fprintf(d.w, "  %6d  %q\n", p, data[p:p+uint32(n)])
		p += uint32(n) + 1
	}
	return nil
}

func (d *dumper) blocks() error {
	fmt.Fprintln(d.w, "control blocks")
	for c := section.Begin(d.dirs); !c.Done(); {
		_, kind, err := c.Check()
		if err != nil {
			return err
		}
		if format.DirectiveKind(kind).IsMethod() {
			if err := d.method(c.Offset()); err != nil {
				return err
			}
		}
		if err := c.Next(); err != nil {
			return err
		}
	}
	return nil
}

func (d *dumper) method(off uint32) error {
	r, err := section.DecodeDirective(d.dirs, off)
	if err != nil {
		return err
	}
	name, err := section.String(d.strings, r.(*format.MethodDirective).SName)
	if err != nil {
		name = "?"
	}
	fmt.Fprintf(d.w, "  %s %s\n", r.Header().Kind, name)

	begin, end, err := section.Blocks(d.dirs, off)
	if err != nil {
		return err
	}
	for b := begin; !b.Equal(end); {
		_, kind, err := d.dirs.Check(b.Offset())
		if err != nil {
			return err
		}
		fmt.Fprintf(d.w, "    %6d  %s\n", b.Offset(), format.DirectiveKind(kind))
		if err := b.Next(); err != nil {
			return err
		}
	}
	return nil
}
