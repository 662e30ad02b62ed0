package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"

	"github.com/fernlang/fern"
	"github.com/fernlang/fern/diag"
	"github.com/fernlang/fern/snapshot"
	"github.com/fernlang/fern/types"
)

var ErrUnitHasErrors = errors.New("unit has errors")

// VersionCmd prints the compiler version.
type VersionCmd struct{}

func (cmd *VersionCmd) Run() error {
	fmt.Println("fern v" + fern.Version)
	return nil
}

// CheckCmd runs the pipeline and reports diagnostics without producing
// output.
type CheckCmd struct {
	Path string `arg:"" help:"Source file to check" type:"existingfile"`
}

func (cmd *CheckCmd) Run(ctx *Context) error {
	unit, err := runPath(ctx, cmd.Path)
	if err != nil {
		return err
	}
	reportDiagnostics(unit)
	if unit.HasErrors() {
		return ErrUnitHasErrors
	}
	color.Green("%s: ok", cmd.Path)
	return nil
}

// BuildCmd re-derives every section of a golden record from its SOURCE and
// rewrites the file. Pointed at a directory, it regenerates every record
// under it.
type BuildCmd struct {
	Path string `arg:"" help:"Golden record or directory to regenerate" type:"path"`
}

func (cmd *BuildCmd) Run(ctx *Context) error {
	info, err := os.Stat(cmd.Path)
	if err != nil {
		return err
	}
	start := time.Now()
	if info.IsDir() {
		err = buildDir(cmd.Path)
	} else {
		err = buildRecord(cmd.Path)
	}
	if ctx.Time {
		fmt.Fprintf(os.Stderr, "build: %s\n", time.Since(start))
	}
	return err
}

func buildDir(dir string) error {
	records, err := snapshot.LoadDir(os.DirFS(dir), ".")
	if err != nil {
		return err
	}
	for _, p := range snapshot.Paths(records) {
		if err := regenerate(filepath.Join(dir, p), records[p]); err != nil {
			return err
		}
	}
	return nil
}

func buildRecord(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	rec, err := snapshot.Load(data)
	if err != nil {
		return err
	}
	return regenerate(path, rec)
}

func regenerate(path string, rec snapshot.Record) error {
	regen, err := snapshot.Generate(rec.Meta, rec.Source)
	if err != nil {
		return err
	}
	if regen == rec {
		fmt.Printf("%s: unchanged\n", path)
		return nil
	}
	if err := regen.WriteFile(path); err != nil {
		return err
	}
	color.Cyan("%s: regenerated", path)
	return nil
}

// RunCmd is the default command: compile a source file and print the
// formatted unit with its inferred types.
type RunCmd struct {
	Path string `arg:"" help:"Source file to run" type:"existingfile"`
}

func (cmd *RunCmd) Run(ctx *Context) error {
	unit, err := runPath(ctx, cmd.Path)
	if err != nil {
		return err
	}
	reportDiagnostics(unit)
	if unit.HasErrors() {
		return ErrUnitHasErrors
	}
	fmt.Println(unit.Formatted())
	fmt.Println(types.RenderSection(unit.Types))
	return nil
}

func runPath(ctx *Context, path string) (fern.UnitResult, error) {
	if ctx.Main != "" {
		path = ctx.Main
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return fern.UnitResult{}, err
	}
	start := time.Now()
	unit := fern.RunUnit(src)
	if ctx.Time {
		fmt.Fprintf(os.Stderr, "pipeline: %s\n", time.Since(start))
	}
	return unit, nil
}

func reportDiagnostics(unit fern.UnitResult) {
	if len(unit.Diags) == 0 {
		return
	}
	rendered := diag.RenderAll(unit.Source, unit.Diags)
	color.Red("%s", rendered)
}
