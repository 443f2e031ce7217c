package cli

import (
	"fmt"
	"os"

	"github.com/comitanigiacomo/kanso-routines/internal/adapters/codec"
)

type ExportCmd struct {
	Output string `short:"o" help:"Write to this file instead of stdout." type:"path"`
	Format string `short:"f" help:"Encoding (json|yaml). Defaults to the output extension."`
}

func (c *ExportCmd) format() (codec.Format, error) {
	if c.Format != "" {
		return codec.ParseFormat(c.Format)
	}
	if c.Output != "" {
		return codec.FormatFromPath(c.Output), nil
	}
	return codec.FormatJSON, nil
}

func (c *ExportCmd) Run(ctx *Context) error {
	format, err := c.format()
	if err != nil {
		return err
	}
	snap := ctx.Store.Export()

	if c.Output == "" {
		return codec.Encode(ctx.Out, &snap, format)
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := codec.Encode(f, &snap, format); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	ctx.printf("Exported %d routines and %d habits to %s\n", len(snap.Routines), len(snap.Habits), c.Output)
	return nil
}

type ImportCmd struct {
	Path   string `arg:"" help:"Snapshot file to import. Replaces all current data." type:"existingfile"`
	Format string `short:"f" help:"Encoding (json|yaml). Defaults to the file extension."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	format := codec.FormatFromPath(c.Path)
	if c.Format != "" {
		var err error
		if format, err = codec.ParseFormat(c.Format); err != nil {
			return err
		}
	}

	f, err := os.Open(c.Path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	snap, err := codec.Decode(f, format)
	if err != nil {
		return err
	}
	if err := ctx.Store.Import(*snap); err != nil {
		return err
	}
	ctx.printf("Imported %d routines and %d habits\n", len(snap.Routines), len(snap.Habits))
	return nil
}

type ResetCmd struct {
	Yes bool `short:"y" help:"Confirm deleting every routine, habit and preference."`
}

func (c *ResetCmd) Run(ctx *Context) error {
	if !c.Yes {
		return fmt.Errorf("refusing to reset without --yes")
	}
	ctx.Store.Reset()
	ctx.printf("All data cleared\n")
	return nil
}
