package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/optikforge/zmxlink/internal/config"
	"github.com/optikforge/zmxlink/lens"
	"github.com/optikforge/zmxlink/report"
	"github.com/optikforge/zmxlink/zmx"
)

func runVersion(opts *rootOptions, _ *config.Config, _ []string) int {
	conn, err := opts.connect()
	if err != nil {
		return hostErr(err)
	}
	defer conn.Close()
	v, err := conn.GetVersion()
	if err != nil {
		return hostErr(err)
	}
	fmt.Println(v)
	return ExitOK
}

func runInfo(opts *rootOptions, _ *config.Config, _ []string) int {
	conn, err := opts.connect()
	if err != nil {
		return hostErr(err)
	}
	defer conn.Close()

	sys, err := conn.GetSystem()
	if err != nil {
		return hostErr(err)
	}
	aper, err := conn.GetSystemAper()
	if err != nil {
		return hostErr(err)
	}
	file, err := conn.GetFile()
	if err != nil {
		return hostErr(err)
	}

	fmt.Printf("file:        %s\n", file)
	fmt.Printf("surfaces:    %d\n", sys.NumSurfs)
	fmt.Printf("units:       %s\n", lens.UnitName(sys.UnitCode))
	fmt.Printf("stop:        %d\n", sys.StopSurf)
	if name := lens.RayAimingName(sys.RayAimingType); name != "" {
		fmt.Printf("ray aiming:  %s\n", name)
	}
	fmt.Printf("temperature: %g C\n", sys.Temperature)
	fmt.Printf("pressure:    %g atm\n", sys.Pressure)
	fmt.Printf("aperture:    type %d, value %g\n", aper.Kind, aper.Value)
	return ExitOK
}

func runSurfaces(opts *rootOptions, _ *config.Config, _ []string) int {
	conn, err := opts.connect()
	if err != nil {
		return hostErr(err)
	}
	defer conn.Close()

	seq, err := lens.NewSequence(conn)
	if err != nil {
		return hostErr(err)
	}
	all, err := seq.All()
	if err != nil {
		return hostErr(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTYPE\tCOMMENT\tTHICKNESS")
	for i, surf := range all {
		typ, err := surf.Type().Text()
		if err != nil {
			return hostErr(err)
		}
		comment, err := surf.Comment().Get()
		if err != nil {
			return hostErr(err)
		}
		thickness, err := surf.Thickness().Float()
		if err != nil {
			return hostErr(err)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%g\n", i, typ, comment, thickness)
	}
	w.Flush()
	return ExitOK
}

func runPush(opts *rootOptions, _ *config.Config, _ []string) int {
	conn, err := opts.connect()
	if err != nil {
		return hostErr(err)
	}
	defer conn.Close()

	if err := conn.PushLens(); err != nil {
		var herr *zmx.HostError
		if errors.As(err, &herr) {
			fmt.Fprintln(os.Stderr, "zmxlink: push refused: enable lens extensions in the host preferences")
			return ExitHostErr
		}
		return hostErr(err)
	}
	return ExitOK
}

func runSave(opts *rootOptions, _ *config.Config, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: zmxlink save <file.zmx>")
		return ExitUsageErr
	}
	conn, err := opts.connect()
	if err != nil {
		return hostErr(err)
	}
	defer conn.Close()
	if err := conn.SaveFile(args[0]); err != nil {
		return hostErr(err)
	}
	return ExitOK
}

func runLoad(opts *rootOptions, cfg *config.Config, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: zmxlink load <file.zmx|lens-name>")
		return ExitUsageErr
	}
	path := args[0]
	if lensCfg, ok := cfg.Lenses[path]; ok {
		path = lensCfg.Path
	}
	conn, err := opts.connect()
	if err != nil {
		return hostErr(err)
	}
	defer conn.Close()
	if err := conn.LoadFile(path, 0); err != nil {
		return hostErr(err)
	}
	return ExitOK
}

// runSinglet rebuilds the model as a 10 mm aperture singlet with an f/10
// radius solve on the back surface and a marginal ray height solve placing
// the image plane at focus, then pushes it into the editor.
func runSinglet(opts *rootOptions, _ *config.Config, _ []string) int {
	conn, err := opts.connect()
	if err != nil {
		return hostErr(err)
	}
	defer conn.Close()

	seq, err := lens.NewEmptySequence(conn)
	if err != nil {
		return hostErr(err)
	}
	obj, err := seq.At(0)
	if err != nil {
		return hostErr(err)
	}
	if err := obj.Thickness().Set(100); err != nil {
		return hostErr(err)
	}
	if _, err := conn.SetSystemAper(0, 1, 10.0); err != nil {
		return hostErr(err)
	}

	if _, err := seq.AppendNew(lens.Lookup("STANDARD"), map[string]any{
		"glass":     "BK7",
		"thickness": 1.0,
	}); err != nil {
		return hostErr(err)
	}

	back, err := seq.AppendNew(lens.Lookup("STANDARD"), nil)
	if err != nil {
		return hostErr(err)
	}
	std, ok := back.(*lens.Standard)
	if !ok {
		return hostErr(fmt.Errorf("back surface is %T, want standard", back))
	}
	if err := std.Curvature().SetFNumber(10); err != nil {
		return hostErr(err)
	}
	if err := std.Thickness().FocusOnNext(0, 0.2); err != nil {
		return hostErr(err)
	}

	if err := conn.PushLens(); err != nil {
		return hostErr(err)
	}
	return ExitOK
}

func runReport(opts *rootOptions, cfg *config.Config, args []string) int {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(os.Stderr, "usage: zmxlink report <kind> [settings-file]")
		return ExitUsageErr
	}
	kind := args[0]
	settings := ""
	flag := 0
	if len(args) == 2 {
		settings = args[1]
		if !filepath.IsAbs(settings) && cfg.Reports.SettingsDir != "" {
			settings = filepath.Join(cfg.Reports.SettingsDir, settings)
		}
		flag = 1
	}

	conn, err := opts.connect()
	if err != nil {
		return hostErr(err)
	}
	defer conn.Close()

	timeout := opts.timeout
	if cfg.Reports.Timeout != "" {
		if d, err := time.ParseDuration(cfg.Reports.Timeout); err == nil && d > 0 {
			timeout = d
		}
	}
	lines, err := report.Fetch(conn, kind, settings, flag, timeout)
	if err != nil {
		return hostErr(err)
	}
	for _, line := range lines {
		fmt.Println(line)
	}
	return ExitOK
}
