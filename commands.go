package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"go_rga/core"
	"go_rga/core/validation"
	"go_rga/db"
	"go_rga/op"
	"go_rga/surface"
	"go_rga/version"
)

// errUsage means the flag set already printed what went wrong.
var errUsage = errors.New("usage")

func newFlagSet(a *app, name, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "usage: rgactl %s %s\n", name, args)
		fs.PrintDefaults()
	}
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(fs.Output(), "unexpected argument %q\n", fs.Arg(0))
		fs.Usage()
		return errUsage
	}
	return nil
}

func runVersion(a *app, args []string) error {
	if err := parse(newFlagSet(a, "version", ""), args); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, core.GetVersionInfo(version.LibraryVersion.String()))
	return nil
}

func runInfo(a *app, args []string) error {
	if err := parse(newFlagSet(a, "info", ""), args); err != nil {
		return err
	}
	info, err := a.eng.Info(a.ctx)
	if err != nil {
		return err
	}

	title := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgHiBlack)
	title.Fprintln(a.stdout, "RGA device")
	printPair(a.stdout, label, "device", a.cfg.DevicePath)
	printPair(a.stdout, label, "driver", fmt.Sprintf("%s %s", info.DriverType, info.DriverString))
	for i, hw := range info.HWVersions {
		printPair(a.stdout, label, fmt.Sprintf("core %d", i), hw.String())
	}
	printPair(a.stdout, label, "librga", version.LibraryVersion.String())

	fmt.Fprintln(a.stdout)
	title.Fprintln(a.stdout, "Capabilities")
	for _, kv := range info.Row.Describe() {
		printPair(a.stdout, label, kv[0], kv[1])
	}
	return nil
}

func printPair(w io.Writer, label *color.Color, key, value string) {
	label.Fprintf(w, "  %-14s", key)
	fmt.Fprintln(w, value)
}

func runCheck(a *app, args []string) error {
	fs := newFlagSet(a, "check", "[-fail-fast]")
	failFast := fs.Bool("fail-fast", false, "stop at the first failed check")
	if err := parse(fs, args); err != nil {
		return err
	}

	result := validation.NewSuite(a.sess).
		WithOutput(a.stdout).
		WithConfig(a.cfg).
		WithFailFast(*failFast).
		Run(a.ctx)
	if result.Success {
		return nil
	}
	if err := result.FirstError(); err != nil {
		return err
	}
	return errors.New(result.Summary())
}

func runFill(a *app, args []string) error {
	fs := newFlagSet(a, "fill", "-fd N -w W -h H [flags]")
	fd := fs.Int("fd", -1, "dma-buf file descriptor of the destination")
	width := fs.Int("w", 0, "destination width in pixels")
	height := fs.Int("h", 0, "destination height in pixels")
	wstride := fs.Int("wstride", 0, "row stride in pixels (default width)")
	hstride := fs.Int("hstride", 0, "height stride in rows (default height)")
	formatName := fs.String("format", "RGBA8888", "destination pixel format")
	colorText := fs.String("color", "0xff000000", "fill colour as a 32-bit value")
	x := fs.Int("x", 0, "fill rectangle left edge")
	y := fs.Int("y", 0, "fill rectangle top edge")
	rw := fs.Int("rw", 0, "fill rectangle width (default whole buffer)")
	rh := fs.Int("rh", 0, "fill rectangle height (default whole buffer)")
	if err := parse(fs, args); err != nil {
		return err
	}

	if *fd < 0 || *width <= 0 || *height <= 0 {
		fmt.Fprintln(a.stderr, "-fd, -w and -h are required")
		fs.Usage()
		return errUsage
	}
	format, ok := surface.ParseFormat(*formatName)
	if !ok {
		return core.ErrNotSupported("dst", "unknown format %q", *formatName)
	}
	fill, err := strconv.ParseUint(*colorText, 0, 32)
	if err != nil {
		return core.ErrInvalid("dst", "color %q is not a 32-bit value", *colorText)
	}

	dst := surface.FromFD(*fd, *width, *height, format)
	if *wstride > 0 || *hstride > 0 {
		dst = dst.WithStride(max(*wstride, *width), max(*hstride, *height))
	}
	rect := surface.Rect{X: *x, Y: *y, Width: *rw, Height: *rh}

	start := time.Now()
	if err := a.eng.Fill(a.ctx, dst, rect, uint32(fill)); err != nil {
		return err
	}
	area := dst.String()
	if rect.Set() {
		area = rect.String()
	}
	fmt.Fprintf(a.stdout, "filled %s with 0x%08x in %v\n", area, uint32(fill), time.Since(start).Round(time.Microsecond))
	return nil
}

func runHistory(a *app, args []string) error {
	fs := newFlagSet(a, "history", "[-n N] [-errors] [-id ID] [-prune DAYS]")
	limit := fs.Int("n", 20, "number of rows to show")
	onlyErrors := fs.Bool("errors", false, "show failed submissions only")
	id := fs.String("id", "", "show the submission with this correlation id")
	prune := fs.Int("prune", -1, "delete rows older than DAYS and exit")
	if err := parse(fs, args); err != nil {
		return err
	}
	if a.cfg.DBPath == "" {
		return core.ErrMissingConfig("RGA_DB_PATH")
	}

	store, err := db.Open(a.cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if *prune >= 0 {
		res, err := store.Cleanup(a.ctx, *prune)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "deleted %d rows in %v\n", res.Deleted, res.Duration.Round(time.Millisecond))
		return nil
	}

	repo := db.NewRepository(store, nil)
	var rows []db.Submission
	switch {
	case *id != "":
		rows, err = repo.QueryByCorrelationID(a.ctx, *id)
	case *onlyErrors:
		rows, err = repo.QueryErrors(a.ctx, *limit)
	default:
		rows, err = repo.QueryRecent(a.ctx, *limit)
	}
	if err != nil {
		return err
	}
	total, err := repo.Count(a.ctx)
	if err != nil {
		return err
	}
	printHistory(a.stdout, rows, total)
	return nil
}

func printHistory(w io.Writer, rows []db.Submission, total int64) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "no submissions recorded")
		return
	}
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tKIND\tSTATUS\tFORMATS\tUSAGE\tDURATION\tID")
	for _, r := range rows {
		status := ok.Sprint(r.Status)
		if r.Status != "success" {
			status = bad.Sprint(r.ErrorCode)
		}
		formats := r.DstFormat
		if r.SrcFormat != "" {
			formats = r.SrcFormat + " -> " + r.DstFormat
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%v\t%s\n",
			r.CreatedAt.Local().Format(time.DateTime),
			r.Kind,
			status,
			formats,
			op.UsageString(op.Usage(r.Usage)),
			r.Duration,
			r.CorrelationID)
		if r.ErrorMessage != "" {
			fmt.Fprintf(tw, "\t\t\t%s\t\t\t\n", r.ErrorMessage)
		}
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d of %d rows\n", len(rows), total)
}
