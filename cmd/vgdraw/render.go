package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"honnef.co/go/vgcore"
	"honnef.co/go/vgcore/command"
	"honnef.co/go/vgcore/geom"
	"honnef.co/go/vgcore/graphics"
	"honnef.co/go/vgcore/graphics/raster"
	"honnef.co/go/vgcore/storage"
)

type renderFlags struct {
	out   string
	doc   string
	base  string
	watch bool
}

func newRenderCmd(global *globalFlags) *cobra.Command {
	var flags renderFlags
	cmd := &cobra.Command{
		Use:   "render SCRIPT",
		Short: "Play a gesture script and render the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			if !flags.watch {
				return render(cfg, args[0], flags)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return watch(ctx, cfg, args[0], flags)
		},
	}
	cmd.Flags().StringVarP(&flags.out, "output", "o", "out.png", "PNG `file` to write")
	cmd.Flags().StringVarP(&flags.doc, "doc", "d", "", "also save the shapes to this YAML `file`")
	cmd.Flags().StringVarP(&flags.base, "base", "b", "", "YAML `document` whose shapes the script starts with")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "render again whenever the script changes")
	return cmd
}

func render(cfg *vgcore.Config, name string, flags renderFlags) error {
	sc, err := openScript(name)
	if err != nil {
		return err
	}
	var base *storage.Document
	if flags.base != "" {
		if base, err = storage.Open(flags.base); err != nil {
			return err
		}
	}
	s, err := sc.run(cfg, base)
	if err != nil {
		return err
	}

	if err := writePNG(flags.out, cfg, s); err != nil {
		return err
	}
	if flags.doc != "" {
		if err := saveShapes(flags.doc, s.Shapes); err != nil {
			return err
		}
	}
	vgcore.Logger().Info("rendered", "script", name, "shapes", s.Shapes.Len(), "png", flags.out)
	return nil
}

// paint draws the document and the feedback of the unfinished command on
// white.
func paint(cfg *vgcore.Config, s *command.Session) *raster.Canvas {
	c := raster.New(s.Xform.Width(), s.Xform.Height())
	c.Fill(graphics.White)
	gs := graphics.New(s.Xform)
	gs.SetPenWidthFactor(cfg.PenWidthFactor)
	if gs.BeginPaint(c, geom.Box{}) {
		s.DrawAll(gs)
		gs.EndPaint()
	}
	return c
}

func writePNG(name string, cfg *vgcore.Config, s *command.Session) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := paint(cfg, s).WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return f.Close()
}

// watch renders the script now and after every change to it until ctx is
// done. Errors in the script are logged and the previous output is kept.
func watch(ctx context.Context, cfg *vgcore.Config, name string, flags renderFlags) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	// Editors replace files on save, so watch the directory.
	if err := w.Add(filepath.Dir(name)); err != nil {
		return err
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return err
	}

	log := vgcore.Logger()
	rerender := func() {
		if err := render(cfg, name, flags); err != nil {
			log.Error("render failed", "script", name, "err", err)
		}
	}
	rerender()

	// Saves come as bursts of events.
	const settle = 100 * time.Millisecond
	timer := time.NewTimer(settle)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if p, err := filepath.Abs(ev.Name); err != nil || p != abs {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				timer.Reset(settle)
			}
		case <-timer.C:
			rerender()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "err", err)
		}
	}
}
