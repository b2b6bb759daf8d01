package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"honnef.co/go/vgcore/geom"
	"honnef.co/go/vgcore/shape"
	"honnef.co/go/vgcore/storage"
)

func loadList(name string) (*shape.List, error) {
	doc, err := storage.Open(name)
	if err != nil {
		return nil, err
	}
	l := shape.NewList(0)
	if _, err := doc.LoadShapes(shape.NewFactory(), l); err != nil {
		return l, fmt.Errorf("%s: %w", name, err)
	}
	return l, nil
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info DOC",
		Short: "List the shapes of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := loadList(args[0])
			if l == nil {
				return err
			}
			if werr := printInfo(cmd.OutOrStdout(), l); werr != nil {
				return werr
			}
			return err
		},
	}
}

func printInfo(w io.Writer, l *shape.List) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tPOINTS\tEXTENT")
	for e := range l.All() {
		sp := e.Shape()
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", e.ID(), e.Kind(), sp.PointCount(), sp.Extent())
	}
	return tw.Flush()
}

func newSVGCmd() *cobra.Command {
	var prec int
	cmd := &cobra.Command{
		Use:   "svg DOC",
		Short: "Print the outline of every shape as SVG path data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := loadList(args[0])
			if l == nil {
				return err
			}
			if werr := printSVG(cmd.OutOrStdout(), l, prec); werr != nil {
				return werr
			}
			return err
		},
	}
	cmd.Flags().IntVarP(&prec, "precision", "p", 3, "decimals of coordinates, 0 for exact")
	return cmd
}

func printSVG(w io.Writer, l *shape.List, prec int) error {
	for e := range l.All() {
		var p geom.Path
		if !e.Shape().Output(&p) {
			continue
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\n", e.ID(), p.SVG(geom.SVGOptions{MaxPrecision: prec})); err != nil {
			return err
		}
	}
	return nil
}
