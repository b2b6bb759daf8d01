package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"honnef.co/go/vgcore"
	"honnef.co/go/vgcore/command"
	"honnef.co/go/vgcore/geom"
	"honnef.co/go/vgcore/shape"
	"honnef.co/go/vgcore/storage"
)

// A script is a view size and a sequence of commands, each with the
// gestures to feed it. Positions are display pixels.
//
//	width: 800
//	height: 600
//	steps:
//	  - command: rect
//	    events:
//	      - {op: down, at: [100, 100]}
//	      - {op: move, at: [150, 140]}
//	      - {op: up, at: [200, 180]}
//	  - command: roundrect
//	    options: {radius: 4, points: [0, 0, 30, 20]}
type script struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Steps  []step `yaml:"steps"`
}

type step struct {
	Command string         `yaml:"command"`
	Options map[string]any `yaml:"options"`
	Events  []event        `yaml:"events"`
}

type event struct {
	Op string     `yaml:"op"`
	At [2]float64 `yaml:"at"`
}

var errNoSteps = errors.New("script has no steps")

func readScript(r io.Reader) (*script, error) {
	sc := &script{Width: 800, Height: 600}
	if err := yaml.NewDecoder(r).Decode(sc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, errNoSteps
	}
	if sc.Width <= 1 || sc.Height <= 1 {
		return nil, fmt.Errorf("bad view size %dx%d", sc.Width, sc.Height)
	}
	return sc, nil
}

func openScript(name string) (*script, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sc, err := readScript(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return sc, nil
}

// optionsDocument stores the options of a step where commands read them.
// Lists become float arrays, so that "points" can be replayed. It returns a
// nil Storage, not a nil *storage.Document, when there are no options.
func optionsDocument(opts map[string]any) (shape.Storage, error) {
	if len(opts) == 0 {
		return nil, nil
	}
	doc := storage.New()
	for k, v := range opts {
		switch v := v.(type) {
		case int:
			doc.WriteInt(k, v)
		case float64:
			doc.WriteFloat(k, v)
		case bool:
			doc.WriteBool(k, v)
		case string:
			doc.WriteString(k, v)
		case []any:
			vals := make([]float64, len(v))
			for i, x := range v {
				switch x := x.(type) {
				case int:
					vals[i] = float64(x)
				case float64:
					vals[i] = x
				default:
					return nil, fmt.Errorf("option %s: element %d is %T, not a number", k, i, x)
				}
			}
			doc.WriteFloatArray(k, vals)
		default:
			return nil, fmt.Errorf("option %s: unsupported %T", k, v)
		}
	}
	return doc, nil
}

// run plays sc in a new session. base, if not nil, supplies the shapes the
// session starts with.
func (sc *script) run(cfg *vgcore.Config, base *storage.Document) (*command.Session, error) {
	s, err := command.NewSession(cfg)
	if err != nil {
		return nil, err
	}
	s.Xform.SetWndSize(sc.Width, sc.Height)
	s.OnMessage = func(key, text string) {
		vgcore.Logger().Info(text, "key", key)
	}
	if base != nil {
		if _, err := base.LoadShapes(s.Factory, s.Shapes); err != nil {
			return nil, fmt.Errorf("load base document: %w", err)
		}
	}

	for i, st := range sc.Steps {
		opts, err := optionsDocument(st.Options)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		if err := s.SetCommand(st.Command, opts); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		for j, ev := range st.Events {
			if err := play(s, ev); err != nil {
				return nil, fmt.Errorf("step %d, event %d: %w", i+1, j+1, err)
			}
		}
	}
	return s, nil
}

func play(s *command.Session, ev event) error {
	pt := geom.Pt(ev.At[0], ev.At[1])
	switch ev.Op {
	case "down":
		s.Press(pt)
	case "move":
		s.Drag(pt)
	case "up":
		s.Release(pt)
	case "click":
		s.ClickAt(pt)
	case "dblclick":
		s.DoubleClickAt(pt)
	case "back":
		s.BackStep()
	case "cancel":
		s.Cancel()
	default:
		return fmt.Errorf("unknown op %q", ev.Op)
	}
	return nil
}

// saveShapes writes l to a new document file.
func saveShapes(name string, l *shape.List) error {
	doc := storage.New()
	if err := doc.SaveShapes(l); err != nil {
		return err
	}
	return doc.Save(name)
}
