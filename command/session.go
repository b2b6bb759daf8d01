package command

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"golang.org/x/text/message"

	"honnef.co/go/vgcore"
	"honnef.co/go/vgcore/geom"
	"honnef.co/go/vgcore/graphics"
	"honnef.co/go/vgcore/shape"
)

var ErrUnknownCommand = errors.New("unknown command")

// Session is the drawing state of one view: the document, the view
// transform, the attributes of new shapes, the snapper and the active
// command. Pointer positions given to a Session are display pixels.
//
// A Session is not safe for concurrent use.
type Session struct {
	Shapes  *shape.List
	Xform   *graphics.Transform
	Snap    *Snapper
	Factory *shape.Factory

	// Context is given to new shapes unless the command options override
	// it.
	Context graphics.Context
	// NewShapeFlags are set on every committed shape.
	NewShapeFlags []shape.Flag
	// DrawOneShape ends a command after its first committed shape.
	DrawOneShape bool
	// OnMessage receives the key and the localized text of user messages.
	OnMessage func(key, text string)

	cfg      *vgcore.Config
	printer  *message.Printer
	registry map[string]func() Command

	cmd         Command
	motion      Motion
	newShapeID  int
	lastSnapped [2]geom.Point
}

// NewSession returns a session drawing into an empty list. A nil cfg
// means the default configuration.
func NewSession(cfg *vgcore.Config) (*Session, error) {
	if cfg == nil {
		var err error
		if cfg, err = vgcore.Load(); err != nil {
			return nil, err
		}
	}
	ctx := graphics.NewContext()
	if cfg.LineColor != "" {
		c, err := graphics.ParseColor(cfg.LineColor)
		if err != nil {
			return nil, fmt.Errorf("line color: %w", err)
		}
		ctx.LineColor = c
	}
	fill, err := graphics.ParseColor(cfg.FillColor)
	if err != nil {
		return nil, fmt.Errorf("fill color: %w", err)
	}
	ctx.FillColor = fill
	ctx.LineWidth = cfg.LineWidth

	xf := graphics.NewTransform(true)
	xf.SetResolution(cfg.DPI, cfg.DPI)

	s := &Session{
		Shapes:   shape.NewList(0),
		Xform:    xf,
		Snap:     NewSnapper(cfg),
		Factory:  shape.NewFactory(),
		Context:  ctx,
		cfg:      cfg,
		printer:  newPrinter(cfg.Language),
		registry: maps.Clone(builtins),
	}
	s.motion.Session = s
	return s, nil
}

func (s *Session) Config() *vgcore.Config { return s.cfg }

// Command returns the active command, or nil.
func (s *Session) Command() Command { return s.cmd }

// Motion returns the pointer state shared with the commands.
func (s *Session) Motion() *Motion { return &s.motion }

// NewShapeID returns the id of the shape committed or picked last, or 0.
func (s *Session) NewShapeID() int { return s.newShapeID }

// LastSnapped returns the point the last gesture snapped to and the
// pointer position it came from. Both are zero until a gesture snaps.
func (s *Session) LastSnapped() (snapped, from geom.Point) {
	return s.lastSnapped[0], s.lastSnapped[1]
}

// Register makes a command available to SetCommand under name, replacing
// any command of that name.
func (s *Session) Register(name string, fn func() Command) {
	s.registry[name] = fn
}

// Commands returns the sorted names of the available commands.
func (s *Session) Commands() []string {
	return slices.Sorted(maps.Keys(s.registry))
}

// SetCommand cancels the active command and starts the one called name.
// s carries the options of the new command and may be nil.
func (s *Session) SetCommand(name string, st shape.Storage) error {
	fn, ok := s.registry[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownCommand, name)
	}
	if s.cmd != nil {
		s.cmd.Cancel(&s.motion)
	}
	cmd := fn()
	s.cmd = cmd
	s.motion.State = GesturePossible
	if !cmd.Initialize(&s.motion, st) {
		if s.cmd == cmd {
			s.cmd = nil
		}
		return fmt.Errorf("command %q failed to start", name)
	}
	vgcore.Logger().Debug("command started", "name", name)
	return nil
}

func (s *Session) endCommand() {
	if s.cmd != nil {
		vgcore.Logger().Debug("command ended", "name", s.cmd.Name())
	}
	s.cmd = nil
}

func (s *Session) toModel(pt geom.Point) geom.Point {
	return pt.Transform(s.Xform.DisplayToModel())
}

func (s *Session) moveTo(pt geom.Point) {
	m := &s.motion
	m.LastPt, m.LastPtM = m.Point, m.PointM
	m.Point, m.PointM = pt, s.toModel(pt)
}

func (s *Session) resetMotion(pt geom.Point) {
	m := &s.motion
	m.StartPt, m.LastPt, m.Point = pt, pt, pt
	ptm := s.toModel(pt)
	m.StartPtM, m.LastPtM, m.PointM = ptm, ptm, ptm
}

// Press starts a drag at pt.
func (s *Session) Press(pt geom.Point) bool {
	s.resetMotion(pt)
	s.motion.State = GestureBegan
	s.lastSnapped = [2]geom.Point{}
	return s.cmd != nil && s.cmd.TouchBegan(&s.motion)
}

// Drag moves the pointer of the current drag to pt.
func (s *Session) Drag(pt geom.Point) bool {
	if !s.motion.Dragging() {
		return false
	}
	s.moveTo(pt)
	s.motion.State = GestureMoved
	return s.cmd != nil && s.cmd.TouchMoved(&s.motion)
}

// Release ends the current drag at pt.
func (s *Session) Release(pt geom.Point) bool {
	if !s.motion.Dragging() {
		return false
	}
	s.moveTo(pt)
	s.motion.State = GestureEnded
	ret := s.cmd != nil && s.cmd.TouchEnded(&s.motion)
	s.motion.State = GesturePossible
	return ret
}

// ClickAt reports a tap at pt.
func (s *Session) ClickAt(pt geom.Point) bool {
	s.resetMotion(pt)
	s.motion.State = GesturePossible
	return s.cmd != nil && s.cmd.Click(&s.motion)
}

// DoubleClickAt reports a double tap at pt.
func (s *Session) DoubleClickAt(pt geom.Point) bool {
	s.resetMotion(pt)
	s.motion.State = GesturePossible
	return s.cmd != nil && s.cmd.DoubleClick(&s.motion)
}

// BackStep undoes the last accepted point of the active command.
func (s *Session) BackStep() bool {
	return s.cmd != nil && s.cmd.BackStep(&s.motion)
}

// Cancel aborts the shape in progress. Some commands commit what they
// have collected instead.
func (s *Session) Cancel() bool {
	s.motion.State = GestureCancelled
	ret := s.cmd != nil && s.cmd.Cancel(&s.motion)
	s.motion.State = GesturePossible
	return ret
}

// Draw draws the feedback of the active command.
func (s *Session) Draw(gs *graphics.Graphics) bool {
	return s.cmd != nil && s.cmd.Draw(&s.motion, gs)
}

// DrawAll draws the document and then the feedback of the active command.
func (s *Session) DrawAll(gs *graphics.Graphics) int {
	n := s.Shapes.Draw(0, gs, nil, -1)
	s.Draw(gs)
	return n
}

// Text returns the localized text of a message key.
func (s *Session) Text(key string) string {
	return s.printer.Sprintf(key)
}

// ShowMessage delivers the message key to OnMessage.
func (s *Session) ShowMessage(key string) {
	text := s.Text(key)
	vgcore.Logger().Debug("command message", "key", key, "text", text)
	if s.OnMessage != nil {
		s.OnMessage(key, text)
	}
}
