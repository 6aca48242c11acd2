package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/shelfview/internal/engine/camera"
	"github.com/Faultbox/shelfview/internal/navigation"
	"github.com/Faultbox/shelfview/internal/selector"
	"github.com/Faultbox/shelfview/internal/shelf"
	"github.com/Faultbox/shelfview/internal/store"
	"github.com/Faultbox/shelfview/pkg/math"
)

// maxFrames caps one /frames call.
const maxFrames = 2000

type createSessionRequest struct {
	LayoutID          uuid.UUID         `json:"layout_id"`
	HighlightedFloor  *int              `json:"highlighted_floor"`
	ExternalSelection *shelf.Location   `json:"external_selection"`
	CanSelectOccupied *bool             `json:"can_select_occupied"`
	Animate           *selector.Toggles `json:"animate"`
	CameraOffset      *camera.Offset    `json:"camera_offset"`
	Viewport          *struct {
		Width  float32 `json:"width"`
		Height float32 `json:"height"`
	} `json:"viewport"`
}

type cameraState struct {
	Position  math.Vec3 `json:"position"`
	Target    math.Vec3 `json:"target"`
	Animating bool      `json:"animating"`
}

type sessionState struct {
	ID               string           `json:"id"`
	LayoutID         uuid.UUID        `json:"layout_id"`
	Selection        *shelf.Location  `json:"selection"`
	Hover            *shelf.Location  `json:"hover"`
	HighlightedFloor int              `json:"highlighted_floor"`
	Animate          selector.Toggles `json:"animate"`
	Camera           cameraState      `json:"camera"`
}

func stateOf(sess *Session, sel *selector.Selector) sessionState {
	st := sessionState{
		ID:               sess.ID,
		LayoutID:         sess.LayoutID,
		HighlightedFloor: sel.HighlightedFloor(),
		Animate:          sel.Animate(),
		Camera: cameraState{
			Position:  sel.Rig().Position,
			Target:    sel.Rig().Target,
			Animating: sel.Animator().Active(),
		},
	}
	if cur, ok := sel.Current(); ok {
		st.Selection = &cur
	}
	if h, ok := sel.Hover(); ok {
		st.Hover = &h
	}
	return st
}

func decode(c fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return badRequest("empty body")
	}
	if err := json.Unmarshal(c.Body(), v); err != nil {
		return badRequest("invalid json")
	}
	return nil
}

func (s *Server) session(c fiber.Ctx) (*Session, error) {
	sess, ok := s.sessions.Get(c.Params("id"))
	if !ok {
		return nil, notFound("session not found")
	}
	return sess, nil
}

// record writes selections produced by a session to the selection log.
func (s *Server) record(sess *Session, src shelf.Source, locs []shelf.Location) {
	for _, loc := range locs {
		entry := &store.Selection{
			LayoutID:  sess.LayoutID,
			SessionID: sess.ID,
			Source:    src.String(),
			Location:  loc,
		}
		if err := s.store.RecordSelection(context.Background(), entry); err != nil {
			s.log.Warn("recording selection failed", zap.String("session", sess.ID), zap.Error(err))
		}
	}
}

func (s *Server) createSession(c fiber.Ctx) error {
	var req createSessionRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	if req.LayoutID == uuid.Nil {
		return badRequest("layout_id required")
	}
	rec, err := s.store.GetLayout(context.Background(), req.LayoutID)
	if err != nil {
		return err
	}

	sess := newSession(req.LayoutID)
	opts := selector.Options{
		Floors:           rec.Layout.Floors,
		OnSelect:         sess.onSelect,
		HighlightedFloor: req.HighlightedFloor,
		Occupied:         rec.Layout.Occupied,
		Cache:            s.cache,
	}
	if err := s.cfg.SelectorOptions(&opts); err != nil {
		return err
	}
	if req.CanSelectOccupied != nil {
		opts.CanSelectOccupied = *req.CanSelectOccupied
	}
	if req.Animate != nil {
		opts.Animate = req.Animate
	}
	if req.CameraOffset != nil {
		opts.CameraOffset = *req.CameraOffset
	}

	var state sessionState
	selected := sess.Do(func(*selector.Selector) {
		sess.sel = selector.New(opts)
		if req.Viewport != nil {
			sess.sel.SetViewport(req.Viewport.Width, req.Viewport.Height)
		}
		if req.ExternalSelection != nil {
			sess.sel.SetExternalSelection(req.ExternalSelection)
		}
		state = stateOf(sess, sess.sel)
	})
	s.record(sess, shelf.SourceExternal, selected)
	s.sessions.Add(sess)

	s.log.Info("session created", zap.String("session", sess.ID), zap.Stringer("layout", req.LayoutID))
	return c.Status(http.StatusCreated).JSON(state)
}

func (s *Server) getSession(c fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	var state sessionState
	sess.Do(func(sel *selector.Selector) { state = stateOf(sess, sel) })
	return c.JSON(state)
}

func (s *Server) deleteSession(c fiber.Ctx) error {
	if !s.sessions.Remove(c.Params("id")) {
		return notFound("session not found")
	}
	return c.SendStatus(http.StatusNoContent)
}

type keyRequest struct {
	Key   string `json:"key"`
	Shift bool   `json:"shift"`
	Ctrl  bool   `json:"ctrl"`
}

func (s *Server) sessionKey(c fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	var req keyRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	key := navigation.ParseKey(req.Key)
	if key == navigation.KeyNone {
		return badRequest("unknown key " + req.Key)
	}

	var (
		handled bool
		state   sessionState
	)
	selected := sess.Do(func(sel *selector.Selector) {
		handled = sel.HandleKey(selector.KeyEvent{
			Key:  key,
			Mods: navigation.Modifiers{Shift: req.Shift, Ctrl: req.Ctrl},
		})
		state = stateOf(sess, sel)
	})
	s.record(sess, shelf.SourceInternal, selected)
	return c.JSON(fiber.Map{"handled": handled, "state": state})
}

type locationRequest struct {
	Location *shelf.Location `json:"location"`
}

func (s *Server) sessionSelect(c fiber.Ctx) error {
	return s.applyLocation(c, shelf.SourceInternal)
}

func (s *Server) sessionExternal(c fiber.Ctx) error {
	return s.applyLocation(c, shelf.SourceExternal)
}

func (s *Server) applyLocation(c fiber.Ctx, src shelf.Source) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	var req locationRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	if req.Location == nil {
		return badRequest("location required")
	}

	var (
		accepted bool
		state    sessionState
	)
	selected := sess.Do(func(sel *selector.Selector) {
		if src == shelf.SourceExternal {
			accepted = sel.SetExternalSelection(req.Location)
		} else {
			accepted = sel.Select(*req.Location, src)
		}
		state = stateOf(sess, sel)
	})
	s.record(sess, src, selected)
	return c.JSON(fiber.Map{"accepted": accepted, "state": state})
}

type pointerRequest struct {
	X     float32 `json:"x"`
	Y     float32 `json:"y"`
	Hover bool    `json:"hover"`
}

func (s *Server) sessionClick(c fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	var req pointerRequest
	if err := decode(c, &req); err != nil {
		return err
	}

	var (
		changed bool
		state   sessionState
	)
	selected := sess.Do(func(sel *selector.Selector) {
		if req.Hover {
			changed = sel.HandleHover(req.X, req.Y)
		} else {
			changed = sel.HandleClick(req.X, req.Y)
		}
		state = stateOf(sess, sel)
	})
	s.record(sess, shelf.SourceInternal, selected)
	return c.JSON(fiber.Map{"changed": changed, "state": state})
}

type floorRequest struct {
	Floor *int `json:"floor"`
}

func (s *Server) sessionFloor(c fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	var req floorRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	if req.Floor == nil {
		return badRequest("floor required")
	}

	var (
		state sessionState
		ok    bool
	)
	sess.Do(func(sel *selector.Selector) {
		if _, ok = sel.Scene().Floor(*req.Floor); ok {
			sel.SetHighlightedFloor(*req.Floor)
		}
		state = stateOf(sess, sel)
	})
	if !ok {
		return notFound("floor not found")
	}
	return c.JSON(state)
}

// sessionFocus moves the camera through the session's animator, the same
// handle an embedding page's floor picker would hold.
func (s *Server) sessionFocus(c fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	var req floorRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	if req.Floor == nil {
		return badRequest("floor required")
	}

	var (
		state sessionState
		ok    bool
	)
	sess.Do(func(sel *selector.Selector) {
		var pos, look math.Vec3
		if pos, look, ok = sel.FloorTarget(*req.Floor); ok {
			sel.Animator().AnimateTo(pos, look)
		}
		state = stateOf(sess, sel)
	})
	if !ok {
		return notFound("floor not found")
	}
	return c.JSON(state)
}

type framesRequest struct {
	Count int     `json:"count"` // 0 runs until idle
	DT    float32 `json:"dt"`
}

func (s *Server) sessionFrames(c fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	req := framesRequest{DT: 1.0 / 60}
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return badRequest("invalid json")
		}
	}
	limit := req.Count
	if limit <= 0 || limit > maxFrames {
		limit = maxFrames
	}

	var (
		frames, redraws int
		state           sessionState
	)
	sess.Do(func(sel *selector.Selector) {
		for frames < limit {
			frames++
			if sel.Frame(req.DT) {
				redraws++
			} else if req.Count <= 0 {
				break
			}
		}
		state = stateOf(sess, sel)
	})
	return c.JSON(fiber.Map{"frames": frames, "redraws": redraws, "state": state})
}
