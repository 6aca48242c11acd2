package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Faultbox/shelfview/internal/layout"
	"github.com/Faultbox/shelfview/internal/scene"
	"github.com/Faultbox/shelfview/internal/shelf"
	"github.com/Faultbox/shelfview/pkg/math"
)

func layoutID(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, badRequest("invalid layout id")
	}
	return id, nil
}

// parseLayoutBody accepts a JSON or YAML layout document and rejects
// layouts that fail validation.
func parseLayoutBody(c fiber.Ctx) (*layout.Layout, error) {
	if len(c.Body()) == 0 {
		return nil, badRequest("empty body")
	}
	l, err := layout.Parse(c.Body())
	if err != nil {
		return nil, badRequest(err.Error())
	}
	if len(l.Floors) == 0 {
		return nil, badRequest("layout has no floors")
	}
	if err := layout.Validate(l.Floors); err != nil {
		return nil, fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	}
	return l, nil
}

func (s *Server) listLayouts(c fiber.Ctx) error {
	list, err := s.store.ListLayouts(context.Background())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"layouts": list})
}

func (s *Server) createLayout(c fiber.Ctx) error {
	l, err := parseLayoutBody(c)
	if err != nil {
		return err
	}
	id, err := s.store.CreateLayout(context.Background(), l)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"id": id})
}

func (s *Server) getLayout(c fiber.Ctx) error {
	id, err := layoutID(c)
	if err != nil {
		return err
	}
	rec, err := s.store.GetLayout(context.Background(), id)
	if err != nil {
		return err
	}
	return c.JSON(rec)
}

func (s *Server) updateLayout(c fiber.Ctx) error {
	id, err := layoutID(c)
	if err != nil {
		return err
	}
	l, err := parseLayoutBody(c)
	if err != nil {
		return err
	}
	if err := s.store.UpdateLayout(context.Background(), id, l); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func (s *Server) deleteLayout(c fiber.Ctx) error {
	id, err := layoutID(c)
	if err != nil {
		return err
	}
	if err := s.store.DeleteLayout(context.Background(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

type floorGroups struct {
	Floor int `json:"floor"`
	*layout.Extraction
}

func (s *Server) layoutGroups(c fiber.Ctx) error {
	id, err := layoutID(c)
	if err != nil {
		return err
	}
	rec, err := s.store.GetLayout(context.Background(), id)
	if err != nil {
		return err
	}
	out := make([]floorGroups, len(rec.Layout.Floors))
	for i, f := range rec.Layout.Floors {
		out[i] = floorGroups{Floor: i, Extraction: s.cache.Groups(i, f.Matrix)}
	}
	return c.JSON(fiber.Map{"floors": out})
}

type sceneGroup struct {
	layout.Group
	Center math.Vec3 `json:"center"`
	Size   math.Vec3 `json:"size"`
}

type sceneFloor struct {
	Index   int          `json:"index"`
	Height  float32      `json:"height"`
	YOffset float32      `json:"y_offset"`
	Bounds  math.Box3    `json:"bounds"`
	Groups  []sceneGroup `json:"groups"`
}

func (s *Server) layoutScene(c fiber.Ctx) error {
	id, err := layoutID(c)
	if err != nil {
		return err
	}
	rec, err := s.store.GetLayout(context.Background(), id)
	if err != nil {
		return err
	}
	sc := scene.Build(rec.Layout.Floors, s.cache, s.cfg.Scene)

	out := make([]sceneFloor, len(sc.Floors))
	for i, f := range sc.Floors {
		sf := sceneFloor{Index: f.Index, Height: f.Height, YOffset: f.YOffset, Bounds: f.Bounds}
		for _, g := range f.Groups {
			sf.Groups = append(sf.Groups, sceneGroup{Group: g.Group, Center: g.Center, Size: g.Size})
		}
		out[i] = sf
	}
	return c.JSON(fiber.Map{"floors": out, "bounds": sc.Bounds()})
}

func (s *Server) getOccupied(c fiber.Ctx) error {
	id, err := layoutID(c)
	if err != nil {
		return err
	}
	// Occupied alone cannot tell an empty list from a missing layout.
	rec, err := s.store.GetLayout(context.Background(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"occupied": rec.Layout.Occupied})
}

type occupiedRequest struct {
	Occupied []shelf.Location `json:"occupied"`
}

func (s *Server) putOccupied(c fiber.Ctx) error {
	id, err := layoutID(c)
	if err != nil {
		return err
	}
	var req occupiedRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return badRequest("invalid json")
	}
	if err := s.store.SetOccupied(context.Background(), id, req.Occupied); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func (s *Server) listSelections(c fiber.Ctx) error {
	id, err := layoutID(c)
	if err != nil {
		return err
	}
	limit := 100
	if q := c.Query("limit"); q != "" {
		if limit, err = strconv.Atoi(q); err != nil {
			return badRequest("invalid limit")
		}
	}
	list, err := s.store.Selections(context.Background(), id, limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"selections": list})
}
