package render

import (
	"github.com/zeusync/physics2d/internal/core/geometry/polygon"
	"github.com/zeusync/physics2d/internal/core/geometry/vector"
	"github.com/zeusync/physics2d/internal/core/physics/body"
	"github.com/zeusync/physics2d/internal/core/physics/scene"
)

// Renderer draws snapshots. Implementations must not retain the snapshot.
type Renderer interface {
	Render(snap Snapshot) error
}

// Shape is one body as drawn: its world-space outline and fill color.
type Shape struct {
	ID       string       `json:"id"`
	Kind     string       `json:"kind"`
	Color    [3]uint8     `json:"color"`
	Vertices [][2]float64 `json:"vertices"`
}

func (s Shape) Polygon() polygon.Polygon {
	p := make(polygon.Polygon, len(s.Vertices))
	for i, v := range s.Vertices {
		p[i] = vector.New(v[0], v[1])
	}
	return p
}

// Snapshot is a read-only copy of a scene at the end of a tick, safe to hand
// to another goroutine.
type Snapshot struct {
	Scene   string  `json:"scene"`
	Tick    uint64  `json:"tick"`
	Elapsed float64 `json:"elapsed"`
	Level   int     `json:"level"`
	Score   int     `json:"score"`
	State   string  `json:"state"`
	Shapes  []Shape `json:"shapes"`
}

// Capture copies every body of s. Background bodies come first so that
// painting in order leaves them behind everything else.
func Capture(s *scene.Scene) Snapshot {
	session := s.Session()
	snap := Snapshot{
		Scene:   s.Name(),
		Tick:    s.TickCount(),
		Elapsed: s.Elapsed(),
		Level:   session.Level,
		Score:   session.Score,
		State:   session.State.String(),
		Shapes:  make([]Shape, 0, s.Len()),
	}

	bodies := s.Bodies()
	for _, b := range bodies {
		if body.KindOf(b) == body.KindBackground {
			snap.Shapes = append(snap.Shapes, shapeOf(b))
		}
	}
	for _, b := range bodies {
		if body.KindOf(b) != body.KindBackground {
			snap.Shapes = append(snap.Shapes, shapeOf(b))
		}
	}
	return snap
}

func shapeOf(b *body.Body) Shape {
	verts := b.Vertices()
	out := Shape{
		ID:       b.ID().String(),
		Kind:     body.KindOf(b).String(),
		Vertices: make([][2]float64, len(verts)),
	}
	out.Color[0], out.Color[1], out.Color[2] = b.Color().Bytes()
	for i, v := range verts {
		out.Vertices[i] = [2]float64{v.X, v.Y}
	}
	return out
}
