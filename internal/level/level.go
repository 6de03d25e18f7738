package level

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/physics2d/internal/core/geometry/polygon"
	"github.com/zeusync/physics2d/internal/core/geometry/vector"
)

// ObjectType names a level object. Values are upper case in level files.
type ObjectType string

const (
	TypeBall        ObjectType = "BALL"
	TypeHole        ObjectType = "HOLE"
	TypeGrass       ObjectType = "GRASS"
	TypeCircleGrass ObjectType = "CIRCLE_GRASS"
	TypeWater       ObjectType = "WATER"
	TypeSand        ObjectType = "SAND"
	TypePower       ObjectType = "POWER"
	TypeTeleport    ObjectType = "TELEPORT"

	TypeSky      ObjectType = "SKY"
	TypeMountain ObjectType = "MOUNTAIN"
	TypeSnow     ObjectType = "SNOW"
)

// Level is a golf course: its bounds, the playable objects and purely
// decorative background polygons drawn behind them.
type Level struct {
	Name       string   `json:"name,omitempty" yaml:"name,omitempty"`
	Bounds     Bounds   `json:"bounds" yaml:"bounds"`
	Objects    []Object `json:"objects" yaml:"objects"`
	Background []Object `json:"background,omitempty" yaml:"background,omitempty"`
}

type Bounds struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (p Point) Vector() vector.Vector { return vector.New(p.X, p.Y) }

// Object is one entry of a level file. Which fields are read depends on Type:
// BALL, HOLE, CIRCLE_GRASS and POWER are placed at (PosX, PosY); GRASS,
// WATER, SAND and TELEPORT use Shape; TELEPORT also needs Out and Direction.
type Object struct {
	Type      ObjectType `json:"type" yaml:"type"`
	PosX      float64    `json:"pos_x,omitempty" yaml:"pos_x,omitempty"`
	PosY      float64    `json:"pos_y,omitempty" yaml:"pos_y,omitempty"`
	Radius    float64    `json:"radius,omitempty" yaml:"radius,omitempty"`
	Shape     []Point    `json:"shape,omitempty" yaml:"shape,omitempty"`
	Out       []Point    `json:"out,omitempty" yaml:"out,omitempty"`
	Direction *Point     `json:"direction,omitempty" yaml:"direction,omitempty"`
}

func (o Object) Pos() vector.Vector { return vector.New(o.PosX, o.PosY) }

func toPolygon(points []Point) polygon.Polygon {
	p := make(polygon.Polygon, len(points))
	for i, pt := range points {
		p[i] = pt.Vector()
	}
	return p
}

// Validate checks the level without building it.
func (l *Level) Validate() error {
	var errs []error
	if l.Bounds.Width <= 0 || l.Bounds.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: bounds %vx%v", ErrInvalidLevel, l.Bounds.Width, l.Bounds.Height))
	}

	balls := 0
	for i, o := range l.Objects {
		switch o.Type {
		case TypeBall:
			balls++
		case TypeHole, TypePower:
		case TypeCircleGrass:
			if o.Radius <= 0 {
				errs = append(errs, fmt.Errorf("%w: object %d: %s radius %v", ErrInvalidLevel, i, o.Type, o.Radius))
			}
		case TypeGrass, TypeWater, TypeSand:
			errs = append(errs, checkShape(i, "shape", o.Shape))
		case TypeTeleport:
			errs = append(errs, checkShape(i, "shape", o.Shape), checkShape(i, "out", o.Out))
			if o.Direction == nil {
				errs = append(errs, fmt.Errorf("%w: object %d: teleport without direction", ErrInvalidLevel, i))
			}
		default:
			errs = append(errs, fmt.Errorf("%w: object %d: %q", ErrUnknownObject, i, o.Type))
		}
	}
	if balls != 1 {
		errs = append(errs, fmt.Errorf("%w: want exactly one %s, got %d", ErrInvalidLevel, TypeBall, balls))
	}

	for i, o := range l.Background {
		switch o.Type {
		case TypeSky, TypeMountain, TypeSnow:
			errs = append(errs, checkShape(i, "background shape", o.Shape))
		default:
			errs = append(errs, fmt.Errorf("%w: background %d: %q", ErrUnknownObject, i, o.Type))
		}
	}
	return errors.Join(errs...)
}

func checkShape(i int, field string, points []Point) error {
	if err := toPolygon(points).Validate(); err != nil {
		return fmt.Errorf("%w: object %d: %s: %w", ErrInvalidLevel, i, field, err)
	}
	return nil
}

// LoadJSON decodes and validates a level.
func LoadJSON(r io.Reader) (*Level, error) {
	var l Level
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return nil, fmt.Errorf("decode json level: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// LoadYAML decodes and validates a level.
func LoadYAML(r io.Reader) (*Level, error) {
	var l Level
	if err := yaml.NewDecoder(r).Decode(&l); err != nil {
		return nil, fmt.Errorf("decode yaml level: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// LoadFile picks the decoder from the file extension.
func LoadFile(name string) (*Level, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return load(f, filepath.Ext(name))
}

func load(r io.Reader, ext string) (*Level, error) {
	switch strings.ToLower(ext) {
	case ".json":
		return LoadJSON(r)
	case ".yaml", ".yml":
		return LoadYAML(r)
	default:
		return nil, fmt.Errorf("%w: unsupported level extension %q", ErrInvalidLevel, ext)
	}
}

//go:embed levels
var builtin embed.FS

// Count is the number of built-in levels.
func Count() int {
	entries, err := builtin.ReadDir("levels")
	if err != nil {
		return 0
	}
	return len(entries)
}

// Builtin loads built-in level n, counting from 1.
func Builtin(n int) (*Level, error) {
	entries, err := builtin.ReadDir("levels")
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(entries) {
		return nil, fmt.Errorf("%w: %d of %d", ErrNoSuchLevel, n, len(entries))
	}
	name := path.Join("levels", entries[n-1].Name())
	f, err := builtin.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return load(f, path.Ext(name))
}
