// Package board describes the morris board layouts: node positions, mills and
// the playing surface the cursor ray can land on.
package board

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/saiko-tech/morris-picker/pkg/mousepick"
	"github.com/saiko-tech/morris-picker/pkg/mousepick/collision"
)

// NodeCount is the number of intersection points on both variants.
const NodeCount = 24

const (
	// NodeY is the height of the nodes above the board mesh origin.
	NodeY = float32(0.063)

	surfaceHalfExtent = float32(2.3)
	surfaceThickness  = float32(0.1)
)

// Variant is a board rule set.
type Variant int

const (
	NineMensMorris Variant = iota
	TwelveMensMorris
)

func (v Variant) String() string {
	switch v {
	case NineMensMorris:
		return "nine"
	case TwelveMensMorris:
		return "twelve"
	}

	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant accepts the names produced by Variant.String.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "nine", "":
		return NineMensMorris, nil
	case "twelve":
		return TwelveMensMorris, nil
	}

	return 0, errors.Errorf("unknown board variant %q", s)
}

var nodePositions = [NodeCount]mgl32.Vec3{
	{2.046, NodeY, 2.062},
	{-0.008, NodeY, 2.089},
	{-2.101, NodeY, 2.076},
	{1.480, NodeY, 1.512},
	{0.001, NodeY, 1.513},
	{-1.509, NodeY, 1.502},
	{0.889, NodeY, 0.898},
	{0.001, NodeY, 0.906},
	{-0.930, NodeY, 0.892},
	{2.058, NodeY, 0.031},
	{1.481, NodeY, 0.025},
	{0.894, NodeY, 0.026},
	{-0.934, NodeY, 0.050},
	{-1.508, NodeY, 0.050},
	{-2.083, NodeY, 0.047},
	{0.882, NodeY, -0.894},
	{0.011, NodeY, -0.900},
	{-0.930, NodeY, -0.890},
	{1.477, NodeY, -1.455},
	{0.006, NodeY, -1.463},
	{-1.493, NodeY, -1.458},
	{2.063, NodeY, -2.046},
	{0.001, NodeY, -2.061},
	{-2.081, NodeY, -2.045},
}

var nineMensMorrisMills = [][3]int{
	{0, 1, 2}, {2, 14, 23}, {21, 22, 23}, {0, 9, 21},
	{3, 4, 5}, {5, 13, 20}, {18, 19, 20}, {3, 10, 18},
	{6, 7, 8}, {8, 12, 17}, {15, 16, 17}, {6, 11, 15},
	{1, 4, 7}, {12, 13, 14}, {16, 19, 22}, {9, 10, 11},
}

// twelve men's morris adds the four diagonals
var twelveMensMorrisMills = append(append([][3]int(nil), nineMensMorrisMills...),
	[3]int{0, 3, 6}, [3]int{2, 5, 8}, [3]int{15, 18, 21}, [3]int{17, 20, 23},
)

// Node is a board intersection a piece can stand on.
type Node struct {
	Index    int
	Position mgl32.Vec3
	Radius   float32
}

func (n Node) PickID() int              { return n.Index }
func (n Node) PickPosition() mgl32.Vec3 { return n.Position }
func (n Node) PickRadius() float32      { return n.Radius }

// Board is a static board layout.
type Board struct {
	Variant Variant
	Nodes   [NodeCount]Node

	mills [][3]int
}

// New lays out a board whose nodes are pickable within nodeRadius.
func New(variant Variant, nodeRadius float32) (*Board, error) {
	if !(nodeRadius > 0) {
		return nil, errors.Errorf("node radius must be positive, got %v", nodeRadius)
	}

	b := &Board{Variant: variant}

	switch variant {
	case NineMensMorris:
		b.mills = nineMensMorrisMills
	case TwelveMensMorris:
		b.mills = twelveMensMorrisMills
	default:
		return nil, errors.Errorf("unknown board variant %v", variant)
	}

	for i, p := range nodePositions {
		b.Nodes[i] = Node{Index: i, Position: p, Radius: nodeRadius}
	}

	return b, nil
}

// Pickables returns the nodes as picker input, in index order.
func (b *Board) Pickables() []mousepick.Pickable {
	out := make([]mousepick.Pickable, len(b.Nodes))
	for i, n := range b.Nodes {
		out[i] = n
	}

	return out
}

// Mills returns every line of three nodes that forms a mill.
func (b *Board) Mills() [][3]int {
	return b.mills
}

// MillsContaining returns the mills node takes part in.
func (b *Board) MillsContaining(node int) [][3]int {
	var res [][3]int

	for _, m := range b.mills {
		if m[0] == node || m[1] == node || m[2] == node {
			res = append(res, m)
		}
	}

	return res
}

// Bounds is the axis-aligned box around the playing surface.
func (b *Board) Bounds() (min, max mgl32.Vec3) {
	return mgl32.Vec3{-surfaceHalfExtent, NodeY - surfaceThickness, -surfaceHalfExtent},
		mgl32.Vec3{surfaceHalfExtent, NodeY, surfaceHalfExtent}
}

// surface is the top face of the board, split in two triangles.
func (b *Board) surface() [2][3]mgl32.Vec3 {
	e := surfaceHalfExtent
	a := mgl32.Vec3{-e, NodeY, -e}
	c := mgl32.Vec3{e, NodeY, e}

	return [2][3]mgl32.Vec3{
		{a, {e, NodeY, -e}, c},
		{a, c, {-e, NodeY, e}},
	}
}

// SurfacePoint returns where ray lands on the top of the board.
func (b *Board) SurfacePoint(ray mousepick.Ray) (mgl32.Vec3, bool) {
	min, max := b.Bounds()
	if !collision.RayIntersectsAxisAlignedBoundingBox(ray.Origin, ray.Direction, min, max).Hit {
		return mgl32.Vec3{}, false
	}

	for _, tri := range b.surface() {
		if r := collision.RayIntersectsTriangle(ray.Origin, ray.Direction, tri); r.Hit {
			return r.Point, true
		}
	}

	return mgl32.Vec3{}, false
}
