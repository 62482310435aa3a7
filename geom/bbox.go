package geom

import "math"

// BBox is an axis-aligned bounding box. A box with Min == Max on an axis is
// valid and describes a degenerate (zero width) extent along that axis.
type BBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// NewBBox creates the smallest box containing both corners.
func NewBBox(x1, y1, x2, y2 float64) BBox {
	return BBox{
		MinX: math.Min(x1, x2),
		MinY: math.Min(y1, y2),
		MaxX: math.Max(x1, x2),
		MaxY: math.Max(y1, y2),
	}
}

// BBoxOf gives the bounding box of a non-empty list of points.
func BBoxOf(pts []Point) BBox {
	bb := BBox{pts[0].X, pts[0].Y, pts[0].X, pts[0].Y}
	for _, p := range pts[1:] {
		bb = bb.ExtendPoint(p)
	}
	return bb
}

// Union gives the smallest bounding box containing both bb and other.
func (bb BBox) Union(other BBox) BBox {
	return BBox{
		MinX: math.Min(bb.MinX, other.MinX),
		MinY: math.Min(bb.MinY, other.MinY),
		MaxX: math.Max(bb.MaxX, other.MaxX),
		MaxY: math.Max(bb.MaxY, other.MaxY),
	}
}

// ExtendPoint grows bb to cover p.
func (bb BBox) ExtendPoint(p Point) BBox {
	return bb.Union(BBox{p.X, p.Y, p.X, p.Y})
}

// Expand grows the box by d on every side.
func (bb BBox) Expand(d float64) BBox {
	return BBox{bb.MinX - d, bb.MinY - d, bb.MaxX + d, bb.MaxY + d}
}

// Area of the box.
func (bb BBox) Area() float64 {
	return (bb.MaxX - bb.MinX) * (bb.MaxY - bb.MinY)
}

// Enlargement returns how much additional area bb would have to grow by to
// accommodate other.
func (bb BBox) Enlargement(other BBox) float64 {
	return bb.Union(other).Area() - bb.Area()
}

// Intersects reports whether the two boxes overlap. Boxes that touch, or
// miss each other by less than Epsilon, are considered overlapping.
func (bb BBox) Intersects(other BBox) bool {
	return true &&
		(bb.MinX <= other.MaxX+Epsilon) && (bb.MaxX >= other.MinX-Epsilon) &&
		(bb.MinY <= other.MaxY+Epsilon) && (bb.MaxY >= other.MinY-Epsilon)
}

// ContainsPoint reports whether p lies inside or on the border of bb.
func (bb BBox) ContainsPoint(p Point) bool {
	return p.X >= bb.MinX && p.X <= bb.MaxX && p.Y >= bb.MinY && p.Y <= bb.MaxY
}

// MinDist is the smallest possible distance between p and any point inside
// the box. It is zero when p is inside the box.
func (bb BBox) MinDist(p Point) float64 {
	return math.Hypot(axisDist(p.X, bb.MinX, bb.MaxX), axisDist(p.Y, bb.MinY, bb.MaxY))
}

func axisDist(k, min, max float64) float64 {
	if k < min {
		return min - k
	}
	if k <= max {
		return 0
	}
	return k - max
}
