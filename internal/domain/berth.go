package domain

import (
	"math"
	"sort"
)

// DepthPoint marks the dredged depth that applies from Position (meters from
// the quay origin) up to the next point.
type DepthPoint struct {
	Position int
	Depth    float64
}

// The quay where vessels are moored. Depth is either uniform (Depth set) or a
// step function over positions (DepthMap, ascending by position).
type Berth struct {
	Length   int
	Depth    *float64
	DepthMap []DepthPoint
}

func NewBerth(length int, depth *float64, depthMap []DepthPoint) Berth {
	points := make([]DepthPoint, len(depthMap))
	copy(points, depthMap)
	sort.Slice(points, func(i, j int) bool { return points[i].Position < points[j].Position })
	return Berth{Length: length, Depth: depth, DepthMap: points}
}

// DepthAt returns the water depth at a position along the quay: the uniform
// depth if one is set, otherwise the depth of the last map entry at or before
// the position. With no profile at all the berth is treated as unrestricted.
func (b Berth) DepthAt(position int) float64 {
	if b.Depth != nil {
		return *b.Depth
	}
	if len(b.DepthMap) > 0 {
		result := 0.0
		for _, p := range b.DepthMap {
			if p.Position > position {
				break
			}
			result = p.Depth
		}
		return result
	}
	return math.Inf(1)
}
