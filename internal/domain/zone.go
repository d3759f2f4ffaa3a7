package domain

// ForbiddenZone is a rectangle in the (berth position, shift index) plane
// where no vessel footprint may be present, e.g. quay wall maintenance or
// dredging. Position and shift ranges are half-open.
type ForbiddenZone struct {
	StartPosition int
	EndPosition   int
	StartShift    int
	EndShift      int
	Description   string
}

// YardQuayZone is a quay stretch fronting a yard block. Vessels with cargo
// destined for the zone prefer mooring close to its center.
type YardQuayZone struct {
	ID        int
	StartDist int
	EndDist   int
}

func (z YardQuayZone) Center() int {
	return (z.StartDist + z.EndDist) / 2
}
