package replay

import "zoomview/pkg/geometry"

func pointer(x, y float64) *geometry.Point {
	p := geometry.Pt(x, y)
	return &p
}

func geometrySize(w, h float64) geometry.Size {
	return geometry.NewSize(w, h)
}

func sizePtr(w, h float64) *geometry.Size {
	s := geometry.NewSize(w, h)
	return &s
}
