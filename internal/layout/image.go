package layout

// Placement is the uniform scale and centering offsets that fit one image
// inside one cell without cropping.
type Placement struct {
	Scale   float64
	OffsetX float64
	OffsetY float64

	// Width and Height are the scaled image dimensions.
	Width  float64
	Height float64
}

// ComputePlacement fits an imgW x imgH image inside a cellW x cellH cell.
// An image relatively wider than the cell is scaled to the cell width,
// otherwise to the cell height, so the result never exceeds the cell on
// either axis. Non-positive inputs yield the zero Placement.
func ComputePlacement(imgW, imgH, cellW, cellH float64) Placement {
	if imgW <= 0 || imgH <= 0 || cellW <= 0 || cellH <= 0 {
		return Placement{}
	}

	var scale float64
	if imgW/imgH > cellW/cellH {
		scale = cellW / imgW
	} else {
		scale = cellH / imgH
	}

	w := imgW * scale
	h := imgH * scale
	return Placement{
		Scale:   scale,
		OffsetX: (cellW - w) / 2,
		OffsetY: (cellH - h) / 2,
		Width:   w,
		Height:  h,
	}
}

// Rect returns the rectangle the scaled image occupies inside cell.
func (p Placement) Rect(cell Rect) Rect {
	return Rect{
		X: cell.X + p.OffsetX,
		Y: cell.Y + p.OffsetY,
		W: p.Width,
		H: p.Height,
	}
}
