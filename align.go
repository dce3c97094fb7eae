package arbor

import "slices"

// Alignment and distribution reposition the direct 2D children of a node
// along one axis. They read each child's size and pivot percentage, so a
// child's edges are located without recomputing its transform. Children of
// other kinds are left untouched.

// AlignHorizontally moves every 2D child so that the edge selected by mode
// sits on the vertical line x. AlignCenter places the pivot on x.
func AlignHorizontally(parent Element, x float64, mode HorizontalAlign) {
	for _, c := range children2D(parent) {
		pos := c.Position()
		c.SetPosition(alignOffset(x, c.PivotPercentage().X, c.Size().X, uint8(mode)), pos.Y)
	}
}

// AlignVertically moves every 2D child so that the edge selected by mode
// sits on the horizontal line y.
func AlignVertically(parent Element, y float64, mode VerticalAlign) {
	for _, c := range children2D(parent) {
		pos := c.Position()
		c.SetPosition(pos.X, alignOffset(y, c.PivotPercentage().Y, c.Size().Y, uint8(mode)))
	}
}

// alignOffset returns the pivot coordinate that puts the selected edge on
// line. mode is 0 for the near edge, 1 for the centre, 2 for the far edge.
func alignOffset(line, pivotPct, size float64, mode uint8) float64 {
	switch mode {
	case 0:
		return line + pivotPct*size
	case 2:
		return line - (1-pivotPct)*size
	default:
		return line
	}
}

// DistributeHorizontally sorts the 2D children by X and spreads them evenly
// across the horizontal extent of their combined bounds. AlignLeft spaces
// the left edges, AlignRight the right edges and AlignCenter the pivots.
// Fewer than two children, or children with no bounds, leave the layout as is.
func DistributeHorizontally(parent Element, mode HorizontalAlign) {
	kids, bounds, ok := distributionSet(parent, CompareByX)
	if !ok {
		return
	}
	first, last := kids[0], kids[len(kids)-1]
	steps := float64(len(kids) - 1)

	switch mode {
	case AlignLeft:
		x := bounds.Min.X
		inc := (bounds.Width() - last.Size().X) / steps
		for _, c := range kids {
			c.SetPosition(x+c.PivotPercentage().X*c.Size().X, c.Position().Y)
			x += inc
		}
	case AlignCenter:
		firstOff := first.PivotPercentage().X * first.Size().X
		lastOff := last.PivotPercentage().X * last.Size().X
		x := bounds.Min.X + firstOff
		inc := (bounds.Width() - firstOff - lastOff) / steps
		for _, c := range kids {
			c.SetPosition(x, c.Position().Y)
			x += inc
		}
	case AlignRight:
		x := bounds.Min.X + first.Size().X
		inc := (bounds.Width() - first.Size().X) / steps
		for _, c := range kids {
			c.SetPosition(x-(1-c.PivotPercentage().X)*c.Size().X, c.Position().Y)
			x += inc
		}
	}
}

// DistributeVertically is DistributeHorizontally along the Y axis.
func DistributeVertically(parent Element, mode VerticalAlign) {
	kids, bounds, ok := distributionSet(parent, CompareByY)
	if !ok {
		return
	}
	first, last := kids[0], kids[len(kids)-1]
	steps := float64(len(kids) - 1)

	switch mode {
	case AlignTop:
		y := bounds.Min.Y
		inc := (bounds.Height() - last.Size().Y) / steps
		for _, c := range kids {
			c.SetPosition(c.Position().X, y+c.PivotPercentage().Y*c.Size().Y)
			y += inc
		}
	case AlignMiddle:
		firstOff := first.PivotPercentage().Y * first.Size().Y
		lastOff := last.PivotPercentage().Y * last.Size().Y
		y := bounds.Min.Y + firstOff
		inc := (bounds.Height() - firstOff - lastOff) / steps
		for _, c := range kids {
			c.SetPosition(c.Position().X, y)
			y += inc
		}
	case AlignBottom:
		y := bounds.Min.Y + first.Size().Y
		inc := (bounds.Height() - first.Size().Y) / steps
		for _, c := range kids {
			c.SetPosition(c.Position().X, y-(1-c.PivotPercentage().Y)*c.Size().Y)
			y += inc
		}
	}
}

// distributionSet returns the sorted 2D children of parent and the union of
// their bounds. ok is false when there is nothing to distribute.
func distributionSet(parent Element, compare func(a, b *Node2D) int) ([]*Node2D, Rect, bool) {
	kids := children2D(parent)
	if len(kids) < 2 {
		return nil, Rect{}, false
	}
	bounds := EmptyRect()
	for _, c := range kids {
		bounds = bounds.Include(c.Bounds())
	}
	if bounds.IsEmpty() {
		return nil, Rect{}, false
	}
	slices.SortStableFunc(kids, compare)
	return kids, bounds, true
}

// children2D collects the direct 2D children of parent into a new slice.
func children2D(parent Element) []*Node2D {
	if isNilElement(parent) {
		return nil
	}
	n := parent.TreeNode()
	out := make([]*Node2D, 0, len(n.children))
	for _, c := range n.children {
		if v := c.As2D(); v != nil {
			out = append(out, v)
		}
	}
	return out
}
