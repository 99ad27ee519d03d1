package roi

// findContours extracts external contours from a binary edge map using
// connected-component labeling followed by Moore-neighbor boundary
// tracing on each component, approximating cv2.findContours(edged,
// RETR_EXTERNAL, CHAIN_APPROX_SIMPLE).
func findContours(b binaryImage) []contour {
	visited := make([]bool, b.Width*b.Height)
	var contours []contour

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			idx := y*b.Width + x
			if !b.at(x, y) || visited[idx] {
				continue
			}
			component := floodFill(b, visited, x, y)
			if len(component) < 4 {
				continue
			}
			boundary := traceBoundary(b, component)
			if len(boundary) >= 3 {
				contours = append(contours, contour{points: boundary})
			}
		}
	}
	return contours
}

func floodFill(b binaryImage, visited []bool, startX, startY int) []point {
	stack := []point{{startX, startY}}
	visited[startY*b.Width+startX] = true
	var members []point
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		members = append(members, p)
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || nx >= b.Width || ny < 0 || ny >= b.Height {
					continue
				}
				idx := ny*b.Width + nx
				if visited[idx] || !b.at(nx, ny) {
					continue
				}
				visited[idx] = true
				stack = append(stack, point{nx, ny})
			}
		}
	}
	return members
}

// moore8 lists the 8 neighbor offsets in clockwise order starting west,
// used by the Moore-neighbor tracing walk below.
var moore8 = []point{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

// traceBoundary walks the outer boundary of a connected component using
// Moore-neighbor tracing, starting from the topmost-then-leftmost member.
// membership is the component's pixel set; only members are treated as
// foreground during the walk so the trace stays on this component.
func traceBoundary(b binaryImage, members []point) []point {
	memberSet := make(map[point]bool, len(members))
	for _, p := range members {
		memberSet[p] = true
	}

	start := members[0]
	for _, p := range members[1:] {
		if p.Y < start.Y || (p.Y == start.Y && p.X < start.X) {
			start = p
		}
	}

	boundary := []point{start}
	current := start
	// entryDir indexes the direction we arrived from, so the search for
	// the next boundary pixel starts just after it in clockwise order.
	entryDir := 0
	maxSteps := len(members)*8 + 8

	for step := 0; step < maxSteps; step++ {
		found := false
		for k := 1; k <= 8; k++ {
			dir := (entryDir + k) % 8
			cand := point{current.X + moore8[dir].X, current.Y + moore8[dir].Y}
			if memberSet[cand] {
				boundary = append(boundary, cand)
				// backtrack direction for the next search is the opposite
				// of the direction we just moved in.
				entryDir = (dir + 4) % 8
				current = cand
				found = true
				break
			}
		}
		if !found {
			break
		}
		if current == start && len(boundary) > 1 {
			break
		}
	}
	return boundary
}
