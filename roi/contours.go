package roi

import "math"

type point struct{ X, Y int }

type contour struct {
	points []point
}

// area computes the contour's enclosed area via the shoelace formula,
// matching cv2.contourArea.
func (c contour) area() float64 {
	n := len(c.points)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		p1 := c.points[i]
		p2 := c.points[(i+1)%n]
		sum += float64(p1.X)*float64(p2.Y) - float64(p2.X)*float64(p1.Y)
	}
	return math.Abs(sum) / 2
}

// perimeter sums edge lengths around the closed contour, matching
// cv2.arcLength(c, true).
func (c contour) perimeter() float64 {
	n := len(c.points)
	if n < 2 {
		return 0
	}
	var total float64
	for i := 0; i < n; i++ {
		p1 := c.points[i]
		p2 := c.points[(i+1)%n]
		total += math.Hypot(float64(p2.X-p1.X), float64(p2.Y-p1.Y))
	}
	return total
}

type rect struct{ X, Y, W, H int }

// boundingRect returns the axis-aligned bounding box of a set of points,
// matching cv2.boundingRect.
func boundingRect(points []point) rect {
	if len(points) == 0 {
		return rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

func sortByAreaDesc(contours []contour) {
	for i := 1; i < len(contours); i++ {
		for j := i; j > 0 && contours[j].area() > contours[j-1].area(); j-- {
			contours[j], contours[j-1] = contours[j-1], contours[j]
		}
	}
}

// approxPolyDP simplifies a closed point sequence with the Douglas-Peucker
// algorithm, matching cv2.approxPolyDP(c, epsilon, true).
func approxPolyDP(points []point, epsilon float64) []point {
	if len(points) < 3 {
		return points
	}
	// Find the two points farthest apart to split the closed loop into two
	// open polylines, simplify each, then merge.
	i0, i1 := farthestPair(points)
	left := ringSlice(points, i0, i1)
	right := ringSlice(points, i1, i0)

	simplifiedLeft := douglasPeucker(left, epsilon)
	simplifiedRight := douglasPeucker(right, epsilon)

	result := make([]point, 0, len(simplifiedLeft)+len(simplifiedRight))
	result = append(result, simplifiedLeft...)
	result = append(result, simplifiedRight[1:len(simplifiedRight)-1]...)
	return dedupClosed(result)
}

func farthestPair(points []point) (int, int) {
	bestI, bestJ := 0, 0
	var best float64
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			d := distSq(points[i], points[j])
			if d > best {
				best, bestI, bestJ = d, i, j
			}
		}
	}
	return bestI, bestJ
}

func distSq(a, b point) float64 {
	dx, dy := float64(a.X-b.X), float64(a.Y-b.Y)
	return dx*dx + dy*dy
}

// ringSlice returns the points from i to j inclusive, wrapping around the
// slice if j < i.
func ringSlice(points []point, i, j int) []point {
	n := len(points)
	if i <= j {
		out := make([]point, 0, j-i+1)
		out = append(out, points[i:j+1]...)
		return out
	}
	out := make([]point, 0, n-i+j+1)
	out = append(out, points[i:]...)
	out = append(out, points[:j+1]...)
	return out
}

func douglasPeucker(points []point, epsilon float64) []point {
	if len(points) < 3 {
		return points
	}
	start, end := points[0], points[len(points)-1]
	var maxDist float64
	var maxIdx int
	for i := 1; i < len(points)-1; i++ {
		d := perpendicularDistance(points[i], start, end)
		if d > maxDist {
			maxDist, maxIdx = d, i
		}
	}
	if maxDist <= epsilon {
		return []point{start, end}
	}
	left := douglasPeucker(points[:maxIdx+1], epsilon)
	right := douglasPeucker(points[maxIdx:], epsilon)
	return append(left[:len(left)-1], right...)
}

func perpendicularDistance(p, a, b point) float64 {
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	if dx == 0 && dy == 0 {
		return math.Hypot(float64(p.X-a.X), float64(p.Y-a.Y))
	}
	num := math.Abs(dy*float64(p.X-a.X) - dx*float64(p.Y-a.Y))
	den := math.Hypot(dx, dy)
	return num / den
}

func dedupClosed(points []point) []point {
	if len(points) < 2 {
		return points
	}
	out := points[:1]
	for _, p := range points[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	if len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}
