package jdx

import (
	"math"

	"github.com/sciformats/jdx/internal/asdf"
	"github.com/sciformats/jdx/internal/ldrlex"
	"github.com/sciformats/jdx/internal/textio"
)

// xppYYAbscissa computes the i-th reconstructed abscissa the same way
// reconstructXppYY does, for use by readXppYYValues's optional X check.
func xppYYAbscissa(firstX, lastX float64, nPoints uint64, i int) float64 {
	nominator := lastX - firstX
	denominator := float64(nPoints - 1)
	if nPoints <= 1 {
		nominator = firstX
		denominator = 1
	}
	return firstX + nominator/denominator*float64(i)
}

// readXppYYValues reads the Y column of an "(X++(Y..Y))" encoded data
// body. The leading value on each line is a nominal abscissa; the
// standard never requires it to be checked, so it is discarded unless
// strictXCheck is set, in which case it is compared (after scaling by
// xFactor) against the abscissa reconstructXppYY would compute for
// that position. X itself is always reconstructed later from
// FirstX/LastX/NPoints by reconstructXppYY, regardless of this check.
// The reader is left positioned at the start of the line that ended
// the body (always an LDR start, since every block is terminated by
// "##END=").
func readXppYYValues(r *textio.Reader, firstX, lastX, xFactor float64, nPoints uint64, strictXCheck bool) ([]float64, error) {
	var (
		yValues []float64
		yCheck  *float64
		pos     = r.Tell()
	)
	for {
		if r.Eof() {
			return nil, newErr(KindIo, "end of input before next LDR in data body")
		}
		line, _ := r.ReadLine()
		if ldrlex.IsLdrStart(line) {
			r.Seek(pos)
			break
		}
		pos = r.Tell()

		content, _ := ldrlex.StripLineComment(line)
		values, lastIsDif, err := asdf.DecodeLine(content, false, nil)
		if err != nil {
			return nil, wrapErr(KindAsdfSyntax, err, "failed to decode data line: %s", line)
		}
		if len(values) == 0 {
			continue
		}
		nominalX := values[0]
		lineY := values[1:]

		if strictXCheck && len(lineY) > 0 {
			index := len(yValues)
			if yCheck != nil {
				// the line's first Y repeats the previous line's last Y
				index--
			}
			expected := xppYYAbscissa(firstX, lastX, nPoints, index)
			tolerance := math.Max(1e-6, math.Abs(xppYYAbscissa(firstX, lastX, nPoints, 1)-xppYYAbscissa(firstX, lastX, nPoints, 0))*xFactor*0.5)
			if math.Abs(nominalX*xFactor-expected) > tolerance {
				return nil, newErr(KindYCheck, "x value check failed in line: %s", line)
			}
		}

		if yCheck != nil && len(lineY) > 0 {
			if math.Abs(lineY[0]-*yCheck) > 1 {
				return nil, newErr(KindYCheck, "y value check failed in line: %s", line)
			}
			yValues = yValues[:len(yValues)-1]
		}
		yValues = append(yValues, lineY...)

		reset := !lastIsDif || len(lineY) == 0 ||
			(len(lineY) == 1 && math.IsNaN(lineY[0])) ||
			(len(lineY) >= 2 && (math.IsNaN(lineY[len(lineY)-1]) || math.IsNaN(lineY[len(lineY)-2])))
		if reset {
			yCheck = nil
		} else {
			last := lineY[len(lineY)-1]
			yCheck = &last
		}
	}
	return yValues, nil
}

// readXyXyValues reads an "(XY..XY)" encoded data body into raw,
// unscaled (X, Y) pairs. A value with no matching Y on the final line
// is an error, not a point with NaN Y — unlike a point whose Y was
// itself encoded as "?".
func readXyXyValues(r *textio.Reader) ([]Point, error) {
	var (
		points      []Point
		lastIsXOnly bool
		pos         = r.Tell()
	)
	for {
		if r.Eof() {
			return nil, newErr(KindIo, "end of input before next LDR in data body")
		}
		line, _ := r.ReadLine()
		if ldrlex.IsLdrStart(line) {
			r.Seek(pos)
			break
		}
		pos = r.Tell()

		content, _ := ldrlex.StripLineComment(line)
		values, _, err := asdf.DecodeLine(content, false, nil)
		if err != nil {
			return nil, wrapErr(KindAsdfSyntax, err, "failed to decode data line: %s", line)
		}
		for _, v := range values {
			if lastIsXOnly {
				points[len(points)-1].Y = v
				lastIsXOnly = false
				continue
			}
			if math.IsNaN(v) {
				return nil, newErr(KindAsdfSyntax, "NaN value encountered as x value in line: %s", line)
			}
			points = append(points, Point{X: v, Y: math.NaN()})
			lastIsXOnly = true
		}
	}
	if lastIsXOnly {
		return nil, newErr(KindAsdfSyntax, "uneven number of xy values, no y value for x value %g", points[len(points)-1].X)
	}
	return points, nil
}

// reconstructXppYY turns a decoded Y column into (X, Y) points: X is
// linearly interpolated between firstX and lastX over nPoints samples
// (collapsing to firstX when nPoints == 1, matching the standard's own
// degenerate-case formula), and Y is scaled by yFactor.
func reconstructXppYY(yRaw []float64, firstX, lastX, yFactor float64, nPoints uint64) ([]Point, error) {
	if uint64(len(yRaw)) != nPoints {
		return nil, newErr(KindNPointsMismatch, "NPOINTS is %d, actual point count is %d", nPoints, len(yRaw))
	}
	points := make([]Point, 0, len(yRaw))
	if nPoints == 0 {
		return points, nil
	}
	nominator := lastX - firstX
	denominator := float64(nPoints - 1)
	if nPoints == 1 {
		nominator = firstX
		denominator = 1
	}
	for i, yr := range yRaw {
		x := firstX + nominator/denominator*float64(i)
		points = append(points, Point{X: x, Y: yFactor * yr})
	}
	return points, nil
}

// scaleXyXy applies xFactor/yFactor to raw XY pairs already decoded by
// readXyXyValues.
func scaleXyXy(raw []Point, xFactor, yFactor float64, nPoints uint64) ([]Point, error) {
	if uint64(len(raw)) != nPoints {
		return nil, newErr(KindNPointsMismatch, "NPOINTS is %d, actual point count is %d", nPoints, len(raw))
	}
	points := make([]Point, len(raw))
	for i, p := range raw {
		points[i] = Point{X: p.X * xFactor, Y: p.Y * yFactor}
	}
	return points, nil
}
