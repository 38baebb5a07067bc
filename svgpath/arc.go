package svgpath

import "math"

// maxArcSegmentSpan is the maximum radians a single cubic spline is allowed
// to span when approximating an elliptical arc.
const maxArcSegmentSpan = math.Pi / 8

// arcToBeziers approximates the elliptical arc described by the SVG `A`
// command as a sequence of cubic Bezier segments, by the method of
// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic or
// cubic Bezier curves" (2003). emit is called once per segment with the
// two control points and the segment endpoint.
func arcToBeziers(startX, startY, rx, ry, rotDeg float64, largeArc, sweep bool, endX, endY float64, emit func(c1x, c1y, c2x, c2y, x, y float64)) {
	if rx == 0 || ry == 0 {
		emit(startX, startY, endX, endY, endX, endY)
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	rotX := rotDeg * math.Pi / 180

	cx, cy := findEllipseCenter(&rx, &ry, rotX, startX, startY, endX, endY, sweep, !largeArc)

	startAngle := math.Atan2(startY-cy, startX-cx) - rotX
	endAngle := math.Atan2(endY-cy, endX-cx) - rotX
	deltaTheta := endAngle - startAngle
	arcBig := math.Abs(deltaTheta) > math.Pi

	sinTheta, cosTheta := math.Sin(rotX), math.Cos(rotX)
	etaStart := math.Atan2(math.Sin(startAngle)/ry, math.Cos(startAngle)/rx)
	etaEnd := math.Atan2(math.Sin(endAngle)/ry, math.Cos(endAngle)/rx)
	deltaEta := etaEnd - etaStart
	if (arcBig && !largeArc) || (!arcBig && largeArc) {
		if deltaEta < 0 {
			deltaEta += 2 * math.Pi
		} else {
			deltaEta -= 2 * math.Pi
		}
	}
	if deltaEta < 0 && sweep {
		deltaEta += 2 * math.Pi
	} else if deltaEta >= 0 && !sweep {
		deltaEta -= 2 * math.Pi
	}

	segs := int(math.Abs(deltaEta)/maxArcSegmentSpan) + 1
	dEta := deltaEta / float64(segs)
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3

	lx, ly := startX, startY
	ldx, ldy := ellipsePrime(rx, ry, sinTheta, cosTheta, etaStart)
	for i := 1; i <= segs; i++ {
		eta := etaStart + dEta*float64(i)
		var px, py float64
		if i == segs {
			px, py = endX, endY
		} else {
			px, py = ellipsePointAt(rx, ry, sinTheta, cosTheta, eta, cx, cy)
		}
		dx, dy := ellipsePrime(rx, ry, sinTheta, cosTheta, eta)
		emit(lx+alpha*ldx, ly+alpha*ldy, px-alpha*dx, py-alpha*dy, px, py)
		lx, ly, ldx, ldy = px, py, dx, dy
	}
}

// EmitArcAsBeziers is the helper a Sink implementation lacking native arc
// support (such as a rasterizer that only consumes lines and cubics) calls
// from its AddArc method to flatten the arc into beziers on itself.
func EmitArcAsBeziers(startX, startY, rx, ry, rotDeg float64, largeArc, sweep bool, endX, endY float64, sink Sink) {
	arcToBeziers(startX, startY, rx, ry, rotDeg, largeArc, sweep, endX, endY, func(c1x, c1y, c2x, c2y, x, y float64) {
		sink.AddBezier(c1x, c1y, c2x, c2y, x, y)
	})
}

func ellipsePrime(a, b, sinTheta, cosTheta, eta float64) (px, py float64) {
	bCosEta := b * math.Cos(eta)
	aSinEta := a * math.Sin(eta)
	px = -aSinEta*cosTheta - bCosEta*sinTheta
	py = -aSinEta*sinTheta + bCosEta*cosTheta
	return
}

func ellipsePointAt(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	aCosEta := a * math.Cos(eta)
	bSinEta := b * math.Sin(eta)
	px = cx + aCosEta*cosTheta - bSinEta*sinTheta
	py = cy + aCosEta*sinTheta + bSinEta*cosTheta
	return
}

// findEllipseCenter locates the ellipse center for the arc endpoint
// parametrization used by SVG, growing ra/rb minimally (preserving their
// ratio) when the requested radii are too small to span the given chord.
func findEllipseCenter(ra, rb *float64, rotX, startX, startY, endX, endY float64, sweep, smallArc bool) (cx, cy float64) {
	cos, sin := math.Cos(rotX), math.Sin(rotX)

	nx, ny := endX-startX, endY-startY
	nx, ny = nx*cos+ny*sin, -nx*sin+ny*cos
	nx *= *rb / *ra

	midX, midY := nx/2, ny/2
	midlenSq := midX*midX + midY*midY

	var hr float64
	if *rb**rb < midlenSq {
		nrb := math.Sqrt(midlenSq)
		if *ra == *rb {
			*ra = nrb
		} else {
			*ra = *ra * nrb / *rb
		}
		*rb = nrb
	} else {
		hr = math.Sqrt(*rb**rb-midlenSq) / math.Sqrt(midlenSq)
	}
	if (sweep && smallArc) || (!sweep && !smallArc) {
		cx = midX + midY*hr
		cy = midY - midX*hr
	} else {
		cx = midX - midY*hr
		cy = midY + midX*hr
	}

	cx *= *ra / *rb
	return cx*cos - cy*sin + startX, cx*sin + cy*cos + startY
}
