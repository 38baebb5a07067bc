package svgdevice

import (
	"golang.org/x/image/math/fixed"

	"github.com/srwiley/rasterx"

	"github.com/gosvgcore/svgcore/svgcore"
	"github.com/gosvgcore/svgcore/svgpath"
)

func (d *RasterDevice) CreatePathGeometry() (svgcore.PathGeometry, error) {
	return &pathGeometry{}, nil
}

func toFixedPoint(m svgpath.Matrix2D, x, y float64) fixed.Point26_6 {
	tx, ty := m.Apply(x, y)
	return fixed.Point26_6{X: fixed.Int26_6(tx * 64), Y: fixed.Int26_6(ty * 64)}
}

// replay feeds geometry's recorded operations into drawer after mapping
// every point through transform, mirroring the teacher's
// SvgPath.drawTransformed/Operation.drawTo pairing (svgicon/draw.go,
// svgicon/path.go): geometry itself never knows about the current
// transform, only the draw call does.
func replay(geometry *pathGeometry, transform svgpath.Matrix2D, drawer rasterx.Drawer) {
	for _, op := range geometry.ops {
		switch op.kind {
		case opMove:
			drawer.Stop(false)
			drawer.Start(toFixedPoint(transform, op.x, op.y))
		case opLine:
			drawer.Line(toFixedPoint(transform, op.x, op.y))
		case opQuad:
			drawer.QuadBezier(toFixedPoint(transform, op.x0, op.y0), toFixedPoint(transform, op.x, op.y))
		case opCubic:
			drawer.CubeBezier(
				toFixedPoint(transform, op.x0, op.y0),
				toFixedPoint(transform, op.x1, op.y1),
				toFixedPoint(transform, op.x, op.y),
			)
		case opClose:
			drawer.Stop(true)
		}
	}
}

// setScannerColor resolves brush against the scanner's accumulated path
// extent for objectBoundingBox gradients, continuing
// svgraster.setColorFromPattern's split between a plain color and a
// rasterx.Gradient color function.
func setScannerColor(scanner rasterx.Scanner, brush svgcore.Brush, opacity float64) {
	switch b := brush.(type) {
	case solidBrush:
		scanner.SetColor(rasterx.ApplyOpacity(b.c, opacity))
	case gradientBrush:
		grad := b.grad
		if grad.Units == rasterx.ObjectBoundingBox {
			fRect := scanner.GetPathExtent()
			mnx, mny := float64(fRect.Min.X)/64, float64(fRect.Min.Y)/64
			mxx, mxy := float64(fRect.Max.X)/64, float64(fRect.Max.Y)/64
			grad.Bounds = rasterx.Bounds{X: mnx, Y: mny, W: mxx - mnx, H: mxy - mny}
		}
		scanner.SetColor(grad.GetColorFunction(opacity))
	}
}

func (d *RasterDevice) FillGeometry(geometry svgcore.PathGeometry, transform svgpath.Matrix2D, brush svgcore.Brush, opacity float64, winding svgcore.FillRule) error {
	geom, ok := geometry.(*pathGeometry)
	if !ok || brush == nil {
		return nil
	}
	filler := &d.dasher.Filler
	filler.Clear()
	filler.SetWinding(winding == svgcore.NonZero)
	replay(geom, transform, filler)
	filler.Stop(false)
	setScannerColor(filler.Scanner, brush, opacity)
	filler.Draw()
	filler.SetWinding(true)
	return nil
}

func (d *RasterDevice) DrawGeometry(geometry svgcore.PathGeometry, transform svgpath.Matrix2D, brush svgcore.Brush, style svgcore.StrokeStyle, opacity float64) error {
	geom, ok := geometry.(*pathGeometry)
	if !ok || brush == nil {
		return nil
	}
	handle, _ := style.(strokeStyleHandle)
	opts := handle.opts

	dasher := d.dasher
	dasher.Clear()
	dasher.SetStroke(
		fixed.Int26_6(opts.Width*64),
		fixed.Int26_6(opts.MiterLimit*64),
		capToFunc[opts.LeadCap],
		capToFunc[opts.TrailCap],
		rasterx.FlatGap,
		joinToJoin[opts.Join],
		opts.Dash,
		opts.DashOffset,
	)
	replay(geom, transform, dasher)
	dasher.Stop(false)
	setScannerColor(dasher.Scanner, brush, opacity)
	dasher.Draw()
	return nil
}
