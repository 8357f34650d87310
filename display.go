package edgeview

// DisplayState holds the placement a rendering backend applies when drawing
// a Drawable. The values never affect pixel data.
type DisplayState struct {
	// X, Y is the translation of the image origin in view coordinates.
	X, Y int

	// ScaleX, ScaleY stretch the image; 1 is the natural size.
	ScaleX, ScaleY float64

	// Angle is the rotation in degrees around the Z axis.
	Angle float64

	// FlipX, FlipY mirror the image horizontally and vertically.
	FlipX, FlipY bool

	// HotspotX, HotspotY is the anchor point in image coordinates.
	HotspotX, HotspotY int
}

// Drawable couples a pipeline result with its display state and the choice
// of which buffer to show.
//
// Drawable is not safe for concurrent mutation; the buffers it references
// are read-only and may be shared.
type Drawable struct {
	result        *PipelineResult
	state         DisplayState
	showProcessed bool
}

// NewDrawable wraps res with an identity display state showing the raw image.
func NewDrawable(res *PipelineResult) *Drawable {
	return &Drawable{
		result: res,
		state:  DisplayState{ScaleX: 1, ScaleY: 1},
	}
}

// Width returns the image width in pixels.
func (d *Drawable) Width() int {
	return d.result.Width
}

// Height returns the image height in pixels.
func (d *Drawable) Height() int {
	return d.result.Height
}

// Result returns the wrapped pipeline result.
func (d *Drawable) Result() *PipelineResult {
	return d.result
}

// State returns a copy of the current display state.
func (d *Drawable) State() DisplayState {
	return d.state
}

// Move sets the translation.
func (d *Drawable) Move(x, y int) {
	d.state.X = x
	d.state.Y = y
}

// Scale sets a uniform scale factor.
func (d *Drawable) Scale(k float64) {
	d.state.ScaleX = k
	d.state.ScaleY = k
}

// ScaleXY sets independent horizontal and vertical scale factors.
func (d *Drawable) ScaleXY(x, y float64) {
	d.state.ScaleX = x
	d.state.ScaleY = y
}

// FitTo scales the image so it fills a viewWidth x viewHeight viewport.
func (d *Drawable) FitTo(viewWidth, viewHeight int) {
	if d.result.Width == 0 || d.result.Height == 0 {
		return
	}
	d.ScaleXY(float64(viewWidth)/float64(d.result.Width), float64(viewHeight)/float64(d.result.Height))
}

// Rotate sets the rotation angle in degrees.
func (d *Drawable) Rotate(degrees float64) {
	d.state.Angle = degrees
}

// SetFlip sets horizontal and vertical mirroring.
func (d *Drawable) SetFlip(x, y bool) {
	d.state.FlipX = x
	d.state.FlipY = y
}

// SetHotspot sets the anchor point.
func (d *Drawable) SetHotspot(x, y int) {
	d.state.HotspotX = x
	d.state.HotspotY = y
}

// ShowProcessed selects the edge visualization (true) or the raw image.
func (d *Drawable) ShowProcessed(show bool) {
	d.showProcessed = show
}

// Toggle switches between the raw and processed buffers and reports
// whether the processed buffer is now shown.
func (d *Drawable) Toggle() bool {
	d.showProcessed = !d.showProcessed
	return d.showProcessed
}

// IsProcessedShown reports whether Current returns the processed buffer.
func (d *Drawable) IsProcessedShown() bool {
	return d.showProcessed
}

// Current returns the buffer a renderer should upload.
func (d *Drawable) Current() *RawBuffer {
	if d.showProcessed {
		return d.result.Processed
	}
	return d.result.Raw
}
