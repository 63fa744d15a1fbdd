// internal/stages/send/screenshots.go
package send

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
)

// Renderer produces the mock screenshot frames for one simulated send.
type Renderer func(participant, message string) ([][]byte, error)

const (
	frameWidth  = 800
	frameHeight = 400
)

// MockScreenshots renders the three simulation frames: platform
// landing, message composition, and sent confirmation.
func MockScreenshots(participant, message string) ([][]byte, error) {
	accents := []color.RGBA{
		{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff},
		{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff},
		{R: 0x2e, G: 0x8b, B: 0x57, A: 0xff},
	}

	frames := make([][]byte, 0, len(accents))
	for _, accent := range accents {
		frame, err := renderFrame(accent)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

// DiagnosticImage renders the single fallback frame used when
// screenshot rendering fails. Encoding errors are swallowed, the
// frame is best effort by then.
func DiagnosticImage() []byte {
	frame, err := renderFrame(color.RGBA{R: 0xcc, G: 0x33, B: 0x33, A: 0xff})
	if err != nil {
		return nil
	}
	return frame
}

func renderFrame(accent color.RGBA) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, frameWidth, frameHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	// Header band.
	draw.Draw(img, image.Rect(0, 0, frameWidth, 60), image.NewUniform(accent), image.Point{}, draw.Src)
	// Message box outline.
	box := image.Rect(80, 100, frameWidth-80, frameHeight-60)
	draw.Draw(img, box, image.NewUniform(color.RGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 0xff}), image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
