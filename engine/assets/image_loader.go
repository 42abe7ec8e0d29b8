package assets

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// LoadImage decodes an image file into tightly packed RGBA8 pixels,
// row-major with top-left origin. PNG and JPEG are registered.
func LoadImage(path string) (*ImageData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return imageData(img), nil
}

// LoadImageOrFallback substitutes a checkerboard when the file is missing
// or broken, so a bad asset path still renders something visible.
func LoadImageOrFallback(path string) *ImageData {
	img, err := LoadImage(path)
	if err != nil {
		return Checkerboard(64, 8)
	}
	return img
}

// Checkerboard generates the magenta/black placeholder pattern.
func Checkerboard(size, cells int) *ImageData {
	pixels := make([]byte, size*size*4)
	cell := size / cells
	if cell < 1 {
		cell = 1
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			i := (y*size + x) * 4
			if (x/cell+y/cell)%2 == 0 {
				pixels[i], pixels[i+2] = 0xff, 0xff
			}
			pixels[i+3] = 0xff
		}
	}
	return &ImageData{Width: size, Height: size, Pixels: pixels}
}

// imageData repacks any image.Image into tight RGBA rows (stride == 4*w).
func imageData(img image.Image) *ImageData {
	rgba := toRGBA(img)
	w, h := rgba.Bounds().Dx(), rgba.Bounds().Dy()

	out := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		copy(out[y*w*4:(y+1)*w*4], rgba.Pix[y*rgba.Stride:y*rgba.Stride+w*4])
	}
	return &ImageData{Width: w, Height: h, Pixels: out}
}

func toRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Stride == m.Rect.Dx()*4 {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
