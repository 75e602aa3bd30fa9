package level

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"

	"github.com/nlaracuente/personalspace/internal/floor"
)

// Pixel classification thresholds over 8-bit channels.
const (
	alphaOpaque = 0x80
	lumaFloor   = 0x80
	channelHot  = 0x80
)

// FromImage classifies each pixel of img into a layout cell. Transparent
// pixels are gaps, strongly red pixels mark chaser spawns, strongly green
// pixels the player spawn, light pixels floor, and any other opaque pixel
// void.
func FromImage(name string, img image.Image) (*Layout, error) {
	l := &Layout{Name: name, cells: make(map[floor.Coord]CellKind)}
	bounds := img.Bounds()
	playerSeen := false
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := rgba8(img, x, y)
			kind, ok := classifyPixel(r, g, b, a)
			if !ok {
				continue
			}
			c := floor.C(x-bounds.Min.X, y-bounds.Min.Y)
			if kind == CellPlayerSpawn {
				if playerSeen {
					return nil, fmt.Errorf("%w: second spawn pixel at %v", ErrMultiplePlayers, c)
				}
				playerSeen = true
			}
			l.cells[c] = kind
		}
	}
	if len(l.cells) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyLayout)
	}
	return l, nil
}

// Decode reads an image stream (PNG or BMP) into a layout.
func Decode(name string, r io.Reader) (*Layout, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("level: decode %s: %w", name, err)
	}
	return FromImage(name, img)
}

// LoadFile reads a layout from disk, picking the parser by extension:
// .txt for the rune map format, anything else decoded as an image.
func LoadFile(path string) (*Layout, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: read layout: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		return ParseText(name, string(data))
	}
	return Decode(name, bytes.NewReader(data))
}

func rgba8(img image.Image, x, y int) (r, g, b, a uint8) {
	r16, g16, b16, a16 := img.At(x, y).RGBA()
	return uint8(r16 >> 8), uint8(g16 >> 8), uint8(b16 >> 8), uint8(a16 >> 8)
}

func classifyPixel(r, g, b, a uint8) (CellKind, bool) {
	if a < alphaOpaque {
		return 0, false
	}
	if r >= channelHot && int(r) >= 2*int(g) && int(r) >= 2*int(b) {
		return CellChaserSpawn, true
	}
	if g >= channelHot && int(g) >= 2*int(r) && int(g) >= 2*int(b) {
		return CellPlayerSpawn, true
	}
	if luma(r, g, b) >= lumaFloor {
		return CellFloor, true
	}
	return CellVoid, true
}

// luma returns the Rec.601 brightness of an opaque pixel.
func luma(r, g, b uint8) uint8 {
	return uint8((299*int(r) + 587*int(g) + 114*int(b)) / 1000)
}
