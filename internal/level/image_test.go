package level

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/nlaracuente/personalspace/internal/floor"
)

var (
	pxFloor  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	pxVoid   = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	pxPlayer = color.RGBA{G: 0xff, A: 0xff}
	pxChaser = color.RGBA{R: 0xff, A: 0xff}
)

// testImage mirrors the text layout "C..\n.P.\n .x".
func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			img.SetRGBA(x, y, pxFloor)
		}
	}
	img.SetRGBA(0, 0, pxChaser)
	img.SetRGBA(1, 1, pxPlayer)
	img.SetRGBA(2, 2, pxVoid)
	img.SetRGBA(0, 2, color.RGBA{})
	return img
}

func TestFromImage(t *testing.T) {
	l, err := FromImage("img", testImage())
	if err != nil {
		t.Fatalf("from image: %v", err)
	}
	if l.Len() != 8 {
		t.Fatalf("Expected 8 cells (one transparent gap), got %d", l.Len())
	}
	cases := []struct {
		coord floor.Coord
		want  CellKind
	}{
		{floor.C(0, 0), CellChaserSpawn},
		{floor.C(1, 1), CellPlayerSpawn},
		{floor.C(2, 2), CellVoid},
		{floor.C(1, 0), CellFloor},
	}
	for _, c := range cases {
		got, ok := l.Kind(c.coord)
		if !ok || got != c.want {
			t.Errorf("cell %v: got (%v,%v) want %v", c.coord, got, ok, c.want)
		}
	}
	if _, ok := l.Kind(floor.C(0, 2)); ok {
		t.Error("transparent pixel must not hold a cell")
	}
}

func TestFromImageMatchesTextFingerprint(t *testing.T) {
	lt, err := ParseText("text", "C..\n.P.\n .x\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	li, err := FromImage("img", testImage())
	if err != nil {
		t.Fatalf("from image: %v", err)
	}
	if lt.Fingerprint() != li.Fingerprint() {
		t.Errorf("one shape from two sources must fingerprint equal:\n%s\nvs\n%s", lt, li)
	}
}

func TestDecodePNGAndBMP(t *testing.T) {
	// BMP has no reliable alpha round trip, so the encode legs use a
	// fully opaque image.
	img := testImage()
	img.SetRGBA(0, 2, pxFloor)
	direct, err := FromImage("direct", img)
	if err != nil {
		t.Fatalf("from image: %v", err)
	}

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	fromPNG, err := Decode("png", &pngBuf)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if fromPNG.Fingerprint() != direct.Fingerprint() {
		t.Error("png round trip changed the layout")
	}

	var bmpBuf bytes.Buffer
	if err := bmp.Encode(&bmpBuf, img); err != nil {
		t.Fatalf("encode bmp: %v", err)
	}
	fromBMP, err := Decode("bmp", &bmpBuf)
	if err != nil {
		t.Fatalf("decode bmp: %v", err)
	}
	if fromBMP.Fingerprint() != direct.Fingerprint() {
		t.Error("bmp round trip changed the layout")
	}
}

func TestDecodeGarbageFails(t *testing.T) {
	if _, err := Decode("junk", bytes.NewReader([]byte("not an image"))); err == nil {
		t.Fatal("Expected a decode error")
	}
}
