package normalize

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kerosindigital/GifCreator-NextGen/pkg/gifcreator"
)

var testPalette = color.Palette{
	color.RGBA{0x00, 0x00, 0x00, 0xFF},
	color.RGBA{0xFF, 0x00, 0x00, 0xFF},
	color.RGBA{0x00, 0xFF, 0x00, 0xFF},
	color.RGBA{0x00, 0x00, 0xFF, 0xFF},
}

func testImage(fill uint8) *image.Paletted {
	m := image.NewPaletted(image.Rect(0, 0, 4, 4), testPalette)
	for i := range m.Pix {
		m.Pix[i] = fill
	}
	return m
}

func gifBytes(t *testing.T, m *image.Paletted) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := gif.Encode(&buf, m, nil); err != nil {
		t.Fatalf("gif.Encode: %v", err)
	}
	return buf.Bytes()
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	m := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range m.Pix {
		m.Pix[i] = 0xFF
	}
	if err := png.Encode(&buf, m); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func assertCanonical(t *testing.T, frame []byte) {
	t.Helper()
	if err := gifcreator.ValidateFrame(frame); err != nil {
		t.Fatalf("normalized frame is not canonical: %v", err)
	}
	if _, err := gif.Decode(bytes.NewReader(frame)); err != nil {
		t.Fatalf("normalized frame does not decode: %v", err)
	}
}

func TestFrameFromImage(t *testing.T) {
	frame, err := Frame(context.Background(), testImage(2))
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	assertCanonical(t, frame)
}

func TestFrameFromGIFBytesPassthrough(t *testing.T) {
	src := gifBytes(t, testImage(1))
	frame, err := Frame(context.Background(), src)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if !bytes.Equal(frame, src) {
		t.Error("GIF bytes were not passed through verbatim")
	}
}

func TestFrameRejectsAnimatedBytes(t *testing.T) {
	var buf bytes.Buffer
	g := &gif.GIF{
		Image: []*image.Paletted{testImage(1), testImage(2)},
		Delay: []int{5, 5},
	}
	if err := gif.EncodeAll(&buf, g); err != nil {
		t.Fatalf("gif.EncodeAll: %v", err)
	}
	_, err := Frame(context.Background(), buf.Bytes())
	if !errors.Is(err, gifcreator.ErrAnimatedSource) {
		t.Fatalf("err = %v, want ErrAnimatedSource", err)
	}
}

func TestFrameFromPNGBytes(t *testing.T) {
	frame, err := Frame(context.Background(), pngBytes(t))
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	assertCanonical(t, frame)
}

func TestFrameFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := os.WriteFile(path, pngBytes(t), 0644); err != nil {
		t.Fatal(err)
	}
	frame, err := Frame(context.Background(), path)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	assertCanonical(t, frame)
}

func TestFrameFromURL(t *testing.T) {
	src := gifBytes(t, testImage(3))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(src)
	}))
	defer srv.Close()

	frame, err := Frame(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if !bytes.Equal(frame, src) {
		t.Error("fetched GIF bytes were not passed through verbatim")
	}
}

func TestFrameFromURLFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Frame(context.Background(), srv.URL)
	if !errors.Is(err, ErrSourceRead) {
		t.Fatalf("err = %v, want ErrSourceRead", err)
	}
}

func TestFrameUnsupportedSources(t *testing.T) {
	for _, src := range []Source{42, "no/such/file-or-url"} {
		if _, err := Frame(context.Background(), src); !errors.Is(err, ErrUnsupportedSource) {
			t.Errorf("Frame(%v): err = %v, want ErrUnsupportedSource", src, err)
		}
	}
}

func TestFrameUndecodableBytes(t *testing.T) {
	_, err := Frame(context.Background(), []byte("definitely not an image"))
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
}

func TestAllPreservesOrder(t *testing.T) {
	sources := []Source{
		gifBytes(t, testImage(1)),
		gifBytes(t, testImage(2)),
		gifBytes(t, testImage(3)),
	}
	frames, err := All(context.Background(), sources)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	for i, frame := range frames {
		m, err := gif.Decode(bytes.NewReader(frame))
		if err != nil {
			t.Fatalf("frame %d does not decode: %v", i, err)
		}
		if got := m.(*image.Paletted).Pix[0]; got != uint8(i+1) {
			t.Errorf("frame %d decoded fill = %d, want %d", i, got, i+1)
		}
	}
}

func TestAllReportsFrameIndex(t *testing.T) {
	sources := []Source{gifBytes(t, testImage(1)), 42}
	_, err := All(context.Background(), sources)
	if !errors.Is(err, ErrUnsupportedSource) {
		t.Fatalf("err = %v, want ErrUnsupportedSource", err)
	}
	if !strings.Contains(err.Error(), "frame 1") {
		t.Errorf("error %q does not name the offending frame", err)
	}
}
