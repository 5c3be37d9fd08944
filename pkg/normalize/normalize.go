// Package normalize turns heterogeneous frame sources into canonical
// single-frame GIF buffers for the assembler. A source may be a decoded
// image.Image, a file path, an http(s) URL, or raw image bytes.
package normalize

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/kerosindigital/GifCreator-NextGen/pkg/gifcreator"
)

var (
	// ErrUnsupportedSource is returned for sources that are neither a
	// decodable image, an existing path, a URL, nor raw image bytes.
	ErrUnsupportedSource = errors.New("normalize: unsupported frame source")
	// ErrSourceRead is returned when a path or URL source cannot be read.
	ErrSourceRead = errors.New("normalize: unable to read frame source")
	// ErrDecode is returned when source bytes cannot be decoded as an image.
	ErrDecode = errors.New("normalize: unable to decode frame source")
)

// Source is one frame input: an image.Image, a file path or http(s) URL
// string, or raw bytes of any registered image format.
type Source interface{}

var client = &http.Client{Timeout: 30 * time.Second}

// Frame converts a single source into a validated single-frame GIF buffer.
// GIF bytes pass through untouched after validation; everything else is
// decoded and re-encoded as a paletted GIF frame.
func Frame(ctx context.Context, src Source) ([]byte, error) {
	switch s := src.(type) {
	case image.Image:
		return encodeImage(s)
	case []byte:
		return fromBytes(s)
	case string:
		if _, err := os.Stat(s); err == nil {
			data, err := os.ReadFile(s)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrSourceRead, err)
			}
			return fromBytes(data)
		}
		if u, err := url.Parse(s); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
			data, err := fetch(ctx, s)
			if err != nil {
				return nil, err
			}
			return fromBytes(data)
		}
		return nil, fmt.Errorf("%w: %q is neither an existing path nor a URL", ErrUnsupportedSource, s)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedSource, src)
	}
}

// All normalizes every source concurrently, preserving order. The first
// failure cancels the remaining fetches and is reported with its frame
// index.
func All(ctx context.Context, sources []Source) ([][]byte, error) {
	frames := make([][]byte, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			buf, err := Frame(ctx, src)
			if err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			frames[i] = buf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return frames, nil
}

func fromBytes(data []byte) ([]byte, error) {
	if len(data) >= 6 {
		if sig := string(data[:6]); sig == "GIF87a" || sig == "GIF89a" {
			if err := gifcreator.ValidateFrame(data); err != nil {
				return nil, err
			}
			return data, nil
		}
	}
	m, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	log.Debug().Str("format", format).Msg("re-encoding frame source as GIF")
	return encodeImage(m)
}

func encodeImage(m image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := gif.Encode(&buf, m, &gif.Options{NumColors: 256}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return buf.Bytes(), nil
}

func fetch(ctx context.Context, rawurl string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawurl, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceRead, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceRead, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", ErrSourceRead, rawurl, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceRead, err)
	}
	log.Debug().Str("url", rawurl).Int("bytes", len(data)).Msg("fetched frame source")
	return data, nil
}
