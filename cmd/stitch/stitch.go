// Command stitch combines a directory of still images into one animated
// file, either a looping GIF or an MJPEG, selected by the output extension.
package main

import (
	"errors"
	"flag"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kerosindigital/GifCreator-NextGen/pkg/stitchers"
)

// ErrUnsupportedFileFormat is returned when the output extension matches no stitcher.
var ErrUnsupportedFileFormat = errors.New("unsupported file format")

// StitchFormat represents available file extensions for stitching.
type StitchFormat string

const (
	// MJPEG is a file format where each frame is compressed seperately as a JPEG.
	MJPEG StitchFormat = ".mjpeg"
	// GIF only supports up to 256 colours.
	GIF StitchFormat = ".gif"
)

var (
	stitchWidth     = flag.Int("width", 640, "width to use in the stitched file.")
	stitchHeight    = flag.Int("height", 480, "height to use in the stitched file.")
	stitchDirectory = flag.String("directory", "./", "directory full of stills to stitch together.")
	filename        = flag.String("filename", "out.gif", "file to write the result to.")
	fps             = flag.Int("fps", 10, "frames per second to use in the output.")
	loopCount       = flag.Int("loop", 0, "number of GIF animation loops, 0 loops forever.")
)

// ImageStitcher defines the contract for taking multiple images and stitching them into a video.
type ImageStitcher interface {
	Stitch([]image.Image, string) error
}

func parseStitcher() (ImageStitcher, error) {
	switch ff := StitchFormat(filepath.Ext(*filename)); ff {
	case MJPEG:
		w, h, fps := int32(*stitchWidth), int32(*stitchHeight), int32(*fps)
		return stitchers.NewMJPEGStitcher(w, h, fps), nil
	case GIF:
		delay := 100 / *fps // hundredths of a second per frame
		return stitchers.NewGIFStitcher(delay, *loopCount), nil
	default:
		log.Error().Str("format", string(ff)).Msg("unknown file format")
		return nil, ErrUnsupportedFileFormat
	}
}

func isStill(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".gif":
		return true
	}
	return false
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.InfoLevel)
	flag.Parse()

	c, err := parseStitcher()
	if err != nil {
		log.Fatal().Err(err).Msg("unable to pick a stitcher")
	}

	var files []image.Image
	fs, err := os.ReadDir(*stitchDirectory)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to read directory")
	}
	for _, f := range fs {
		if !isStill(f.Name()) {
			continue
		}
		fh, err := os.Open(filepath.Join(*stitchDirectory, f.Name()))
		if err != nil {
			log.Fatal().Err(err).Str("file", f.Name()).Msg("unable to open still")
		}
		m, _, err := image.Decode(fh)
		fh.Close()
		if err != nil {
			log.Fatal().Err(err).Str("file", f.Name()).Msg("unable to decode still")
		}
		files = append(files, m)
	}
	if err := c.Stitch(files, *filename); err != nil {
		log.Fatal().Err(err).Msg("error stitching")
	}
	log.Info().Str("filename", *filename).Int("frames", len(files)).Msg("stitched")
}
