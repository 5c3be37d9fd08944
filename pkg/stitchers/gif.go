package stitchers

import (
	"context"
	"image"
	"os"

	"github.com/kerosindigital/GifCreator-NextGen/pkg/gifcreator"
	"github.com/kerosindigital/GifCreator-NextGen/pkg/normalize"
)

// GIFStitcher contains the necessary parameters to create an animated GIF.
type GIFStitcher struct {
	delay     int // hundredths of a second between frames
	loopCount int
}

// NewGIFStitcher returns a pointer to GIFStitcher to create an animated GIF
// from a slice of image.Image.
func NewGIFStitcher(delay, loopCount int) *GIFStitcher {
	return &GIFStitcher{delay: delay, loopCount: loopCount}
}

// Stitch will write the images to the filename in GIF format.
func (s *GIFStitcher) Stitch(images []image.Image, filename string) error {
	sources := make([]normalize.Source, len(images))
	delays := make([]int, len(images))
	for i, m := range images {
		sources[i] = m
		delays[i] = s.delay
	}
	frames, err := normalize.All(context.Background(), sources)
	if err != nil {
		return err
	}
	out, err := gifcreator.New().Create(frames, delays, s.loopCount)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, out, 0644)
}
