// Command record periodically captures still frames from a video device,
// stamps them with the capture time and saves them for later assembly.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kerosindigital/GifCreator-NextGen/pkg/caption"
	"github.com/kerosindigital/GifCreator-NextGen/pkg/capturers/gocvcapture"
)

const (
	dateFormatImg  = "2006-01-02 15:04:05"
	dateFormatFile = "2006-01-02--15-04-05"
)

var (
	deviceID     = flag.Int("device", 0, "0 based index of recording device to use.")
	timeInterval = flag.Duration("interval", 1*time.Minute, "how often to capture an image.")
	filePath     = flag.String("filepath", ".", "path to store resultant images.")
)

// ImageCapturer defines the contract for capturing an image from a video device.
type ImageCapturer interface {
	Capture() (image.Image, error)
}

func saveImage(i image.Image, directory, filename string) error {
	file := filepath.Join(directory, filename)
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, i); err != nil {
		return err
	}
	symFile := filepath.Join(directory, "latest.png")
	// Remove existing symlink if there.
	if _, err := os.Lstat(symFile); err == nil {
		os.Remove(symFile)
	}
	return os.Symlink(file, symFile)
}

func runRecord(capturer ImageCapturer) error {
	i, err := capturer.Capture()
	if err != nil {
		return err
	}
	dst, ok := i.(draw.Image)
	if !ok {
		return errors.New("captured image is not drawable")
	}
	caption.Label(dst, time.Now().Format(dateFormatImg))
	t := fmt.Sprintf("%s.png", time.Now().Format(dateFormatFile))
	return saveImage(dst, *filePath, t)
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.InfoLevel)
	flag.Parse()

	ticker := time.NewTicker(*timeInterval)
	c := gocvcapture.New(*deviceID)
	for range ticker.C {
		if err := runRecord(c); err != nil {
			log.Fatal().Err(err).Msg("error recording frame")
		}
	}
}
