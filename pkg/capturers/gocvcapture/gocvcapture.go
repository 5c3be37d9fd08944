// Package gocvcapture retrieves still frames from a video capture device.
package gocvcapture

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// GocvCapturer exports a single Capture method to retrieve images
// from a capture device.
type GocvCapturer struct {
	deviceID int
}

// New returns an instance of GocvCapturer that is capable of retrieving
// images from the supplied deviceID.
func New(deviceID int) *GocvCapturer {
	return &GocvCapturer{deviceID: deviceID}
}

// Capture returns an image, or error if unable to capture from the device.
func (g *GocvCapturer) Capture() (image.Image, error) {
	webcam, err := gocv.VideoCaptureDevice(g.deviceID)
	if err != nil {
		return nil, fmt.Errorf("unable to open video capture device: %v", g.deviceID)
	}
	defer webcam.Close()

	img := gocv.NewMat()
	defer img.Close()

	if ok := webcam.Read(&img); !ok {
		return nil, fmt.Errorf("cannot read device %v", g.deviceID)
	}
	if img.Empty() {
		return nil, fmt.Errorf("no image on device %v", g.deviceID)
	}

	return img.ToImage()
}
