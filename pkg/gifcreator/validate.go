package gifcreator

import (
	"fmt"
)

// frameInfo is one canonical input frame plus its precomputed offsets. The
// byte slice is borrowed from the caller and never mutated.
type frameInfo struct {
	data      []byte
	packed    byte // logical screen descriptor packed field
	tableSize int  // color table entries, 0 when the table flag is clear
	dataStart int  // offset of the first block past the color table
}

// colorTable returns the frame's color table as an RGB-triplet slice.
func (f frameInfo) colorTable() []byte {
	return f.data[headerSize : headerSize+3*f.tableSize]
}

// parseFrame validates one canonical frame and precomputes its offsets.
// Frames that are themselves animated (carrying a NETSCAPE application
// extension) are refused rather than flattened.
func parseFrame(data []byte) (frameInfo, error) {
	if len(data) < headerSize {
		return frameInfo{}, fmt.Errorf("%w: truncated header", ErrNotGIF)
	}
	if sig := string(data[:6]); sig != "GIF87a" && sig != "GIF89a" {
		return frameInfo{}, ErrNotGIF
	}

	f := frameInfo{data: data, packed: data[10]}
	if f.packed&0x80 != 0 {
		f.tableSize = 2 << (f.packed & 0x07)
	}
	f.dataStart = headerSize + 3*f.tableSize
	// Descriptor plus trailer at minimum, 8 more when a graphic control
	// extension precedes the descriptor.
	min := f.dataStart + 11
	if len(data) > f.dataStart && data[f.dataStart] == extensionIntroducer {
		min += 8
	}
	if len(data) < min {
		return frameInfo{}, fmt.Errorf("%w: truncated stream", ErrNotGIF)
	}
	if err := scanForAnimation(data, f.dataStart); err != nil {
		return frameInfo{}, err
	}
	return f, nil
}

// scanForAnimation walks the frame's block region looking for a NETSCAPE
// application extension, the marker of an animated source. The scan stops
// at the first trailer byte.
func scanForAnimation(data []byte, start int) error {
	for j := start; j < len(data); j++ {
		switch data[j] {
		case trailer:
			return nil
		case extensionIntroducer:
			if j+11 <= len(data) && string(data[j+3:j+11]) == "NETSCAPE" {
				return ErrAnimatedSource
			}
		}
	}
	return nil
}

// ValidateFrame reports whether data is acceptable as a single input frame:
// a GIF87a/GIF89a stream with no NETSCAPE extension.
func ValidateFrame(data []byte) error {
	_, err := parseFrame(data)
	return err
}
