// Package gifcreator assembles an animated GIF89a stream out of
// independently encoded single-frame GIF images. It is a block-level
// multiplexer: pixel data is copied through untouched, while per-frame
// timing, disposal, transparency and the loop count are synthesized fresh.
package gifcreator

import (
	"bytes"
	"errors"
	"fmt"
)

const (
	extensionIntroducer = 0x21
	graphicControlLabel = 0xF9
	applicationLabel    = 0xFF
	imageSeparator      = 0x2C
	trailer             = 0x3B

	// 6-byte signature plus 7-byte logical screen descriptor.
	headerSize = 13

	disposalRestoreBackground = 2

	noTransparency = -1
)

var (
	// ErrNoFrames is returned when Create is given an empty frame list.
	ErrNoFrames = errors.New("gifcreator: no frames given (needs at least 1)")
	// ErrNotGIF is returned when a frame does not carry a GIF87a/GIF89a signature.
	ErrNotGIF = errors.New("gifcreator: frame is not a GIF87a or GIF89a image")
	// ErrAnimatedSource is returned when a frame is itself an animated GIF.
	ErrAnimatedSource = errors.New("gifcreator: animated GIF frames are not supported")
)

// Creator builds animated GIFs. It retains the last sealed stream for
// Result; a single Creator must not be shared by concurrent Create calls.
type Creator struct {
	gif []byte
}

// New returns a Creator ready for its first Create call.
func New() *Creator { return &Creator{} }

// Create assembles the given single-frame GIF buffers into one animated
// stream. durations holds per-frame delays in hundredths of a second; a
// missing entry defaults to 0. loopCount is the number of animation loops,
// 0 (or any negative value, which is clamped) meaning loop forever.
//
// Frame 0 is authoritative for the output's screen descriptor and global
// color table. When frame 0 carries no global color table the stream
// degrades to a minimal container without a screen descriptor or loop
// extension. On any error no output is retained.
func (c *Creator) Create(frames [][]byte, durations []int, loopCount int) ([]byte, error) {
	c.Reset()
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	if loopCount < 0 {
		loopCount = 0
	}

	infos := make([]frameInfo, len(frames))
	for i, data := range frames {
		info, err := parseFrame(data)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		infos[i] = info
	}

	a := &assembly{
		frames:      infos,
		loopCount:   loopCount,
		transparent: resolveTransparency(infos[0]),
	}
	a.out.WriteString("GIF89a")
	a.writeHeader()
	for i := range infos {
		delay := 0
		if i < len(durations) {
			delay = durations[i]
		}
		a.writeFrame(i, delay)
	}
	a.out.WriteByte(trailer)

	c.gif = a.out.Bytes()
	return c.gif, nil
}

// Reset discards the last sealed stream.
func (c *Creator) Reset() { c.gif = nil }

// Result returns the stream sealed by the most recent successful Create,
// or nil if there is none.
func (c *Creator) Result() []byte { return c.gif }

// assembly is the transient state of one Create call.
type assembly struct {
	out         bytes.Buffer
	frames      []frameInfo
	loopCount   int
	transparent int // packed 0xRRGGBB, noTransparency when unset
	imgBuilt    bool
}

func (a *assembly) writeHeader() {
	f := a.frames[0]
	if f.tableSize == 0 {
		return
	}
	a.out.Write(f.data[6:headerSize])
	a.out.Write(f.colorTable())
	a.writeLoopExtension()
}

func (a *assembly) writeLoopExtension() {
	a.out.Write([]byte{extensionIntroducer, applicationLabel, 0x0B})
	a.out.WriteString("NETSCAPE2.0")
	a.out.Write([]byte{0x03, 0x01, byte(a.loopCount), byte(a.loopCount >> 8), 0x00})
}

func (a *assembly) writeFrame(i, delay int) {
	f := a.frames[i]
	locals := f.data[f.dataStart : len(f.data)-1]

	gce := a.graphicControl(f, delay)

	// Some encoders prepend their own graphic control extension; it is
	// discarded since a fresh one is synthesized per frame.
	var descriptor, imageData []byte
	if locals[0] == extensionIntroducer {
		descriptor = locals[8:18]
		imageData = locals[18:]
	} else {
		descriptor = locals[0:10]
		imageData = locals[10:]
	}

	a.out.Write(gce)
	global := a.frames[0]
	switch {
	case f.tableSize == 0 || !a.imgBuilt:
		a.out.Write(descriptor)
	case f.tableSize == global.tableSize && bytes.Equal(f.colorTable(), global.colorTable()):
		// Identical to the global table: the frame relies on it.
		a.out.Write(descriptor)
	default:
		// Promote the frame's table to a local color table.
		packed := descriptor[9]
		packed |= 0x80
		packed &= 0xF8
		packed |= f.packed & 0x07
		a.out.Write(descriptor[:9])
		a.out.WriteByte(packed)
		a.out.Write(f.colorTable())
	}
	a.out.Write(imageData)
	a.imgBuilt = true
}

// graphicControl synthesizes the 8-byte graphic control extension for one
// frame. Disposal is fixed at "restore to background". When a transparent
// color was resolved from frame 0 and it occurs in this frame's color
// table, the transparency flag is set with the first matching index.
func (a *assembly) graphicControl(f frameInfo, delay int) []byte {
	gce := []byte{
		extensionIntroducer, graphicControlLabel, 0x04,
		disposalRestoreBackground << 2,
		byte(delay), byte(delay >> 8),
		0x00, 0x00,
	}
	if a.transparent == noTransparency || f.tableSize == 0 {
		return gce
	}
	table := f.colorTable()
	for j := 0; j < f.tableSize; j++ {
		if packRGB(table[3*j:]) == a.transparent {
			gce[3] = disposalRestoreBackground<<2 | 0x01
			gce[6] = byte(j)
			break
		}
	}
	return gce
}

// resolveTransparency inspects frame 0's own graphic control extension, if
// any, and resolves its transparent index to a packed RGB value against
// frame 0's color table. Transparency is a first-frame-only policy.
func resolveTransparency(f frameInfo) int {
	data := f.data
	for j := f.dataStart; j+6 < len(data); j++ {
		switch data[j] {
		case imageSeparator, trailer:
			return noTransparency
		case extensionIntroducer:
			if data[j+1] != graphicControlLabel || data[j+2] != 0x04 {
				continue
			}
			if data[j+3]&0x01 == 0 {
				return noTransparency
			}
			idx := int(data[j+6])
			if idx >= f.tableSize {
				return noTransparency
			}
			return packRGB(f.colorTable()[3*idx:])
		}
	}
	return noTransparency
}

func packRGB(triplet []byte) int {
	return int(triplet[0])<<16 | int(triplet[1])<<8 | int(triplet[2])
}
