package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrMalformed is returned when a container cannot be walked far enough to
// copy its metadata.
var ErrMalformed = errors.New("malformed image container")

// JPEG markers.
const (
	markerSOI  = 0xD8
	markerEOI  = 0xD9
	markerSOS  = 0xDA
	markerAPP0 = 0xE0 // JFIF
	markerAPP1 = 0xE1 // Exif, XMP
	markerAPP2 = 0xE2 // ICC profile
	markerTEM  = 0x01
	markerRST0 = 0xD0
	markerRST7 = 0xD7
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// pngMetadataChunks are the ancillary chunks carried from source to
// candidate. They describe color, density, time or text and stay valid
// after re-encoding and resizing.
var pngMetadataChunks = map[string]bool{
	"eXIf": true, "iCCP": true, "sRGB": true, "gAMA": true, "cHRM": true,
	"pHYs": true, "tIME": true, "tEXt": true, "zTXt": true, "iTXt": true,
}

// JPEGMetadataSegments returns the APP1 and APP2 segments of a JPEG stream,
// marker and length included, in file order.
func JPEGMetadataSegments(src []byte) ([][]byte, error) {
	if len(src) < 2 || src[0] != 0xFF || src[1] != markerSOI {
		return nil, fmt.Errorf("%w: missing JPEG SOI", ErrMalformed)
	}
	var segs [][]byte
	i := 2
	for i < len(src) {
		if src[i] != 0xFF {
			return nil, fmt.Errorf("%w: expected marker at offset %d", ErrMalformed, i)
		}
		// Fill bytes may precede a marker.
		for i+1 < len(src) && src[i+1] == 0xFF {
			i++
		}
		if i+1 >= len(src) {
			break
		}
		marker := src[i+1]
		if marker == markerSOS || marker == markerEOI {
			break
		}
		if marker == markerTEM || (marker >= markerRST0 && marker <= markerRST7) {
			i += 2
			continue
		}
		if i+4 > len(src) {
			return nil, fmt.Errorf("%w: truncated segment header", ErrMalformed)
		}
		n := int(binary.BigEndian.Uint16(src[i+2 : i+4]))
		end := i + 2 + n
		if n < 2 || end > len(src) {
			return nil, fmt.Errorf("%w: bad segment length at offset %d", ErrMalformed, i)
		}
		if marker == markerAPP1 || marker == markerAPP2 {
			segs = append(segs, src[i:end])
		}
		i = end
	}
	return segs, nil
}

// CopyJPEGMetadata returns encoded with src's APP1 segments, and its APP2
// segments when keepICC is set, inserted after the SOI marker and any
// leading JFIF APP0 segment.
func CopyJPEGMetadata(src, encoded []byte, keepICC bool) ([]byte, error) {
	all, err := JPEGMetadataSegments(src)
	if err != nil {
		return nil, err
	}
	segs := all[:0:0]
	for _, s := range all {
		if s[1] == markerAPP2 && !keepICC {
			continue
		}
		segs = append(segs, s)
	}
	if len(segs) == 0 {
		return encoded, nil
	}
	if len(encoded) < 2 || encoded[0] != 0xFF || encoded[1] != markerSOI {
		return nil, fmt.Errorf("%w: encoder output lacks SOI", ErrMalformed)
	}
	at := 2
	if len(encoded) >= 6 && encoded[2] == 0xFF && encoded[3] == markerAPP0 {
		at = 4 + int(binary.BigEndian.Uint16(encoded[4:6]))
		if at > len(encoded) {
			return nil, fmt.Errorf("%w: encoder output has a bad APP0 segment", ErrMalformed)
		}
	}
	var out bytes.Buffer
	out.Grow(len(encoded) + 64*1024)
	out.Write(encoded[:at])
	for _, s := range segs {
		out.Write(s)
	}
	out.Write(encoded[at:])
	return out.Bytes(), nil
}

// PNGMetadataChunks returns src's metadata chunks (length, type, data and
// CRC) in file order.
func PNGMetadataChunks(src []byte) ([][]byte, error) {
	if !bytes.HasPrefix(src, pngSignature) {
		return nil, fmt.Errorf("%w: missing PNG signature", ErrMalformed)
	}
	var chunks [][]byte
	i := len(pngSignature)
	for i+8 <= len(src) {
		n := int(binary.BigEndian.Uint32(src[i : i+4]))
		typ := string(src[i+4 : i+8])
		end := i + 12 + n
		if n < 0 || end > len(src) {
			return nil, fmt.Errorf("%w: chunk %q overruns file", ErrMalformed, typ)
		}
		if pngMetadataChunks[typ] {
			chunks = append(chunks, src[i:end])
		}
		if typ == "IEND" {
			break
		}
		i = end
	}
	return chunks, nil
}

// CopyPNGMetadata returns encoded with src's metadata chunks inserted
// directly after IHDR, which keeps iCCP/sRGB/gAMA/cHRM ahead of PLTE and
// IDAT as the format requires.
func CopyPNGMetadata(src, encoded []byte) ([]byte, error) {
	chunks, err := PNGMetadataChunks(src)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return encoded, nil
	}
	const ihdrEnd = 8 + 12 + 13 // signature + IHDR framing + IHDR data
	if len(encoded) < ihdrEnd || string(encoded[12:16]) != "IHDR" {
		return nil, fmt.Errorf("%w: encoder output lacks IHDR", ErrMalformed)
	}
	var out bytes.Buffer
	out.Grow(len(encoded) + 64*1024)
	out.Write(encoded[:ihdrEnd])
	for _, c := range chunks {
		out.Write(c)
	}
	out.Write(encoded[ihdrEnd:])
	return out.Bytes(), nil
}
