package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJPEGMetadataSegments(t *testing.T) {
	base := jpegBytes(t, gradient(8, 8), 90)
	app0 := []byte("JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
	icc := []byte("ICC_PROFILE\x00\x01\x01fake")
	exif := []byte("Exif\x00\x00II*\x00")

	// Inserted in reverse: final order is APP1, APP2, APP0.
	src := withJPEGSegment(base, 0xE0, app0)
	src = withJPEGSegment(src, markerAPP2, icc)
	src = withJPEGSegment(src, markerAPP1, exif)

	segs, err := JPEGMetadataSegments(src)
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, byte(markerAPP1), segs[0][1])
	assert.Equal(t, byte(markerAPP2), segs[1][1])

	out, err := CopyJPEGMetadata(src, base, true)
	require.NoError(t, err)
	again, err := JPEGMetadataSegments(out)
	require.NoError(t, err)
	assert.Equal(t, segs, again)
}

func TestJPEGMetadataSegments_FillBytes(t *testing.T) {
	base := jpegBytes(t, gradient(8, 8), 90)
	src := withJPEGSegment(base, markerAPP1, []byte("Exif\x00\x00"))
	// Pad the APP1 marker with a fill byte.
	padded := append([]byte{0xFF, 0xD8, 0xFF}, src[2:]...)

	segs, err := JPEGMetadataSegments(padded)
	require.NoError(t, err)
	assert.Len(t, segs, 1)
}

func TestJPEGMetadataSegments_Malformed(t *testing.T) {
	_, err := JPEGMetadataSegments([]byte("nope"))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = JPEGMetadataSegments([]byte{0xFF, 0xD8, 0xFF, 0xE1, 0xFF, 0xFF})
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestCopyJPEGMetadata_NothingToCopy(t *testing.T) {
	base := jpegBytes(t, gradient(8, 8), 90)
	out, err := CopyJPEGMetadata(base, base, true)
	require.NoError(t, err)
	assert.Equal(t, base, out)
}

func TestCopyJPEGMetadata_DropsICC(t *testing.T) {
	base := jpegBytes(t, gradient(8, 8), 90)
	src := withJPEGSegment(base, markerAPP2, []byte("ICC_PROFILE\x00\x01\x01cmyk"))
	src = withJPEGSegment(src, markerAPP1, []byte("Exif\x00\x00II*\x00"))

	out, err := CopyJPEGMetadata(src, base, false)
	require.NoError(t, err)
	segs, err := JPEGMetadataSegments(out)
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, byte(markerAPP1), segs[0][1])
}

func TestCopyJPEGMetadata_AfterJFIF(t *testing.T) {
	app0 := []byte("JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
	encoded := withJPEGSegment(jpegBytes(t, gradient(8, 8), 90), markerAPP0, app0)
	src := withJPEGSegment(jpegBytes(t, gradient(8, 8), 90), markerAPP1, []byte("Exif\x00\x00"))

	out, err := CopyJPEGMetadata(src, encoded, true)
	require.NoError(t, err)
	assert.Equal(t, byte(markerAPP0), out[3], "JFIF stays first")
	next := 4 + len(app0) + 2
	assert.Equal(t, []byte{0xFF, markerAPP1}, out[next:next+2])
}

func TestPNGMetadataChunks(t *testing.T) {
	base := pngBytes(t, gradient(4, 4))
	phys := pngChunk("pHYs", []byte{0, 0, 0x0b, 0x13, 0, 0, 0x0b, 0x13, 1})
	private := pngChunk("prVt", []byte("x"))
	src := withPNGChunk(withPNGChunk(base, private), phys)

	chunks, err := PNGMetadataChunks(src)
	require.NoError(t, err)
	require.Len(t, chunks, 1, "private chunks are not carried")
	assert.Equal(t, phys, chunks[0])
}

func TestPNGMetadataChunks_Malformed(t *testing.T) {
	_, err := PNGMetadataChunks([]byte("GIF89a"))
	assert.ErrorIs(t, err, ErrMalformed)

	base := pngBytes(t, gradient(4, 4))
	truncated := withPNGChunk(base, []byte{0, 0, 0xff, 0xff, 't', 'E', 'X', 't'})
	_, err = PNGMetadataChunks(truncated[:8+25+8])
	assert.ErrorIs(t, err, ErrMalformed)
}
