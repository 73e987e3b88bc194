package codec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // registered so GIFs are sniffed and reported, not failed
	"image/jpeg"
	"image/png"
	"math"
	"os"

	"github.com/gen2brain/jpegli"
	"github.com/spf13/afero"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/backmassage/mediacompress/internal/naming"
	"github.com/backmassage/mediacompress/internal/planner"
)

// Image re-encodes JPEG and PNG files, downscaling them so the smaller side
// is at most the profile's minimum dimension. Encoding is deterministic:
// the same input and profile always produce the same bytes.
type Image struct {
	Fs afero.Fs
}

// Compress implements [Codec].
func (c *Image) Compress(ctx context.Context, input string, temp naming.IntendedPath, plan *planner.FilePlan) (naming.ResolvedPath, error) {
	if err := ctx.Err(); err != nil {
		return naming.ResolvedPath{}, err
	}

	data, err := afero.ReadFile(c.Fs, input)
	if err != nil {
		return naming.ResolvedPath{}, fmt.Errorf("read image: %w", err)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		return naming.ResolvedPath{}, fmt.Errorf("%w: unknown image format", ErrUnrecognized)
	}
	if err != nil {
		return naming.ResolvedPath{}, fmt.Errorf("read %s header: %w", format, err)
	}

	var ext string
	switch format {
	case "jpeg":
		ext = ".jpg"
	case "png":
		ext = ".png"
	default:
		return naming.ResolvedPath{}, fmt.Errorf("%w: detected %s", ErrUnrecognized, format)
	}
	cand := temp.WithExt(ext)

	img, err := decode(format, data)
	if err != nil {
		return naming.ResolvedPath{}, fmt.Errorf("decode %s: %w", format, err)
	}
	keepICC := keepsICC(img)
	img = Downscale(img, plan.Image.MinDimension)

	out, err := encode(format, img, data, plan.Image, keepICC)
	if err != nil {
		return naming.ResolvedPath{}, err
	}
	if err := c.write(cand, out); err != nil {
		return naming.ResolvedPath{}, err
	}
	return cand, nil
}

func decode(format string, data []byte) (image.Image, error) {
	if format == "jpeg" {
		return jpeg.Decode(bytes.NewReader(data))
	}
	return png.Decode(bytes.NewReader(data))
}

// keepsICC reports whether the source's ICC profile still describes the
// re-encoded pixels. A CMYK JPEG is written as YCbCr, so its CMYK profile
// no longer applies.
func keepsICC(decoded image.Image) bool {
	_, cmyk := decoded.(*image.CMYK)
	return !cmyk
}

// encode re-encodes img in format and carries src's metadata over. keepICC
// controls whether JPEG APP2 segments are copied.
func encode(format string, img image.Image, src []byte, p planner.ImageProfile, keepICC bool) ([]byte, error) {
	var buf bytes.Buffer
	if format == "jpeg" {
		// Encode from RGB so the profile's subsampling applies whatever
		// layout the source decoded to.
		switch img.(type) {
		case *image.NRGBA, *image.RGBA, *image.Gray:
		default:
			img = toNRGBA(img)
		}
		opts := &jpegli.EncodingOptions{
			Quality:           p.JPEGQuality,
			ChromaSubsampling: p.JPEGSubsampling,
			OptimizeCoding:    true,
		}
		if err := jpegli.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
		return CopyJPEGMetadata(src, buf.Bytes(), keepICC)
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return CopyPNGMetadata(src, buf.Bytes())
}

// write creates the candidate exclusively and removes it again on any
// write error.
func (c *Image) write(cand naming.ResolvedPath, data []byte) error {
	f, err := c.Fs.OpenFile(cand.String(), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create candidate: %w", err)
	}
	_, werr := f.Write(data)
	cerr := f.Close()
	if werr == nil {
		werr = cerr
	}
	if werr != nil {
		_ = c.Fs.Remove(cand.String())
		return fmt.Errorf("write candidate: %w", werr)
	}
	return nil
}

// ScaledSize returns the dimensions of a w x h image whose smaller side is
// reduced to minDim, each side rounded half to even. Images whose smaller
// side is already at most minDim keep their size.
func ScaledSize(w, h, minDim int) (int, int) {
	short := min(w, h)
	if minDim <= 0 || short <= minDim {
		return w, h
	}
	scale := float64(minDim) / float64(short)
	return int(math.RoundToEven(scale * float64(w))), int(math.RoundToEven(scale * float64(h)))
}

func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Downscale resizes img with Catmull-Rom resampling when its smaller side
// exceeds minDim, and returns img unchanged otherwise.
func Downscale(img image.Image, minDim int) image.Image {
	b := img.Bounds()
	w, h := ScaledSize(b.Dx(), b.Dy(), minDim)
	if w == b.Dx() && h == b.Dy() {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
