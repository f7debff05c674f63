// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package services

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"log/slog"
	"math"
	"time"

	// registered decoders for image.DecodeConfig and image.Decode
	_ "image/gif"
	_ "image/png"

	"github.com/boxer32/waykeeper-brand-hub/dtos"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	// images above this size are downscaled before they are sent to the model
	maxVisionBytes = 20 * 1024 * 1024
	maxVisionSide  = 2048
	visionQuality  = 85

	metersPerInch = 0.0254
)

type ImageInspector struct {
	maxVisionBytes int
	maxVisionSide  int
}

func NewImageInspector() *ImageInspector {
	return &ImageInspector{
		maxVisionBytes: maxVisionBytes,
		maxVisionSide:  maxVisionSide,
	}
}

func colorSpaceName(model color.Model) string {
	switch model {
	case color.GrayModel, color.Gray16Model:
		return "b-w"
	case color.CMYKModel:
		return "cmyk"
	}
	return "srgb"
}

// Inspect reads what can be known about the image without trusting the client.
func (i *ImageInspector) Inspect(data []byte) (dtos.ImageMeta, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return dtos.ImageMeta{}, fmt.Errorf("could not read image header: %w", err)
	}

	meta := dtos.ImageMeta{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Format:     format,
		ColorSpace: colorSpaceName(cfg.ColorModel),
	}

	switch format {
	case "png":
		meta.DPI = pngDPI(data)
		if hasPNGChunk(data, "iCCP") {
			meta.ICCProfile = "present"
		}
	case "jpeg":
		meta.DPI = jfifDPI(data)
		if hasJPEGICC(data) {
			meta.ICCProfile = "present"
		}
	case "webp":
		if hasWebPChunk(data, "ICCP") {
			meta.ICCProfile = "present"
		}
	}

	exifData, exifDPI := decodeExif(data)
	meta.Exif = exifData
	if meta.DPI == nil {
		meta.DPI = exifDPI
	}

	return meta, nil
}

// decodeExif reads the exif block of the image. A block goexif cannot handle is
// treated as absent.
func decodeExif(data []byte) (exifData *dtos.ExifData, dpi *float64) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("ignoring unreadable exif data", "err", r)
			exifData, dpi = nil, nil
		}
	}()

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil
	}
	return readExif(x), exifFloat(x, exif.XResolution)
}

// PrepareForVision returns the bytes to send to the model. Oversized images are
// scaled to fit the max side, never enlarged, and re-encoded as jpeg.
func (i *ImageInspector) PrepareForVision(data []byte, mime string) ([]byte, string, error) {
	if len(data) <= i.maxVisionBytes {
		return data, mime, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("could not decode image for resizing: %w", err)
	}

	b := src.Bounds()
	w, h := fitInside(b.Dx(), b.Dy(), i.maxVisionSide)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: visionQuality}); err != nil {
		return nil, "", fmt.Errorf("could not encode resized image: %w", err)
	}
	return buf.Bytes(), "image/jpeg", nil
}

func fitInside(w, h, maxSide int) (int, int) {
	if w <= maxSide && h <= maxSide {
		return w, h
	}
	scale := math.Min(float64(maxSide)/float64(w), float64(maxSide)/float64(h))
	return max(1, int(math.Round(float64(w)*scale))), max(1, int(math.Round(float64(h)*scale)))
}

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// pngChunks calls fn for every chunk until fn returns false.
func pngChunks(data []byte, fn func(typ string, body []byte) bool) {
	if !bytes.HasPrefix(data, pngSignature) {
		return
	}
	offset := len(pngSignature)
	for offset+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[offset:]))
		typ := string(data[offset+4 : offset+8])
		start := offset + 8
		end := start + length
		if length < 0 || end+4 > len(data) {
			return
		}
		if !fn(typ, data[start:end]) || typ == "IEND" {
			return
		}
		offset = end + 4
	}
}

func hasPNGChunk(data []byte, chunk string) bool {
	found := false
	pngChunks(data, func(typ string, _ []byte) bool {
		if typ == chunk {
			found = true
		}
		// ancillary metadata chunks come before the image data
		return !found && typ != "IDAT"
	})
	return found
}

func pngDPI(data []byte) *float64 {
	var dpi *float64
	pngChunks(data, func(typ string, body []byte) bool {
		if typ != "pHYs" {
			return typ != "IDAT"
		}
		// unit 1 is pixels per meter, 0 is only an aspect ratio
		if len(body) == 9 && body[8] == 1 {
			ppm := float64(binary.BigEndian.Uint32(body[0:4]))
			v := math.Round(ppm * metersPerInch)
			dpi = &v
		}
		return false
	})
	return dpi
}

// jpegSegments calls fn for every marker segment before the scan data.
func jpegSegments(data []byte, fn func(marker byte, body []byte) bool) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return
	}
	offset := 2
	for offset+4 <= len(data) {
		if data[offset] != 0xFF {
			return
		}
		marker := data[offset+1]
		if marker == 0xDA || marker == 0xD9 {
			return
		}
		length := int(binary.BigEndian.Uint16(data[offset+2:]))
		if length < 2 || offset+2+length > len(data) {
			return
		}
		if !fn(marker, data[offset+4:offset+2+length]) {
			return
		}
		offset += 2 + length
	}
}

func jfifDPI(data []byte) *float64 {
	var dpi *float64
	jpegSegments(data, func(marker byte, body []byte) bool {
		if marker != 0xE0 || len(body) < 12 || !bytes.HasPrefix(body, []byte("JFIF\x00")) {
			return true
		}
		units := body[7]
		x := float64(binary.BigEndian.Uint16(body[8:10]))
		switch units {
		case 1:
			dpi = &x
		case 2:
			v := math.Round(x * 2.54)
			dpi = &v
		}
		return false
	})
	return dpi
}

func hasJPEGICC(data []byte) bool {
	found := false
	jpegSegments(data, func(marker byte, body []byte) bool {
		if marker == 0xE2 && bytes.HasPrefix(body, []byte("ICC_PROFILE\x00")) {
			found = true
		}
		return !found
	})
	return found
}

func hasWebPChunk(data []byte, chunk string) bool {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		return false
	}
	offset := 12
	for offset+8 <= len(data) {
		typ := string(data[offset : offset+4])
		size := int(binary.LittleEndian.Uint32(data[offset+4:]))
		if typ == chunk {
			return true
		}
		// chunks are padded to an even size
		offset += 8 + size + size%2
	}
	return false
}

func exifTag(x *exif.Exif, name exif.FieldName) *tiff.Tag {
	tag, err := x.Get(name)
	if err != nil {
		return nil
	}
	return tag
}

func exifString(x *exif.Exif, name exif.FieldName) string {
	tag := exifTag(x, name)
	if tag == nil || tag.Format() != tiff.StringVal {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return s
}

func exifFloat(x *exif.Exif, name exif.FieldName) *float64 {
	tag := exifTag(x, name)
	if tag == nil || tag.Count == 0 {
		return nil
	}
	switch tag.Format() {
	case tiff.RatVal:
		// unknown values are commonly written as 0/0
		num, den, err := tag.Rat2(0)
		if err != nil || den == 0 {
			return nil
		}
		f := float64(num) / float64(den)
		return &f
	case tiff.IntVal:
		v, err := tag.Int(0)
		if err != nil {
			return nil
		}
		f := float64(v)
		return &f
	case tiff.FloatVal:
		f, err := tag.Float(0)
		if err != nil {
			return nil
		}
		return &f
	}
	return nil
}

func exifInt(x *exif.Exif, name exif.FieldName) *int {
	f := exifFloat(x, name)
	if f == nil {
		return nil
	}
	v := int(math.Round(*f))
	return &v
}

const exifTimeLayout = "2006:01:02 15:04:05"

func exifTime(x *exif.Exif, name exif.FieldName) string {
	raw := exifString(x, name)
	if raw == "" {
		return ""
	}
	t, err := time.ParseInLocation(exifTimeLayout, raw, time.UTC)
	if err != nil {
		return raw
	}
	return t.Format(time.RFC3339)
}

var exifColorSpaces = map[int]string{1: "sRGB", 0xFFFF: "Uncalibrated"}

func readExif(x *exif.Exif) *dtos.ExifData {
	data := &dtos.ExifData{
		CameraMake:        exifString(x, exif.Make),
		CameraModel:       exifString(x, exif.Model),
		LensMake:          exifString(x, exif.LensMake),
		LensModel:         exifString(x, exif.LensModel),
		DateTimeOriginal:  exifTime(x, exif.DateTimeOriginal),
		DateTimeDigitized: exifTime(x, exif.DateTimeDigitized),
		DateTime:          exifTime(x, exif.DateTime),
		FNumber:           exifFloat(x, exif.FNumber),
		ExposureTime:      exifFloat(x, exif.ExposureTime),
		ISO:               exifInt(x, exif.ISOSpeedRatings),
		FocalLength:       exifFloat(x, exif.FocalLength),
		FocalLengthIn35mm: exifInt(x, exif.FocalLengthIn35mmFilm),
		Flash:             exifInt(x, exif.Flash),
		WhiteBalance:      exifInt(x, exif.WhiteBalance),
		MeteringMode:      exifInt(x, exif.MeteringMode),
		ExposureMode:      exifInt(x, exif.ExposureMode),
		ExposureProgram:   exifInt(x, exif.ExposureProgram),
		Software:          exifString(x, exif.Software),
		Artist:            exifString(x, exif.Artist),
		Copyright:         exifString(x, exif.Copyright),
		ImageDescription:  exifString(x, exif.ImageDescription),
		Compression:       exifInt(x, exif.Compression),
		BitsPerSample:     exifInt(x, exif.BitsPerSample),
		SamplesPerPixel:   exifInt(x, exif.SamplesPerPixel),
	}

	if o := exifInt(x, exif.Orientation); o != nil {
		data.Orientation = fmt.Sprint(*o)
	}
	if cs := exifInt(x, exif.ColorSpace); cs != nil {
		if name, ok := exifColorSpaces[*cs]; ok {
			data.ColorSpace = name
		} else {
			data.ColorSpace = fmt.Sprint(*cs)
		}
	}
	xr, yr := exifFloat(x, exif.XResolution), exifFloat(x, exif.YResolution)
	if xr != nil && yr != nil {
		data.Resolution = fmt.Sprintf("%g x %g", *xr, *yr)
	}
	if lat, lng, err := x.LatLong(); err == nil {
		data.GPS = &dtos.GPSData{Lat: &lat, Lng: &lng, Altitude: exifFloat(x, exif.GPSAltitude)}
	}
	return data
}
