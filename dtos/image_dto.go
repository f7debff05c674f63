package dtos

// ImageFile is a design image as received from an upload or fetched from a url.
type ImageFile struct {
	Name string
	Mime string
	Data []byte
	// SizeBytes is the size reported by the sender, nil if unknown.
	SizeBytes *int64
}

// ImageMeta is what the server could read from the image bytes itself.
type ImageMeta struct {
	Width      int
	Height     int
	DPI        *float64
	ColorSpace string
	ICCProfile string
	Format     string
	Exif       *ExifData
}

// CheckInput is a compliance check request after the transport specific parsing.
type CheckInput struct {
	Source         InputSource
	File           ImageFile
	ImageURL       string
	ClientMetadata *ClientMetadata
}
