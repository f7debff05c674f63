package dtos

import (
	"encoding/json"
)

type CheckItem struct {
	ID         string   `json:"id,omitempty"`
	Label      string   `json:"label"`
	Pass       *bool    `json:"pass"` // nil means "could not be determined"
	Value      any      `json:"value,omitempty"`
	Evidence   string   `json:"evidence,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
	Weight     *float64 `json:"weight,omitempty"`
	Severity   string   `json:"severity,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

type SectionResult struct {
	Key        string      `json:"key"`
	Label      string      `json:"label"`
	Score      *float64    `json:"score,omitempty"`
	Summary    string      `json:"summary,omitempty"`
	Severity   string      `json:"severity,omitempty"`
	Confidence *float64    `json:"confidence,omitempty"`
	Items      []CheckItem `json:"items"`
}

type SEOAdvice struct {
	RecommendedFileName string `json:"recommendedFileName,omitempty"`
	AltText             string `json:"altText,omitempty"`
	Title               string `json:"title,omitempty"`
	URLSlugHint         string `json:"urlSlugHint,omitempty"`
	Purpose             string `json:"purpose,omitempty"`
	Locale              string `json:"locale,omitempty"`
	Size                string `json:"size,omitempty"`
}

type ReportSuggestions struct {
	VisualFix []string   `json:"visualFix,omitempty"`
	FormatFix []string   `json:"formatFix,omitempty"`
	SEO       *SEOAdvice `json:"seo,omitempty"`
}

type ReportSummary struct {
	OverallScore          int      `json:"overall_score"`
	Pass                  bool     `json:"pass"`
	Severity              string   `json:"severity"`
	Conclusion            string   `json:"conclusion,omitempty"`
	BrandFamiliarityIndex *float64 `json:"brand_familiarity_index,omitempty"`
}

type ScoreSummary struct {
	Overall int                `json:"overall"`
	Weights map[string]float64 `json:"weights"`
}

type GPSData struct {
	Lat      *float64 `json:"lat,omitempty"`
	Lng      *float64 `json:"lng,omitempty"`
	Altitude *float64 `json:"altitude,omitempty"`
}

type ExifData struct {
	CameraMake        string   `json:"cameraMake,omitempty"`
	CameraModel       string   `json:"cameraModel,omitempty"`
	LensMake          string   `json:"lensMake,omitempty"`
	LensModel         string   `json:"lensModel,omitempty"`
	DateTimeOriginal  string   `json:"dateTimeOriginal,omitempty"`
	DateTimeDigitized string   `json:"dateTimeDigitized,omitempty"`
	DateTime          string   `json:"dateTime,omitempty"`
	FNumber           *float64 `json:"fNumber,omitempty"`
	ExposureTime      *float64 `json:"exposureTime,omitempty"`
	ISO               *int     `json:"iso,omitempty"`
	FocalLength       *float64 `json:"focalLength,omitempty"`
	FocalLengthIn35mm *int     `json:"focalLengthIn35mm,omitempty"`
	Flash             *int     `json:"flash,omitempty"`
	WhiteBalance      *int     `json:"whiteBalance,omitempty"`
	MeteringMode      *int     `json:"meteringMode,omitempty"`
	ExposureMode      *int     `json:"exposureMode,omitempty"`
	ExposureProgram   *int     `json:"exposureProgram,omitempty"`
	Orientation       string   `json:"orientation,omitempty"`
	Resolution        string   `json:"resolution,omitempty"`
	ColorSpace        string   `json:"colorSpace,omitempty"`
	GPS               *GPSData `json:"gps,omitempty"`
	Software          string   `json:"software,omitempty"`
	Artist            string   `json:"artist,omitempty"`
	Copyright         string   `json:"copyright,omitempty"`
	ImageDescription  string   `json:"imageDescription,omitempty"`
	Compression       *int     `json:"compression,omitempty"`
	BitsPerSample     *int     `json:"bitsPerSample,omitempty"`
	SamplesPerPixel   *int     `json:"samplesPerPixel,omitempty"`
}

type InputSource string

const (
	InputSourceUpload InputSource = "upload"
	InputSourceURL    InputSource = "url"
)

type InputMeta struct {
	Source     InputSource `json:"source"`
	FileName   string      `json:"fileName"`
	Mime       string      `json:"mime"`
	SizeBytes  *int64      `json:"sizeBytes,omitempty"`
	Width      *int        `json:"width,omitempty"`
	Height     *int        `json:"height,omitempty"`
	DPI        *float64    `json:"dpi,omitempty"`
	ColorSpace string      `json:"colorSpace,omitempty"`
	ICCProfile string      `json:"iccProfile,omitempty"`
	ImageURL   string      `json:"imageUrl,omitempty"`
	StoredURL  string      `json:"storedUrl,omitempty"`
	Exif       *ExifData   `json:"exif,omitempty"`
}

// ClientMetadata is what the browser measured before uploading.
type ClientMetadata struct {
	Width       int     `json:"width,omitempty"`
	Height      int     `json:"height,omitempty"`
	DPI         float64 `json:"dpi,omitempty"`
	AspectRatio float64 `json:"aspectRatio,omitempty"`
	Megapixels  float64 `json:"megapixels,omitempty"`
	ColorSpace  string  `json:"colorSpace,omitempty"`
}

type CheckImageURLRequest struct {
	ImageURL string `json:"imageUrl" validate:"required,url"`
	Name     string `json:"name"`
}

// BrandImageReport is the compliance report for a single design image.
// Fields the model returns beyond the known ones are kept in Extras and
// written back out unchanged.
type BrandImageReport struct {
	Sections    []SectionResult    `json:"sections"`
	Suggestions *ReportSuggestions `json:"suggestions,omitempty"`
	Summary     ReportSummary      `json:"summary"`
	Score       ScoreSummary       `json:"score"`
	Input       InputMeta          `json:"input"`

	Extras map[string]json.RawMessage `json:"-"`
}

type brandImageReportAlias BrandImageReport

var knownReportFields = []string{"sections", "suggestions", "summary", "score", "input"}

func (r *BrandImageReport) UnmarshalJSON(b []byte) error {
	var alias brandImageReportAlias
	if err := json.Unmarshal(b, &alias); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return err
	}
	for _, k := range knownReportFields {
		delete(all, k)
	}

	*r = BrandImageReport(alias)
	if len(all) > 0 {
		r.Extras = all
	}
	return nil
}

func (r BrandImageReport) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(brandImageReportAlias(r))
	if err != nil {
		return nil, err
	}
	if len(r.Extras) == 0 {
		return b, nil
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return nil, err
	}
	for k, v := range r.Extras {
		if _, exists := all[k]; !exists {
			all[k] = v
		}
	}
	return json.Marshal(all)
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
