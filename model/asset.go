package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Section is the singleton document that owns every media item of one site section.
type Section struct {
	DTO
	Key string `gorm:"size:64;uniqueIndex;not null" json:"key"`

	PdfData       []byte     `json:"-"`
	PdfName       string     `gorm:"size:255" json:"-"`
	PdfSize       int64      `json:"-"`
	PdfUploadedAt *time.Time `json:"-"`
}

type Asset struct {
	ID          string    `gorm:"size:36;primaryKey" json:"_id"`
	SectionID   uint      `gorm:"index:idx_asset_section_kind;not null" json:"-"`
	Kind        string    `gorm:"size:64;index:idx_asset_section_kind;not null" json:"-"`
	ImageUrl    string    `json:"imageUrl,omitempty"`
	VideoUrl    string    `json:"videoUrl,omitempty"`
	TitleLine   string    `json:"titleLine,omitempty"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Category    string    `gorm:"size:64" json:"category,omitempty"`
	PublicId    string    `gorm:"size:255;index" json:"publicId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

type DiplomaPdf struct {
	PdfName    string     `json:"pdfName,omitempty"`
	PdfSize    int64      `json:"pdfSize,omitempty"`
	UploadDate *time.Time `json:"uploadDate,omitempty"`
}

type Diploma struct {
	Images     []Asset    `json:"images"`
	DiplomaPdf DiplomaPdf `json:"diplomaPdf"`
}

type ResourceType string

const (
	ResourceImage ResourceType = "image"
	ResourceVideo ResourceType = "video"
)

// KindSpec describes one media collection of a section.
type KindSpec struct {
	Resource ResourceType
	Required []string
	Optional []string
	MaxBytes int
}

// FileField is the multipart field the upload arrives in.
func (k KindSpec) FileField() string {
	if k.Resource == ResourceVideo {
		return "video"
	}
	return "image"
}

const (
	imageLimit = 10 * 1024 * 1024
	videoLimit = 50 * 1024 * 1024
)

var (
	plainImage    = KindSpec{Resource: ResourceImage, MaxBytes: imageLimit}
	mentorImage   = KindSpec{Resource: ResourceImage, Optional: []string{"description"}, MaxBytes: imageLimit}
	titledImage   = KindSpec{Resource: ResourceImage, Required: []string{"titleLine"}, MaxBytes: imageLimit}
	galleryVideo  = KindSpec{Resource: ResourceVideo, Required: []string{"title"}, MaxBytes: videoLimit}
	bannerVideo   = KindSpec{Resource: ResourceVideo, Required: []string{"title", "category"}, Optional: []string{"description"}, MaxBytes: videoLimit}
	courseCatalog = map[string]KindSpec{
		"banner":      plainImage,
		"mentor":      mentorImage,
		"filmography": plainImage,
		"highlights":  titledImage,
		"diploma":     plainImage,
	}
)

// SectionCatalog lists the media collections each section accepts.
var SectionCatalog = map[string]map[string]KindSpec{
	"home": {
		"banner":             plainImage,
		"mentor":             mentorImage,
		"filmography":        plainImage,
		"exclusive":          titledImage,
		"videogallerybanner": bannerVideo,
	},
	"direction":         courseCatalog,
	"acting":            courseCatalog,
	"cinematography":    courseCatalog,
	"di":                courseCatalog,
	"editing":           courseCatalog,
	"photography":       courseCatalog,
	"vfx":               courseCatalog,
	"virtualproduction": courseCatalog,
	"cfa":               courseCatalog,
	"stageunreal":       courseCatalog,
	"gallery": {
		"guestLecture":  galleryVideo,
		"highlights":    galleryVideo,
		"newLaunches":   galleryVideo,
		"studentReview": galleryVideo,
		"studentWorks":  galleryVideo,
	},
}

func LookupKind(section, kind string) (KindSpec, bool) {
	kinds, ok := SectionCatalog[section]
	if !ok {
		return KindSpec{}, false
	}
	spec, ok := kinds[kind]
	return spec, ok
}

func HasDiploma(section string) bool {
	_, ok := LookupKind(section, "diploma")
	return ok
}
