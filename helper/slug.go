package helper

import (
	"strings"

	"github.com/gosimple/slug"
)

// SectionKey normalises a section name from the URL, so "Virtual-Production"
// and "virtualproduction" address the same section.
func SectionKey(name string) string {
	return strings.ReplaceAll(slug.Make(name), "-", "")
}

// UploadFolder is the object store folder for one media collection.
func UploadFolder(section, kind string) string {
	return "cinema-factory/" + SectionKey(section) + "/" + slug.Make(kind)
}
