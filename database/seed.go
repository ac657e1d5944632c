package database

import (
	"sort"

	"cinema_factory/model"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

var seedFaqs = []model.Faq{
	{
		Question: "Which courses can I apply for online?",
		Answer:   "Every diploma listed on the site, from Direction to Virtual Production, accepts online applications.",
		Keywords: []string{"courses", "apply", "admission"},
	},
	{
		Question: "How do I pay the application fee?",
		Answer:   "Choose your course on the apply page and complete the payment through the secure gateway.",
		Keywords: []string{"payment", "fee", "pay"},
	},
}

// SeedData creates one Section row per catalog entry and the starter FAQs when
// the table is empty. Existing rows are left alone.
func SeedData(db *gorm.DB) {
	keys := make([]string, 0, len(model.SectionCatalog))
	for key := range model.SectionCatalog {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		section := model.Section{Key: key}
		if err := db.Omit("pdf_data").Where(model.Section{Key: key}).FirstOrCreate(&section).Error; err != nil {
			log.Errorw("failed to seed section", "section", key, "error", err)
		}
	}

	var count int64
	if err := db.Model(&model.Faq{}).Count(&count).Error; err != nil {
		log.Errorw("failed to count faqs", "error", err)
		return
	}
	if count > 0 {
		return
	}
	faqs := make([]model.Faq, len(seedFaqs))
	copy(faqs, seedFaqs)
	if err := db.Create(&faqs).Error; err != nil {
		log.Errorw("failed to seed faqs", "error", err)
	}
}
