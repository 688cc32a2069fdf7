package gallery

import (
	"github.com/Maxito7/heey_portfolio/internal/application"
	"github.com/Maxito7/heey_portfolio/internal/domain"
)

// PlaceholderCount is the number of skeleton cells shown while items load.
const PlaceholderCount = 9

var placeholderHeights = []float64{280, 360, 220, 320, 260, 400, 240, 300, 340}

// PlaceholderHeight returns the skeleton height for cell i. It depends only on i.
func PlaceholderHeight(i int) float64 {
	n := len(placeholderHeights)
	return placeholderHeights[((i%n)+n)%n]
}

// SampleItems is the demonstration content shown when the store has no entries.
func SampleItems() []domain.Portfolio {
	return []domain.Portfolio{
		{
			ID:                1,
			Title:             "Sample Portfolio 1",
			Description:       "Architectural visualization",
			ImagePathOriginal: "/photo1.jpeg",
			ImagePathMin:      "/photo1.jpeg",
			Visibility:        true,
			SortOrder:         1,
		},
		{
			ID:                2,
			Title:             "Sample Portfolio 2",
			Description:       "Interior design",
			ImagePathOriginal: "/photo2.jpeg",
			ImagePathMin:      "/photo2.jpeg",
			Visibility:        true,
			SortOrder:         2,
		},
	}
}

// sampleURLs points the sample items at the site's static images.
func sampleURLs(items []domain.Portfolio) *application.URLCache {
	cache := application.NewURLCache()
	for _, item := range items {
		cache.Set(item.ID, domain.VariantThumbnail, item.ImagePathMin)
		cache.Set(item.ID, domain.VariantOriginal, item.ImagePathOriginal)
	}
	return cache
}
