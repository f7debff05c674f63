// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compliance

import (
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
)

// SEOFileName builds brand-topic-purpose-locale-size.webp, every part slugified.
func SEOFileName(brandName, purpose, topic, locale, size string) string {
	if locale == "" {
		locale = "th"
	}
	if size == "" {
		size = "standard"
	}

	parts := make([]string, 0, 5)
	for _, p := range []string{brandName, topic, purpose, locale, size} {
		if s := slug.Make(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "-") + ".webp"
}

// TopicFromFileName turns "Summer Campaign_v2.PNG" into "summer-campaign-v2".
func TopicFromFileName(fileName string) string {
	base := filepath.Base(fileName)
	return slug.Make(strings.TrimSuffix(base, filepath.Ext(base)))
}
