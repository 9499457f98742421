package docsearch

import "strings"

// Classification is the category and version assigned to a page.
type Classification struct {
	Category string
	Version  string
}

// classificationRule maps a URL substring to a classification.
type classificationRule struct {
	pattern string
	Classification
}

// classificationRules is checked in order; the first matching pattern wins.
var classificationRules = []classificationRule{
	{"/product-docs/6.3/", Classification{Category: "Magnolia 6.3", Version: "6.3"}},
	{"/product-docs/6.2/", Classification{Category: "Magnolia 6.2", Version: "6.2"}},
	{"/product-docs/6.1/", Classification{Category: "Magnolia 6.1", Version: "6.1"}},
	{"/product-docs/5.7/", Classification{Category: "Magnolia 5.7", Version: "5.7"}},
	{"/paas/", Classification{Category: "Magnolia PaaS", Version: "paas"}},
	{"/magnolia-cli/", Classification{Category: "Magnolia CLI", Version: "cli"}},
}

// DefaultClassification applies to URLs that match no rule.
var DefaultClassification = Classification{Category: "Modules", Version: "modules"}

// Classify returns the category and version for a page URL.
// It is the single place pages are classified, so every artifact derived
// from a page carries the same assignment.
func Classify(pageURL string) Classification {
	for _, rule := range classificationRules {
		if strings.Contains(pageURL, rule.pattern) {
			return rule.Classification
		}
	}
	return DefaultClassification
}
