package search

// Config holds the scoring and matching parameters of an Engine.
type Config struct {
	// Field weights added per query token found in the field.
	TitleWeight      float64 `toml:"title_weight"`
	HeadingWeight    float64 `toml:"heading_weight"`
	ContentWeight    float64 `toml:"content_weight"`
	BreadcrumbWeight float64 `toml:"breadcrumb_weight"`

	// Bonuses for the whole query found in title or heading, and for a
	// title starting with a query token.
	ExactTitleBonus   float64 `toml:"exact_title_bonus"`
	ExactHeadingBonus float64 `toml:"exact_heading_bonus"`
	TitlePrefixBonus  float64 `toml:"title_prefix_bonus"`

	// Each content occurrence of a token adds OccurrenceFactor, capped at
	// MaxOccurrenceBonus per token.
	OccurrenceFactor   float64 `toml:"occurrence_factor"`
	MaxOccurrenceBonus float64 `toml:"max_occurrence_bonus"`

	// Multipliers applied once to a record's total.
	ShortTitleBoost     float64 `toml:"short_title_boost"`
	ShortTitleLength    int     `toml:"short_title_length"`
	HeadingLevelBoost   float64 `toml:"heading_level_boost"`
	BoostedHeadingLevel int     `toml:"boosted_heading_level"`

	// FuzzyThreshold is the largest accepted edit distance relative to the
	// longer term. Query tokens shorter than FuzzyMinLength are not fuzzy
	// matched, and pairs whose lengths differ by more than MaxLengthDiff
	// never match.
	FuzzyThreshold float64 `toml:"fuzzy_threshold"`
	FuzzyMinLength int     `toml:"fuzzy_min_length"`
	MaxLengthDiff  int     `toml:"max_length_diff"`

	MinQueryLength int `toml:"min_query_length"`
	MaxResults     int `toml:"max_results"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		TitleWeight:         10,
		HeadingWeight:       8,
		ContentWeight:       3,
		BreadcrumbWeight:    2,
		ExactTitleBonus:     100,
		ExactHeadingBonus:   80,
		TitlePrefixBonus:    15,
		OccurrenceFactor:    0.5,
		MaxOccurrenceBonus:  5,
		ShortTitleBoost:     1.2,
		ShortTitleLength:    30,
		HeadingLevelBoost:   1.1,
		BoostedHeadingLevel: 2,
		FuzzyThreshold:      0.4,
		FuzzyMinLength:      4,
		MaxLengthDiff:       2,
		MinQueryLength:      2,
		MaxResults:          20,
	}
}
