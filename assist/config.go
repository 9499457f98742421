package assist

// Config holds the retrieval and context budget parameters of an Assembler.
type Config struct {
	MaxContextChunks  int     `toml:"max_context_chunks"`
	MaxContextTokens  int     `toml:"max_context_tokens"`
	MinRelevanceScore float64 `toml:"min_relevance_score"`
	KeywordLimit      int     `toml:"keyword_limit"`

	TitleMatchBonus   float64 `toml:"title_match_bonus"`
	TitleKeywordBonus float64 `toml:"title_keyword_bonus"`
	PrefixMatchWeight float64 `toml:"prefix_match_weight"`
	SmallChunkTokens  int     `toml:"small_chunk_tokens"`
	SmallChunkBoost   float64 `toml:"small_chunk_boost"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		MaxContextChunks:  5,
		MaxContextTokens:  8000,
		MinRelevanceScore: 0.3,
		KeywordLimit:      50,
		TitleMatchBonus:   50,
		TitleKeywordBonus: 5,
		PrefixMatchWeight: 0.5,
		SmallChunkTokens:  500,
		SmallChunkBoost:   1.1,
	}
}
