package lzjb

// LZJB format constants. Changing any of them changes the wire format.
const (
	NBBY       = 8                                 // Bits per control byte (one control byte per 8 tokens).
	MatchBits  = 6                                 // Width of the match length field.
	MatchMin   = 3                                 // Shortest encoded match.
	MatchMax   = (1 << MatchBits) + (MatchMin - 1) // 66; encoded matches are at most MatchMax-1 bytes.
	OffsetMask = (1 << (16 - MatchBits)) - 1       // 1023; largest back-reference distance.
	LempelSize = 1024                              // Default match table size.
)

// MaxTableSize is the largest match table CompressOptions.TableSize accepts.
const MaxTableSize = 1 << 16

// maxExpansion bounds output bytes per input byte: a 2-byte match token
// expands to at most MatchMax-1 bytes.
const maxExpansion = MatchMax / 2
