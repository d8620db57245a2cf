package rag

import "strings"

// Default chunking geometry used by the catalog build pipeline.
const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 50
)

// Splitter breaks text into overlapping chunks of at most chunkSize
// characters. It prefers splitting on paragraph breaks, then line breaks,
// then word boundaries, and only falls back to a hard character cut when a
// single run of text has no usable boundary below chunkSize.
type Splitter struct {
	chunkSize    int
	chunkOverlap int
	separators   []string
}

// NewSplitter returns a Splitter with the given geometry. Non-positive sizes
// fall back to the defaults; an overlap at or above the chunk size is
// clamped below it.
func NewSplitter(chunkSize, chunkOverlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = DefaultChunkOverlap
	}
	if chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize - 1
	}
	return &Splitter{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		separators:   []string{"\n\n", "\n", " ", ""},
	}
}

// SplitText splits raw text into chunks. Input already shorter than the
// chunk size yields exactly one chunk holding the stripped input.
func (s *Splitter) SplitText(text string) []string {
	return s.split(text, s.separators)
}

// SplitUnits splits every unit's content, stamping each produced chunk with
// a copy of its parent's metadata.
func (s *Splitter) SplitUnits(units []TextUnit) []TextUnit {
	var out []TextUnit
	for _, unit := range units {
		for _, chunk := range s.SplitText(unit.Content) {
			out = append(out, TextUnit{Content: chunk, Metadata: unit.Metadata})
		}
	}
	return out
}

func (s *Splitter) split(text string, separators []string) []string {
	sep := separators[len(separators)-1]
	var rest []string
	for i, candidate := range separators {
		if candidate == "" || strings.Contains(text, candidate) {
			sep = candidate
			rest = separators[i+1:]
			break
		}
	}

	var final []string
	var good []string
	for _, piece := range splitWithSeparator(text, sep) {
		if len(piece) < s.chunkSize {
			good = append(good, piece)
			continue
		}
		if len(good) > 0 {
			final = append(final, s.merge(good, sep)...)
			good = nil
		}
		if len(rest) == 0 {
			final = append(final, piece)
		} else {
			final = append(final, s.split(piece, rest)...)
		}
	}
	if len(good) > 0 {
		final = append(final, s.merge(good, sep)...)
	}
	return final
}

func splitWithSeparator(text, sep string) []string {
	if sep == "" {
		parts := make([]string, 0, len(text))
		for _, r := range text {
			parts = append(parts, string(r))
		}
		return parts
	}
	return strings.Split(text, sep)
}

// merge greedily joins pieces back together into chunks of at most
// chunkSize characters, carrying up to chunkOverlap trailing characters of
// one chunk into the next.
func (s *Splitter) merge(pieces []string, sep string) []string {
	sepLen := len(sep)
	var chunks []string
	var current []string
	total := 0

	for _, piece := range pieces {
		joinLen := 0
		if len(current) > 0 {
			joinLen = sepLen
		}
		if total+len(piece)+joinLen > s.chunkSize && len(current) > 0 {
			if chunk := joinPieces(current, sep); chunk != "" {
				chunks = append(chunks, chunk)
			}
			for total > s.chunkOverlap || (total+len(piece)+joinLen > s.chunkSize && total > 0) {
				head := len(current[0])
				if len(current) > 1 {
					head += sepLen
				}
				total -= head
				current = current[1:]
				joinLen = 0
				if len(current) > 0 {
					joinLen = sepLen
				}
			}
		}
		current = append(current, piece)
		if len(current) > 1 {
			total += sepLen
		}
		total += len(piece)
	}

	if chunk := joinPieces(current, sep); chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}

func joinPieces(pieces []string, sep string) string {
	return strings.TrimSpace(strings.Join(pieces, sep))
}
