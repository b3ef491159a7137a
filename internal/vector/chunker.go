package vector

import "strings"

// Default chunking parameters, sized for embedding context windows
const (
	DefaultChunkWords   = 300
	DefaultOverlapWords = 50
)

// ChunkText splits text into word windows of size words with overlap
// words shared between neighbors. Whitespace runs collapse to single
// spaces. Returns nil for blank input.
func ChunkText(text string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkWords
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultOverlapWords
		if overlap >= size {
			overlap = size / 4
		}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := size - overlap
	var chunks []string
	for start := 0; start < len(words); start += step {
		end := start + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
	}

	return chunks
}
