package embedding

import (
	"context"
	"hash/fnv"
	"strings"
	"unicode"
)

const DefaultHashDims = 384

// hashFeatures is how many signed buckets each feature touches.
const hashFeatures = 4

// HashEmbedder is an offline embedder. Each word and each character trigram
// of a word is hashed into a sparse signed vector; the text embedding is the
// mean of its feature vectors, L2-normalised. It needs no model download but
// captures token overlap only, not meaning.
type HashEmbedder struct {
	dims int
}

func NewHashEmbedder(dims int) *HashEmbedder {
	if dims <= 0 {
		dims = DefaultHashDims
	}
	return &HashEmbedder{dims: dims}
}

func (h *HashEmbedder) Name() string { return "hash" }

func (h *HashEmbedder) Load(ctx context.Context, progress ProgressFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if progress != nil {
		progress(100)
	}
	return nil
}

func (h *HashEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = h.embedOne(text)
	}
	return out, nil
}

func (h *HashEmbedder) embedOne(text string) []float32 {
	features := tokenize(text)
	if len(features) == 0 {
		return make([]float32, h.dims)
	}
	vectors := make([][]float32, 0, len(features))
	for _, f := range features {
		vectors = append(vectors, h.featureVector(f))
	}
	return Normalize(MeanPool(vectors))
}

func (h *HashEmbedder) featureVector(feature string) []float32 {
	v := make([]float32, h.dims)
	for k := 0; k < hashFeatures; k++ {
		hs := fnv.New64a()
		hs.Write([]byte{byte(k)})
		hs.Write([]byte(feature))
		sum := hs.Sum64()
		idx := int(sum % uint64(h.dims))
		if sum&(1<<63) != 0 {
			v[idx] -= 1
		} else {
			v[idx] += 1
		}
	}
	return v
}

// tokenize lowercases text and returns its words plus the character
// trigrams of words longer than three runes.
func tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	features := make([]string, 0, len(words)*2)
	for _, w := range words {
		features = append(features, "w:"+w)
		runes := []rune(w)
		if len(runes) <= 3 {
			continue
		}
		for i := 0; i+3 <= len(runes); i++ {
			features = append(features, "g:"+string(runes[i:i+3]))
		}
	}
	return features
}
