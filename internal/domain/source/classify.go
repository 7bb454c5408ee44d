package source

import "github.com/kailas-cloud/saucenao/internal/domain/result"

// Classifier turns raw matches into typed sources.
type Classifier struct {
	resolver Resolver
}

// NewClassifier creates a Classifier. resolver is handed to anime records
// for LoadIDs and may be nil.
func NewClassifier(resolver Resolver) *Classifier {
	return &Classifier{resolver: resolver}
}

// Classify builds the variant selected by the match's index id.
// It never fails: missing or mistyped fields leave attributes empty.
func (c *Classifier) Classify(raw result.Raw) Source {
	switch CategoryOf(int(raw.Header.IndexID)) {
	case CategoryPixiv:
		return newPixiv(raw)
	case CategoryBooru:
		return newBooru(raw)
	case CategoryAnime:
		return newAnime(raw, c.resolver)
	case CategoryVideo:
		v := newVideo(CategoryVideo, raw)
		return &v
	case CategoryManga:
		return newManga(raw)
	default:
		return &Generic{Record: newRecord(CategoryGeneric, raw)}
	}
}

// ClassifyAll classifies matches in order.
func (c *Classifier) ClassifyAll(raws []result.Raw) []Source {
	out := make([]Source, len(raws))
	for i := range raws {
		out[i] = c.Classify(raws[i])
	}
	return out
}

// Classify classifies a match without a relation resolver.
func Classify(raw result.Raw) Source {
	return NewClassifier(nil).Classify(raw)
}
