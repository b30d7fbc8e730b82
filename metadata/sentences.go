package metadata

import (
	"iter"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"go.uber.org/zap"
)

// Splitter tokenizes Latin prose into sentences using the English punkt model
// shipped with the sentences module. A nil *Splitter is a valid tokenizer
// which treats the whole input as a single sentence. CJK text does not go
// through it at all, boundary runes are unambiguous there.
type Splitter struct {
	*sentences.DefaultSentenceTokenizer
}

func NewSplitter(log *zap.Logger) *Splitter {
	t, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		log.Warn("Unable to load sentence tokenizer model, turning off sentence splitting", zap.Error(err))
		return nil
	}
	return &Splitter{t}
}

// Sentences returns an iterator over trimmed non-empty sentences.
func (s *Splitter) Sentences(in string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if s == nil {
			if in = strings.TrimSpace(in); len(in) > 0 {
				yield(in)
			}
			return
		}
		for _, sentence := range s.Tokenize(in) {
			text := strings.TrimSpace(sentence.Text)
			if len(text) == 0 {
				continue
			}
			if !yield(text) {
				return
			}
		}
	}
}

// Split returns a slice of trimmed sentences.
// For memory-efficient streaming, use Sentences iterator instead.
func (s *Splitter) Split(in string) []string {
	var out []string
	for sentence := range s.Sentences(in) {
		out = append(out, sentence)
	}
	return out
}
