package metadata

import (
	"slices"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestNewSplitter(t *testing.T) {
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	if NewSplitter(logger) == nil {
		t.Fatal("Expected English tokenizer, got nil")
	}
}

func TestSplitterSplit(t *testing.T) {
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	t.Run("Nil tokenizer", func(t *testing.T) {
		var tok *Splitter
		result := tok.Split("This is a test. This is another test.")
		if len(result) != 1 {
			t.Fatalf("Expected 1 sentence with nil tokenizer, got %d", len(result))
		}
		if result[0] != "This is a test. This is another test." {
			t.Errorf("Expected original text, got %q", result[0])
		}
	})

	t.Run("Nil tokenizer empty input", func(t *testing.T) {
		var tok *Splitter
		if result := tok.Split("   "); len(result) != 0 {
			t.Errorf("Expected no sentences for blank input, got %v", result)
		}
	})

	t.Run("Simple English sentences", func(t *testing.T) {
		tok := NewSplitter(logger)
		result := tok.Split("This is a test. This is another test.")
		want := []string{"This is a test.", "This is another test."}
		if !slices.Equal(result, want) {
			t.Errorf("Expected %v, got %v", want, result)
		}
	})

	t.Run("Abbreviations do not split", func(t *testing.T) {
		tok := NewSplitter(logger)
		result := tok.Split("Mr. Smith went to Washington. He stayed there.")
		if len(result) != 2 {
			t.Errorf("Expected 2 sentences, got %d: %v", len(result), result)
		}
	})

	t.Run("Empty string", func(t *testing.T) {
		tok := NewSplitter(logger)
		if result := tok.Split(""); len(result) != 0 {
			t.Errorf("Expected 0 sentences for empty string, got %d", len(result))
		}
	})
}

func TestSplitterSentences(t *testing.T) {
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	t.Run("Compare with Split", func(t *testing.T) {
		tok := NewSplitter(logger)
		text := "First sentence. Second sentence. Third sentence."

		sliceResult := tok.Split(text)
		var iterResult []string
		for s := range tok.Sentences(text) {
			iterResult = append(iterResult, s)
		}
		if !slices.Equal(sliceResult, iterResult) {
			t.Errorf("Iterator and slice results differ:\nSlice: %v\nIter:  %v", sliceResult, iterResult)
		}
	})

	t.Run("Early termination", func(t *testing.T) {
		tok := NewSplitter(logger)
		count := 0
		for range tok.Sentences("First sentence. Second sentence. Third sentence.") {
			count++
			if count == 2 {
				break
			}
		}
		if count != 2 {
			t.Errorf("Expected to stop at 2 sentences, got %d", count)
		}
	})

	t.Run("Sentences are trimmed", func(t *testing.T) {
		tok := NewSplitter(logger)
		for s := range tok.Sentences("First sentence.   Second sentence.") {
			if s != "" && (s[0] == ' ' || s[len(s)-1] == ' ') {
				t.Errorf("Expected trimmed sentence, got %q", s)
			}
		}
	})
}
