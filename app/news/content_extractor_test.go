package news

import (
	"strings"
	"testing"
)

func TestContentExtractor_Run(t *testing.T) {
	extractor := NewContentExtractor()

	html := `<!DOCTYPE html>
<html>
<head><title>Test Article</title></head>
<body>
<article>
<h1>Test Article</h1>
<p>The quick brown fox jumps over the lazy dog. This paragraph carries
the main body of the article and should survive extraction.</p>
<p>A second paragraph with additional detail about the story, long
enough that the readability heuristics keep it.</p>
</article>
</body>
</html>`

	text, err := extractor.Run([]byte(html), "https://example.com/article")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !strings.Contains(text, "quick brown fox") {
		t.Errorf("Expected extracted text to contain article body, got: %s", text)
	}
}

func TestContentExtractor_Run_EmptyData(t *testing.T) {
	extractor := NewContentExtractor()

	_, err := extractor.Run(nil, "https://example.com/article")
	if err == nil {
		t.Error("Expected error for empty HTML data")
	}
}

func TestContentExtractor_Run_CapsLength(t *testing.T) {
	extractor := NewContentExtractor()

	var b strings.Builder
	b.WriteString("<html><body><article><h1>Long</h1>")
	for i := 0; i < 500; i++ {
		b.WriteString("<p>Repeated filler sentence to push the article text over the extraction cap.</p>")
	}
	b.WriteString("</article></body></html>")

	text, err := extractor.Run([]byte(b.String()), "https://example.com/long")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(text) > maxExtractedLen {
		t.Errorf("Expected extracted text capped at %d bytes, got %d", maxExtractedLen, len(text))
	}
}
