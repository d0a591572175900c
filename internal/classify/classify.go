// Package classify decides how a document's content can be recovered before
// any extraction work is spent on it. The probe is pure: it parses the PDF
// in memory and never shells out, so it can be exposed directly as the
// per-document content check.
package classify

import (
	"bytes"
	"io"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Classification describes the extraction strategy a document admits.
type Classification string

const (
	Text       Classification = "text"       // at least one page has a native text layer
	Image      Classification = "image"      // raster images only, OCR required
	Empty      Classification = "empty"      // parseable but no text and no images
	Unreadable Classification = "unreadable" // not a valid PDF
)

// Classify inspects raw document bytes. A page with non-empty text content
// wins over embedded images; a byte stream that does not parse as a PDF at
// all is unreadable.
func Classify(data []byte) Classification {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return Unreadable
	}

	hasImages := false
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		if pageHasText(ctx, pageNr) {
			return Text
		}
		if !hasImages && pageHasImages(ctx, pageNr) {
			hasImages = true
		}
	}
	if hasImages {
		return Image
	}
	return Empty
}

// pageHasText scans the decoded content stream for text-showing string
// operands. Layout is irrelevant here; any non-blank string counts.
func pageHasText(ctx *model.Context, pageNr int) bool {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil || r == nil {
		return false
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return false
	}
	for _, s := range contentStrings(string(content)) {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}

func pageHasImages(ctx *model.Context, pageNr int) bool {
	imgs, err := pdfcpu.ExtractPageImages(ctx, pageNr, true)
	if err != nil {
		return false
	}
	return len(imgs) > 0
}

// contentStrings pulls literal "(...)" and hex "<...>" string operands out
// of a content stream, tolerating escaped and nested parentheses.
func contentStrings(content string) []string {
	var out []string
	depth := 0
	var cur strings.Builder
	for i := 0; i < len(content); i++ {
		ch := content[i]
		if depth > 0 && ch == '\\' && i+1 < len(content) {
			cur.WriteByte(content[i+1])
			i++
			continue
		}
		switch {
		case ch == '(':
			if depth > 0 {
				cur.WriteByte(ch)
			}
			depth++
		case ch == ')' && depth > 0:
			depth--
			if depth == 0 {
				out = append(out, cur.String())
				cur.Reset()
			} else {
				cur.WriteByte(ch)
			}
		case depth > 0:
			cur.WriteByte(ch)
		case ch == '<' && i+1 < len(content) && content[i+1] != '<':
			if end := strings.IndexByte(content[i:], '>'); end > 1 {
				hex := content[i+1 : i+end]
				if isHex(hex) && len(hex) > 0 {
					out = append(out, hex)
				}
				i += end
			}
		}
	}
	return out
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return len(s) > 0
}
