package agent

import (
	"strings"
	"unicode"
)

// SegmentKind tags a piece of model output.
type SegmentKind int

const (
	SegmentSpeech SegmentKind = iota + 1
	SegmentThought
	SegmentAction
)

type marker struct {
	text string
	kind SegmentKind
}

var markers = []marker{
	{"SPEECH:", SegmentSpeech},
	{"THOUGHT:", SegmentThought},
	{"ACTION:", SegmentAction},
}

const endToken = "END"

func (k SegmentKind) String() string {
	for _, m := range markers {
		if m.kind == k {
			return strings.TrimSuffix(m.text, ":")
		}
	}
	return "UNKNOWN"
}

// Segment is the text following one marker.
type Segment struct {
	Kind SegmentKind
	Text string
}

// SegmentParser splits streamed text into segments. A segment is complete
// when the next marker arrives or the stream ends, so markers split across
// chunks are recognised. Text before the first marker is dropped.
type SegmentParser struct {
	buf  string
	kind SegmentKind
}

// Feed consumes a chunk and returns the segments it completed.
func (p *SegmentParser) Feed(chunk string) []Segment {
	p.buf += chunk
	var out []Segment
	for {
		i, next := nextMarker(p.buf)
		if i < 0 {
			return out
		}
		if seg, ok := p.emit(p.buf[:i]); ok {
			out = append(out, seg)
		}
		p.kind = next.kind
		p.buf = p.buf[i+len(next.text):]
	}
}

// Flush returns the trailing segment at end of stream.
func (p *SegmentParser) Flush() []Segment {
	seg, ok := p.emit(p.buf)
	p.buf, p.kind = "", 0
	if !ok {
		return nil
	}
	return []Segment{seg}
}

func (p *SegmentParser) emit(text string) (Segment, bool) {
	text = trimEnd(text)
	if p.kind == 0 || text == "" {
		return Segment{}, false
	}
	return Segment{Kind: p.kind, Text: text}, true
}

// nextMarker returns the position of the earliest marker in s, or -1.
func nextMarker(s string) (int, marker) {
	best := -1
	var found marker
	for _, m := range markers {
		if i := strings.Index(s, m.text); i >= 0 && (best < 0 || i < best) {
			best, found = i, m
		}
	}
	return best, found
}

// trimEnd strips surrounding space and a trailing END token.
func trimEnd(s string) string {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutSuffix(s, endToken); ok {
		if rest == "" || unicode.IsSpace(rune(rest[len(rest)-1])) {
			s = strings.TrimSpace(rest)
		}
	}
	return s
}
