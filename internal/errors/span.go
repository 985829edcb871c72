// Package errors defines the Axiom error taxonomy: the source Span shared
// by every token, AST node and diagnostic, the lexer/parser error kinds,
// the non-fatal semantic Diagnostic, and the fatal RuntimeError variants.
package errors

// Span is an immutable (source_id, start, end) range identifying a
// region of source text. Start/End are rune (code point) indices into
// the source, as produced by the lexer, not byte offsets.
type Span struct {
	SourceID uint32
	Start    int
	End      int
}

// Merge returns the smallest span covering both s and other. The two
// spans must share a SourceID; the result keeps s's.
func (s Span) Merge(other Span) Span {
	start := s.Start
	if other.Start < start {
		start = other.Start
	}
	end := s.End
	if other.End > end {
		end = other.End
	}
	return Span{SourceID: s.SourceID, Start: start, End: end}
}

// ZeroSpan is used by errors and synthesized nodes with no natural
// source location.
var ZeroSpan = Span{}
