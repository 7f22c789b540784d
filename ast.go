// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package qacct

// Document is the ordered list of top-level spans in the source.
type Document []Span

// Range represents a labelled account range like `3000..3050 => Sales`.
// From and To are inclusive; From <= To is not checked.
type Range struct {
	Title string `json:"title"`
	From  int    `json:"from"`
	To    int    `json:"to"`
}

// Span is one group in the source:
//
//	Optional title (
//	    3000..3050 => Webshop
//	    3050..4000 => Other sales
//	) => Sum sales
//
// Ranges and Subspans are each kept in source order.
// Order records how they were interleaved in the block,
// one entry per range or subspan.
type Span struct {
	Name     *string     `json:"name"`
	Ranges   []Range     `json:"ranges"`
	Subspans []Span      `json:"subspans"`
	SumType  SumType     `json:"sum_type"`
	Order    []EntryKind `json:"order"`
}

// SumType is the trailer of a span. Label is nil when there is no
// trailer or when the trailer has no text after the "=>".
type SumType struct {
	Kind  SumKind `json:"kind"`
	Label *string `json:"label"`
}

// Entry is one item of a span's block: exactly one of Range or Span is set.
type Entry struct {
	Range *Range
	Span  *Span
}

// Entries returns the ranges and subspans of the span in the order
// they were written. If Order is missing or inconsistent (a Span built
// by hand), ranges are listed before subspans.
func (s *Span) Entries() []Entry {
	entries := make([]Entry, 0, len(s.Ranges)+len(s.Subspans))
	ri, si := 0, 0
	if len(s.Order) == len(s.Ranges)+len(s.Subspans) {
		for _, kind := range s.Order {
			switch kind {
			case RangeEntry:
				if ri < len(s.Ranges) {
					entries = append(entries, Entry{Range: &s.Ranges[ri]})
					ri++
				}
			case SpanEntry:
				if si < len(s.Subspans) {
					entries = append(entries, Entry{Span: &s.Subspans[si]})
					si++
				}
			}
		}
	}
	for ; ri < len(s.Ranges); ri++ {
		entries = append(entries, Entry{Range: &s.Ranges[ri]})
	}
	for ; si < len(s.Subspans); si++ {
		entries = append(entries, Entry{Span: &s.Subspans[si]})
	}
	return entries
}

// Title returns the name of the span, or the empty string if it has none.
func (s *Span) Title() string {
	if s.Name == nil {
		return ""
	}
	return *s.Name
}

// Text returns the label of the trailer and reports whether there is one.
func (st SumType) Text() (string, bool) {
	if st.Label == nil {
		return "", false
	}
	return *st.Label, true
}

// optional returns nil for the empty string, otherwise a pointer to a copy of s.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
