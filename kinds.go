// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package qacct

import (
	"encoding/json"
	"fmt"
)

// SumKind implements enums for the trailer of a span.
type SumKind int

const (
	NoSum    SumKind = iota // no "=> label" trailer
	SubTotal                // trailer on a span nested inside another span
	SumTotal                // trailer on a top-level span
)

func (k SumKind) String() string {
	switch k {
	case NoSum:
		return "NoSum"
	case SubTotal:
		return "SubTotal"
	case SumTotal:
		return "SumTotal"
	}
	return fmt.Sprintf("SumKind(%d)", int(k))
}

func (k SumKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// EntryKind identifies one entry inside a span's block.
type EntryKind int

const (
	RangeEntry EntryKind = iota
	SpanEntry
)

func (k EntryKind) String() string {
	switch k {
	case RangeEntry:
		return "Range"
	case SpanEntry:
		return "Span"
	}
	return fmt.Sprintf("EntryKind(%d)", int(k))
}

func (k EntryKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}
