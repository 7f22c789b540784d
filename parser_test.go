// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package qacct_test

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/mdhender/qacct"
)

const fullReport = `
    Sales (
        3010..3010 => Webshop
        3010..4000 => Other sales
    ) => Sum sales

    (
        4000..5000 => Material
    ) => Sum material

    (
        5000..5000 => Direct labor
        5010..6000 => Other labor costs
    ) => Sum labor costs

    Other costs (
        6000..6010 => Leasing
        (
            6020..6100 => Office supplies
            6100..6200 => Consumables
        ) => Sum miscellaneous costs
    ) => Sum other costs
    `

func str(s string) *string {
	return &s
}

func ranges(n int) []qacct.EntryKind {
	var order []qacct.EntryKind
	for i := 0; i < n; i++ {
		order = append(order, qacct.RangeEntry)
	}
	return order
}

var fullReportTree = qacct.Document{
	{
		Name: str("Sales"),
		Ranges: []qacct.Range{
			{Title: "Webshop", From: 3010, To: 3010},
			{Title: "Other sales", From: 3010, To: 4000},
		},
		SumType: qacct.SumType{Kind: qacct.SumTotal, Label: str("Sum sales")},
		Order:   ranges(2),
	},
	{
		Ranges: []qacct.Range{
			{Title: "Material", From: 4000, To: 5000},
		},
		SumType: qacct.SumType{Kind: qacct.SumTotal, Label: str("Sum material")},
		Order:   ranges(1),
	},
	{
		Ranges: []qacct.Range{
			{Title: "Direct labor", From: 5000, To: 5000},
			{Title: "Other labor costs", From: 5010, To: 6000},
		},
		SumType: qacct.SumType{Kind: qacct.SumTotal, Label: str("Sum labor costs")},
		Order:   ranges(2),
	},
	{
		Name: str("Other costs"),
		Ranges: []qacct.Range{
			{Title: "Leasing", From: 6000, To: 6010},
		},
		Subspans: []qacct.Span{
			{
				Ranges: []qacct.Range{
					{Title: "Office supplies", From: 6020, To: 6100},
					{Title: "Consumables", From: 6100, To: 6200},
				},
				SumType: qacct.SumType{Kind: qacct.SubTotal, Label: str("Sum miscellaneous costs")},
				Order:   ranges(2),
			},
		},
		SumType: qacct.SumType{Kind: qacct.SumTotal, Label: str("Sum other costs")},
		Order:   []qacct.EntryKind{qacct.RangeEntry, qacct.SpanEntry},
	},
}

// parseBoth parses the input with both parsers and fails the test
// if they disagree.
func parseBoth(t *testing.T, input string) (qacct.Document, error) {
	t.Helper()
	doc, err := qacct.ParseString(input)
	stackDoc, stackErr := qacct.ParseString(input, qacct.WithExplicitStack(true))
	if diff := diffTrees(doc, stackDoc); diff != "" {
		t.Errorf("explicit stack parser returned different tree (-recursive/+stack)\n%s", diff)
	}
	if diff := cmp.Diff(errString(err), errString(stackErr)); diff != "" {
		t.Errorf("explicit stack parser returned different error (-recursive/+stack)\n%s", diff)
	}
	return doc, err
}

// diffTrees returns an empty string when the trees are equal.
// cmp.Diff is slow on deeply nested spans, so it only runs after
// reflect.DeepEqual fails and only on shallow trees. Deep trees are
// compared by their printed form.
func diffTrees(want, got qacct.Document) string {
	if reflect.DeepEqual(want, got) {
		return ""
	}
	if treeDepth(want) > 8 || treeDepth(got) > 8 {
		if want.String() == got.String() {
			return ""
		}
		return fmt.Sprintf("-%s\n+%s", want, got)
	}
	return cmp.Diff(want, got, cmpopts.EquateEmpty())
}

func treeDepth(doc qacct.Document) int {
	depth := 0
	for level := []qacct.Span(doc); len(level) != 0; depth++ {
		var next []qacct.Span
		for _, span := range level {
			next = append(next, span.Subspans...)
		}
		level = next
	}
	return depth
}

func errString(err error) string {
	var perr *qacct.ParseError
	if errors.As(err, &perr) {
		return perr.Display()
	} else if err != nil {
		return err.Error()
	}
	return ""
}

func TestParse_FullReport(t *testing.T) {
	doc, err := parseBoth(t, fullReport)
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if diff := cmp.Diff(fullReportTree, doc, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Parse returned unexpected diff (-want/+got)\n%s", diff)
	}
}

func TestParse_Sales(t *testing.T) {
	input := "Sales (\n    3010..3010 => Webshop\n    3010..4000 => Other sales\n) => Sum sales\n"
	doc, err := parseBoth(t, input)
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if diff := cmp.Diff(fullReportTree[:1], doc, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Parse returned unexpected diff (-want/+got)\n%s", diff)
	}
}

func TestParse_OmittedTitle(t *testing.T) {
	doc, err := parseBoth(t, "( 4000..5000 => Material ) => Sum material")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if got, want := len(doc), 1; got != want {
		t.Fatalf("len(doc) = %d, want %d", got, want)
	}
	if doc[0].Name != nil {
		t.Errorf("Name = %q, want nil", *doc[0].Name)
	}
	if diff := cmp.Diff(fullReportTree[1:2], doc, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Parse returned unexpected diff (-want/+got)\n%s", diff)
	}
}

func TestParse_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n\t\n", "\r\n"} {
		doc, err := parseBoth(t, input)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", input, err)
		}
		if len(doc) != 0 {
			t.Errorf("Parse(%q) returned %d spans, want 0", input, len(doc))
		}
	}
}

func TestParse_Trailers(t *testing.T) {
	for _, tc := range []struct {
		input string
		want  qacct.SumType
	}{
		{"(1..2 => a)", qacct.SumType{Kind: qacct.NoSum}},
		{"(1..2 => a) =>", qacct.SumType{Kind: qacct.SumTotal}},
		{"(1..2 => a) =>   \n", qacct.SumType{Kind: qacct.SumTotal}},
		{"(1..2 => a)=>Total", qacct.SumType{Kind: qacct.SumTotal, Label: str("Total")}},
		{"(1..2 => a)\n=> Total  \n", qacct.SumType{Kind: qacct.SumTotal, Label: str("Total")}},
	} {
		doc, err := parseBoth(t, tc.input)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tc.input, err)
			continue
		}
		if diff := cmp.Diff(tc.want, doc[0].SumType); diff != "" {
			t.Errorf("Parse(%q) sum type diff (-want/+got)\n%s", tc.input, diff)
		}
	}
}

func TestParse_EmptyRangeLabel(t *testing.T) {
	doc, err := parseBoth(t, "(\n1..2 =>\n3..4=>x)")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	want := []qacct.Range{{Title: "", From: 1, To: 2}, {Title: "x", From: 3, To: 4}}
	if diff := cmp.Diff(want, doc[0].Ranges); diff != "" {
		t.Errorf("Ranges diff (-want/+got)\n%s", diff)
	}
}

func TestParse_RangeBoundsNotChecked(t *testing.T) {
	doc, err := parseBoth(t, "(5000..4000 => Backwards)")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if got := doc[0].Ranges[0]; got.From != 5000 || got.To != 4000 {
		t.Errorf("Range = %+v, want From 5000, To 4000", got)
	}
}

func TestParse_InterleavedOrder(t *testing.T) {
	input := `Group (
    1..2 => first
    (
        3..4 => second
    )
    5..6 => third
    Nested (
        7..8 => fourth
    ) => Sub nested
)`
	doc, err := parseBoth(t, input)
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	span := doc[0]
	wantOrder := []qacct.EntryKind{qacct.RangeEntry, qacct.SpanEntry, qacct.RangeEntry, qacct.SpanEntry}
	if diff := cmp.Diff(wantOrder, span.Order); diff != "" {
		t.Errorf("Order diff (-want/+got)\n%s", diff)
	}
	if got, want := span.SumType.Kind, qacct.NoSum; got != want {
		t.Errorf("SumType.Kind = %v, want %v", got, want)
	}
	if got, want := span.Subspans[0].SumType.Kind, qacct.NoSum; got != want {
		t.Errorf("Subspans[0].SumType.Kind = %v, want %v", got, want)
	}
	if diff := cmp.Diff(qacct.SumType{Kind: qacct.SubTotal, Label: str("Sub nested")}, span.Subspans[1].SumType); diff != "" {
		t.Errorf("Subspans[1].SumType diff (-want/+got)\n%s", diff)
	}

	var got []string
	for _, entry := range span.Entries() {
		if entry.Range != nil {
			got = append(got, entry.Range.Title)
		} else {
			got = append(got, "span:"+entry.Span.Title())
		}
	}
	want := []string{"first", "span:", "third", "span:Nested"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Entries diff (-want/+got)\n%s", diff)
	}
}

func TestParse_TitleStartingWithDigits(t *testing.T) {
	input := "Budget (\n    2024 plan (\n        1000..1999 => Assets\n    ) => Sum plan\n) => Total"
	doc, err := parseBoth(t, input)
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	sub := doc[0].Subspans[0]
	if got, want := sub.Title(), "2024 plan"; got != want {
		t.Errorf("subspan title = %q, want %q", got, want)
	}
	if diff := cmp.Diff(qacct.SumType{Kind: qacct.SubTotal, Label: str("Sum plan")}, sub.SumType); diff != "" {
		t.Errorf("subspan SumType diff (-want/+got)\n%s", diff)
	}
}

func TestParse_CRLF(t *testing.T) {
	crlf := strings.ReplaceAll(fullReport, "\n", "\r\n")
	doc, err := parseBoth(t, crlf)
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if diff := cmp.Diff(fullReportTree, doc, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Parse returned unexpected diff (-want/+got)\n%s", diff)
	}
}

func TestParse_SumTypeByNesting(t *testing.T) {
	doc, err := parseBoth(t, fullReport+"\n(\n (\n  (1..2 => x) => inner\n ) => middle\n)\n")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	for _, span := range doc {
		if span.SumType.Kind == qacct.SubTotal {
			t.Errorf("top-level span %q has SubTotal", span.Title())
		}
		checkNested(t, span.Subspans)
	}
}

func checkNested(t *testing.T, spans []qacct.Span) {
	t.Helper()
	for _, span := range spans {
		if span.SumType.Kind == qacct.SumTotal {
			t.Errorf("nested span %q has SumTotal", span.Title())
		}
		checkNested(t, span.Subspans)
	}
}

// nestedInput returns depth spans nested inside each other, each holding one range.
func nestedInput(depth int) string {
	var sb strings.Builder
	for i := 0; i < depth; i++ {
		sb.WriteString("(\n1000..1999 => Range\n")
	}
	for i := 0; i < depth; i++ {
		sb.WriteString(") => Sum\n")
	}
	return sb.String()
}

func TestParse_Nesting(t *testing.T) {
	const depth = 50
	doc, err := parseBoth(t, nestedInput(depth))
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if got, want := len(doc), 1; got != want {
		t.Fatalf("len(doc) = %d, want %d", got, want)
	}
	levels := 0
	for span := &doc[0]; span != nil; levels++ {
		wantKind := qacct.SubTotal
		if levels == 0 {
			wantKind = qacct.SumTotal
		}
		if span.Name != nil {
			t.Errorf("level %d: Name = %q, want nil", levels, *span.Name)
		}
		if got := span.SumType.Kind; got != wantKind {
			t.Errorf("level %d: SumType.Kind = %v, want %v", levels, got, wantKind)
		}
		if got, want := len(span.Ranges), 1; got != want {
			t.Errorf("level %d: len(Ranges) = %d, want %d", levels, got, want)
		}
		if len(span.Subspans) == 0 {
			span = nil
		} else {
			span = &span.Subspans[0]
		}
	}
	if levels != depth {
		t.Errorf("depth = %d, want %d", levels, depth)
	}
}

func TestParse_NestingBothParsersAgree(t *testing.T) {
	// large enough that a structural diff of the trees would not finish
	const depth = 1_000
	doc, err := parseBoth(t, nestedInput(depth))
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if got := treeDepth(doc); got != depth {
		t.Errorf("depth = %d, want %d", got, depth)
	}
}

func TestParse_TitleOnSeparateLine(t *testing.T) {
	doc, err := parseBoth(t, "Sales\n(\n 1..2 => a\n) => Sum")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	want := qacct.Document{
		{
			Name:    str("Sales"),
			Ranges:  []qacct.Range{{Title: "a", From: 1, To: 2}},
			SumType: qacct.SumType{Kind: qacct.SumTotal, Label: str("Sum")},
			Order:   ranges(1),
		},
	}
	if diff := cmp.Diff(want, doc, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Parse returned unexpected diff (-want/+got)\n%s", diff)
	}

	doc, err = parseBoth(t, "(\n Misc\n\n (\n  1..2 => a\n )\n)")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if got, want := len(doc[0].Subspans), 1; got != want {
		t.Fatalf("len(Subspans) = %d, want %d", got, want)
	}
	if got, want := doc[0].Subspans[0].Title(), "Misc"; got != want {
		t.Errorf("subspan title = %q, want %q", got, want)
	}
}

func TestParse_RangeArrowOnNextLine(t *testing.T) {
	doc, err := parseBoth(t, "(\n 1..2\n   => Office supplies\n)")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	want := []qacct.Range{{Title: "Office supplies", From: 1, To: 2}}
	if diff := cmp.Diff(want, doc[0].Ranges); diff != "" {
		t.Errorf("Ranges diff (-want/+got)\n%s", diff)
	}
}

func TestParse_ExplicitStackDeepNesting(t *testing.T) {
	const depth = 100_000
	doc, err := qacct.ParseString(nestedInput(depth), qacct.WithExplicitStack(true))
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	levels := 0
	for spans := []qacct.Span(doc); len(spans) != 0; spans = spans[0].Subspans {
		levels++
	}
	if levels != depth {
		t.Errorf("depth = %d, want %d", levels, depth)
	}
}
