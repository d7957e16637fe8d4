package safety

import (
	"reflect"
	"testing"
)

const completeContract = `This Contract is made on the Date of 2024-01-01
between Party A and Party B.
Signature: ____________________`

func TestCheck_CompleteDocumentIsSafe(t *testing.T) {
	a := NewRulesAnalyzer()

	v := a.Check(completeContract)

	if !v.IsSafe {
		t.Fatalf("expected safe, got findings: %v", v.Findings)
	}
	if len(v.Findings) != 0 {
		t.Fatalf("expected no findings, got %v", v.Findings)
	}
}

func TestCheck_MissingSignature(t *testing.T) {
	a := NewRulesAnalyzer()

	v := a.Check("This document is made on some date between party A and party B.")

	if v.IsSafe {
		t.Fatal("expected unsafe verdict")
	}
	want := []string{"Missing signature"}
	if !reflect.DeepEqual(v.Findings, want) {
		t.Fatalf("want %v, got %v", want, v.Findings)
	}
}

func TestCheck_EmptyTextReportsAllFindingsInOrder(t *testing.T) {
	a := NewRulesAnalyzer()

	v := a.Check("")

	want := []string{"Missing crucial date", "Missing party names", "Missing signature"}
	if !reflect.DeepEqual(v.Findings, want) {
		t.Fatalf("want %v, got %v", want, v.Findings)
	}
}

func TestCheck_CaseInsensitive(t *testing.T) {
	a := NewRulesAnalyzer()

	v := a.Check("DATE: today. PARTY: both. SIGNATURE: below.")

	if !v.IsSafe {
		t.Fatalf("expected safe, got findings: %v", v.Findings)
	}
}

func TestCheck_WholeWordsOnly(t *testing.T) {
	a := NewRulesAnalyzer()

	// "update", "parties" and "signatures" must not satisfy the markers.
	v := a.Check("update on the counterparties and their signatures")

	if v.IsSafe {
		t.Fatal("expected unsafe verdict for substring-only matches")
	}
	if len(v.Findings) != 3 {
		t.Fatalf("expected 3 findings, got %v", v.Findings)
	}
}

func TestCheck_Deterministic(t *testing.T) {
	a := NewRulesAnalyzer()

	first := a.Check("no markers here")
	second := a.Check("no markers here")

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("verdicts differ for identical input: %v vs %v", first, second)
	}
}
