package security

import "testing"

func TestScanFlagsNestedScriptTag(t *testing.T) {
	body := map[string]any{
		"title": "Thermodynamics",
		"meta": map[string]any{
			"authors": []any{
				map[string]any{"note": "<script>alert(1)</script>"},
			},
		},
	}
	if !Scan(body) {
		t.Fatalf("expected nested script tag to be flagged")
	}
}

func TestScanNoFalsePositiveOnPartialWord(t *testing.T) {
	if Scan("Scripture") {
		t.Fatalf("'Scripture' must not match the script keyword")
	}
	if Scan(map[string]any{"subject": "Evaluation of Javascripting habits"}) {
		t.Fatalf("partial-word matches must not fire")
	}
}

func TestScanWholeWordTriggers(t *testing.T) {
	for _, s := range []string{
		"run script now",
		"onload = pwn",
		"eval this",
		"javascript:alert(1)",
	} {
		if !Scan(s) {
			t.Fatalf("expected %q to be flagged", s)
		}
	}
}

func TestScanPathTraversal(t *testing.T) {
	if !Scan("../../etc/passwd") {
		t.Fatalf("expected traversal sequence to be flagged")
	}
	if !Scan(`..\windows\system32`) {
		t.Fatalf("expected backslash traversal to be flagged")
	}
}

func TestScanSQLPhrases(t *testing.T) {
	for _, s := range []string{
		"1 UNION SELECT password FROM users",
		"x'; drop   table users; --",
		"INSERT INTO covers VALUES",
	} {
		if !Scan(s) {
			t.Fatalf("expected %q to be flagged", s)
		}
	}
	if Scan("the union selected a delegate") {
		t.Fatalf("separated keywords must not fire as a phrase")
	}
}

func TestScanIgnoresKeysAndNonStringLeaves(t *testing.T) {
	body := map[string]any{
		"<script>": "clean value", // keys are not scanned
		"count":    float64(42),
		"active":   true,
		"none":     nil,
	}
	if Scan(body) {
		t.Fatalf("expected clean payload to pass")
	}
}

func TestScanDepthCapFlagsPathologicalNesting(t *testing.T) {
	v := any("harmless")
	for i := 0; i < maxScanDepth+1; i++ {
		v = map[string]any{"d": v}
	}
	if !Scan(v) {
		t.Fatalf("expected payload beyond the depth cap to be flagged")
	}

	shallow := any("harmless")
	for i := 0; i < 3; i++ {
		shallow = map[string]any{"d": shallow}
	}
	if Scan(shallow) {
		t.Fatalf("expected shallow clean payload to pass")
	}
}
