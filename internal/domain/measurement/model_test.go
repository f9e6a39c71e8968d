package measurement

import (
	"encoding/json"
	"testing"
)

func TestReadingValue_Number(t *testing.T) {
	var v ReadingValue
	if err := json.Unmarshal([]byte(`98.5`), &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Number == nil || *v.Number != 98.5 {
		t.Errorf("unexpected value: %+v", v)
	}
	if v.BP != nil {
		t.Error("BP must be nil for numeric values")
	}
}

func TestReadingValue_BloodPressure(t *testing.T) {
	var v ReadingValue
	if err := json.Unmarshal([]byte(`{"systolic":120,"diastolic":80}`), &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.BP == nil || v.BP.Systolic != 120 || v.BP.Diastolic != 80 {
		t.Errorf("unexpected value: %+v", v)
	}
}

func TestReadingValue_RejectsPartialPair(t *testing.T) {
	var v ReadingValue
	if err := json.Unmarshal([]byte(`{"systolic":120}`), &v); err == nil {
		t.Fatal("expected error for missing diastolic")
	}
}

func TestReadingValue_RejectsString(t *testing.T) {
	var v ReadingValue
	if err := json.Unmarshal([]byte(`"high"`), &v); err == nil {
		t.Fatal("expected error for string value")
	}
}

func TestReadings_RoundTripPreservesOrder(t *testing.T) {
	input := `[
		{"type":"glucose","value":104,"unit":"mg/dL"},
		{"type":"blood_pressure","value":{"systolic":118,"diastolic":76},"unit":"mmHg"},
		{"type":"weight","value":71.2,"unit":"kg","note":"morning"}
	]`

	var readings []Reading
	if err := json.Unmarshal([]byte(input), &readings); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(readings) != 3 {
		t.Fatalf("expected 3 readings, got %d", len(readings))
	}

	out, err := json.Marshal(readings)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var again []Reading
	if err := json.Unmarshal(out, &again); err != nil {
		t.Fatalf("re-unmarshal failed: %v", err)
	}

	for i := range readings {
		if again[i].Type != readings[i].Type {
			t.Errorf("order not preserved at %d: %s vs %s", i, again[i].Type, readings[i].Type)
		}
	}
	if again[1].Value.BP == nil || again[1].Value.BP.Systolic != 118 {
		t.Error("blood pressure value lost in round trip")
	}
	if again[2].Note == nil || *again[2].Note != "morning" {
		t.Error("note lost in round trip")
	}
}
