package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDate_UnmarshalJSON_Layouts(t *testing.T) {
	inputs := []string{
		`"1965-06-01"`,
		`"01-06-1965"`,
		`"1965/06/01"`,
		`"June 1, 1965"`,
		`"Jun 1, 1965"`,
		`"1965-06-01T15:04:05Z"`,
	}

	for _, in := range inputs {
		var d Date
		if err := json.Unmarshal([]byte(in), &d); err != nil {
			t.Fatalf("unmarshal %s: %v", in, err)
		}
		if got := d.String(); got != "1965-06-01" {
			t.Errorf("unmarshal %s: expected 1965-06-01, got %s", in, got)
		}
	}
}

func TestDate_UnmarshalJSON_Invalid(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"not a date"`), &d); err == nil {
		t.Fatalf("expected error for unparseable date")
	}
	if err := json.Unmarshal([]byte(`1965`), &d); err == nil {
		t.Fatalf("expected error for non-string date")
	}
}

func TestDate_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(NewDate(1965, time.June, 1))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"1965-06-01"` {
		t.Errorf("expected \"1965-06-01\", got %s", b)
	}

	b, _ = json.Marshal(Date{})
	if string(b) != "null" {
		t.Errorf("expected null for zero date, got %s", b)
	}
}

func TestDate_Scan(t *testing.T) {
	want := "1965-06-01"

	cases := []any{
		time.Date(1965, time.June, 1, 13, 0, 0, 0, time.UTC),
		"1965-06-01",
		"1965-06-01 00:00:00+00:00",
		[]byte("1965-06-01T00:00:00Z"),
	}

	for _, c := range cases {
		var d Date
		if err := d.Scan(c); err != nil {
			t.Fatalf("scan %v: %v", c, err)
		}
		if d.String() != want {
			t.Errorf("scan %v: expected %s, got %s", c, want, d.String())
		}
	}

	var d Date
	if err := d.Scan(42); err == nil {
		t.Errorf("expected error scanning int")
	}
}

func TestDate_Value(t *testing.T) {
	d := Date{Time: time.Date(1965, time.June, 1, 23, 59, 0, 0, time.UTC)}

	v, err := d.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}

	got, ok := v.(time.Time)
	if !ok {
		t.Fatalf("expected time.Time, got %T", v)
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("expected time of day stripped, got %v", got)
	}
}
