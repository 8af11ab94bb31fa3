package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestAmountUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantSet bool
		want    float64
		wantErr bool
	}{
		{"json number", `123.5`, true, 123.5, false},
		{"integer", `40`, true, 40, false},
		{"numeric string", `"99.9"`, true, 99.9, false},
		{"string with spaces", `" 250 "`, true, 250, false},
		{"empty string means absent", `""`, false, 0, false},
		{"null means absent", `null`, false, 0, false},
		{"garbage string", `"abc"`, false, 0, true},
		{"boolean", `true`, false, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			err := json.Unmarshal([]byte(tt.input), &a)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if a.IsSet() != tt.wantSet {
				t.Errorf("IsSet() = %v, want %v", a.IsSet(), tt.wantSet)
			}
			if tt.wantSet && a.Float() != tt.want {
				t.Errorf("Float() = %v, want %v", a.Float(), tt.want)
			}
		})
	}
}

func TestAmountInStruct(t *testing.T) {
	// The exact payload a browser form submits: untouched fields arrive as
	// empty strings, not nulls.
	payload := `{"kms_travelled": "120", "toll": "", "diesel_cost": 500}`
	var in OrderInput
	if err := json.Unmarshal([]byte(payload), &in); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !in.KmsTravelled.IsSet() || in.KmsTravelled.Float() != 120 {
		t.Errorf("kms_travelled = %v, want 120", in.KmsTravelled.Ptr())
	}
	if in.Toll.IsSet() {
		t.Error("empty-string toll should be absent, not zero")
	}
	if !in.DieselCost.IsSet() || in.DieselCost.Float() != 500 {
		t.Errorf("diesel_cost = %v, want 500", in.DieselCost.Ptr())
	}
}

func TestFlexTimeUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantSet bool
		wantErr bool
	}{
		{"rfc3339", `"2025-03-10T14:30:00Z"`, true, false},
		{"rfc3339 with offset", `"2025-03-10T14:30:00+05:30"`, true, false},
		{"datetime-local", `"2025-03-10T14:30"`, true, false},
		{"date only", `"2025-03-10"`, true, false},
		{"empty string", `""`, false, false},
		{"null", `null`, false, false},
		{"garbage", `"not-a-date"`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ft FlexTime
			err := json.Unmarshal([]byte(tt.input), &ft)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && ft.IsSet() != tt.wantSet {
				t.Errorf("IsSet() = %v, want %v", ft.IsSet(), tt.wantSet)
			}
		})
	}
}

func TestFlexTimeNormalizesToUTC(t *testing.T) {
	var ft FlexTime
	if err := json.Unmarshal([]byte(`"2025-03-10T14:30:00+05:30"`), &ft); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	got := *ft.Ptr()
	want := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parsed = %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Errorf("location = %v, want UTC", got.Location())
	}
}

func TestParseAmount(t *testing.T) {
	if a, err := ParseAmount(""); err != nil || a.IsSet() {
		t.Errorf("ParseAmount(\"\") = %v, %v; want absent, nil", a.Ptr(), err)
	}
	if a, err := ParseAmount("42.5"); err != nil || a.Float() != 42.5 {
		t.Errorf("ParseAmount(42.5) = %v, %v", a.Ptr(), err)
	}
	if _, err := ParseAmount("x"); err == nil {
		t.Error("ParseAmount(x) should fail")
	}
}

func TestParseFlexTime(t *testing.T) {
	tests := []struct {
		input   string
		wantSet bool
		wantErr bool
	}{
		{"", false, false},
		{"2025-01-15T10:00", true, false},
		{"2025-01-15 10:00:00", true, false},
		{"15-01-2025", true, false},
		{"15/01/2025 09:30", true, false},
		{"nope", false, true},
	}
	for _, tt := range tests {
		ft, err := ParseFlexTime(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFlexTime(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err == nil && ft.IsSet() != tt.wantSet {
			t.Errorf("ParseFlexTime(%q).IsSet() = %v, want %v", tt.input, ft.IsSet(), tt.wantSet)
		}
	}
}

func TestOrderJSONOmitsAbsentFields(t *testing.T) {
	o := Order{
		ID:           "abc",
		CustomerName: "Test",
		Phone:        "12345",
		OrderType:    OrderTypeCash,
		DateTime:     time.Now().UTC(),
	}
	data, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{"company_name", "amount_received", "incentive_amount", "reach_time"} {
		if _, ok := m[key]; ok {
			t.Errorf("absent field %q should be omitted from JSON", key)
		}
	}
}
