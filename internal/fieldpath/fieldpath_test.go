package fieldpath

import "testing"

type member struct {
	FullName string `json:"full_name"`
	Phone    string `yaml:"phone_no"`
	Address  *address
	hidden   string
}

type address struct {
	City string
}

func TestLookup(t *testing.T) {
	m := member{FullName: "Asha", Phone: "98450", Address: &address{City: "Mysuru"}, hidden: "x"}
	row := map[string]interface{}{
		"member": m,
		"Month":  3,
		"nested": map[string]interface{}{"note": nil},
	}

	tests := []struct {
		name   string
		path   string
		want   interface{}
		wantOK bool
	}{
		{"field by name", "member.FullName", "Asha", true},
		{"field by json tag", "member.full_name", "Asha", true},
		{"field by yaml tag", "member.phone-no", "98450", true},
		{"through pointer", "member.address.city", "Mysuru", true},
		{"map key case insensitive", "month", 3, true},
		{"nil value", "nested.note", nil, false},
		{"missing key", "nope", nil, false},
		{"missing field", "member.email", nil, false},
		{"unexported field", "member.hidden", nil, false},
		{"past a scalar", "month.value", nil, false},
		{"empty path", " . ", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Lookup(row, tt.path)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestLookup_NilPointerRecord(t *testing.T) {
	var m *member
	if _, ok := Lookup(m, "full_name"); ok {
		t.Fatal("expected lookup on nil pointer to fail")
	}
	if _, ok := Lookup(nil, "full_name"); ok {
		t.Fatal("expected lookup on nil to fail")
	}
}

func TestSplit(t *testing.T) {
	got := Split(" a..b . c ")
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("Split() = %q", got)
	}
}

func TestNormalizeName(t *testing.T) {
	if got := NormalizeName("Collected_On-Date"); got != "collectedondate" {
		t.Errorf("NormalizeName() = %q", got)
	}
}
