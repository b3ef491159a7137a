package repository

import (
	"errors"
	"reflect"
	"testing"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sqlite", errors.New("UNIQUE constraint failed: achievements.child_id, achievements.type"), true},
		{"postgres", errors.New(`pq: duplicate key value violates unique constraint "uq_achievements_child_type"`), true},
		{"mysql", errors.New("Error 1062: Duplicate entry 'c1-science_explorer' for key 'uq_achievements_child_type'"), true},
		{"other", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueViolation(tt.err); got != tt.want {
				t.Errorf("isUniqueViolation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestMarshalStringsRoundTrip(t *testing.T) {
	encoded, err := marshalStrings([]string{"space", "dinosaurs"})
	if err != nil {
		t.Fatalf("marshalStrings: %v", err)
	}
	decoded, err := unmarshalStrings(encoded)
	if err != nil {
		t.Fatalf("unmarshalStrings: %v", err)
	}
	if !reflect.DeepEqual(decoded, []string{"space", "dinosaurs"}) {
		t.Errorf("round trip = %v", decoded)
	}
}

func TestMarshalStringsNil(t *testing.T) {
	encoded, err := marshalStrings(nil)
	if err != nil {
		t.Fatalf("marshalStrings: %v", err)
	}
	if encoded != "[]" {
		t.Errorf("nil slice encodes to %q, want []", encoded)
	}

	decoded, err := unmarshalStrings("")
	if err != nil {
		t.Fatalf("unmarshalStrings: %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("empty column decodes to %v, want empty", decoded)
	}
}
