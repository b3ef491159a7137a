package credentials

import (
	"strings"
	"testing"
)

func TestChildUsername(t *testing.T) {
	tests := []struct {
		name           string
		first          string
		last           string
		parentUsername string
		expected       string
	}{
		{
			name:  "simple",
			first: "Emma", last: "Smith", parentUsername: "happydad",
			expected: "emmasmith_happydad",
		},
		{
			name:  "spaces stripped",
			first: "Mary Jane", last: "van Dyke", parentUsername: "the parents",
			expected: "maryjanevandyke_theparents",
		},
		{
			name:  "already lowercase",
			first: "leo", last: "bloom", parentUsername: "bloomer",
			expected: "leobloom_bloomer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ChildUsername(tt.first, tt.last, tt.parentUsername)
			if result != tt.expected {
				t.Errorf("ChildUsername() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestGenerateChildPassword(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		password, err := GenerateChildPassword()
		if err != nil {
			t.Fatalf("GenerateChildPassword: %v", err)
		}
		if len(password) != 8 {
			t.Errorf("password length = %d, want 8", len(password))
		}
		for _, c := range password {
			if !strings.ContainsRune(passwordChars, c) {
				t.Errorf("password contains unexpected character %q", c)
			}
		}
		seen[password] = true
	}

	// 20 draws from a 62^8 space colliding would mean a broken generator
	if len(seen) < 2 {
		t.Error("expected generated passwords to vary")
	}
}
