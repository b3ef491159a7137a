package service

import (
	"encoding/json"
	"testing"
	"time"

	"buddy/internal/models"
)

func TestAgeRange(t *testing.T) {
	birth := func(years int) *time.Time {
		d := time.Now().AddDate(-years, 0, -30)
		return &d
	}
	tests := []struct {
		name      string
		birthDate *time.Time
		want      string
	}{
		{"unknown", nil, "6-8"},
		{"toddler", birth(4), "3-5"},
		{"young", birth(7), "6-8"},
		{"tween", birth(11), "9-12"},
		{"teen", birth(14), "13-15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AgeRange(tt.birthDate); got != tt.want {
				t.Errorf("AgeRange = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestGenerateOTP(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		otp, err := generateOTP()
		if err != nil {
			t.Fatalf("generateOTP: %v", err)
		}
		if len(otp) != 6 {
			t.Fatalf("otp %q is not 6 characters", otp)
		}
		for _, c := range otp {
			if c < '0' || c > '9' {
				t.Fatalf("otp %q contains non-digit", otp)
			}
		}
		seen[otp] = true
	}
	if len(seen) < 2 {
		t.Error("50 codes should not all collide")
	}
}

func TestLatestUserMessage(t *testing.T) {
	history := []ChatMessage{
		{Role: "user", Content: "why is the sky blue?"},
		{Role: "assistant", Content: "Because of how light scatters!"},
		{Role: "user", Content: "what about sunsets?"},
	}
	if got := latestUserMessage(history); got != "what about sunsets?" {
		t.Errorf("latestUserMessage = %q", got)
	}
	if got := latestUserMessage(nil); got != "" {
		t.Errorf("empty history should yield empty message, got %q", got)
	}
	if got := latestUserMessage([]ChatMessage{{Role: "assistant", Content: "hi"}}); got != "" {
		t.Errorf("assistant-only history should yield empty message, got %q", got)
	}
}

func TestDecodeAnswer(t *testing.T) {
	if got := decodeAnswer(json.RawMessage(`"plain text answer"`)); got != "plain text answer" {
		t.Errorf("decodeAnswer json string = %q", got)
	}
	if got := decodeAnswer(json.RawMessage(`raw model text`)); got != "raw model text" {
		t.Errorf("decodeAnswer raw = %q", got)
	}
}

func TestRedactUnanswered(t *testing.T) {
	unanswered := &models.ScienceQuestion{Explanation: "Mercury orbits closest to the sun."}
	redactUnanswered(unanswered)
	if unanswered.Explanation != "" {
		t.Error("unanswered question must not carry its explanation")
	}

	now := time.Now()
	answered := &models.ScienceQuestion{
		Explanation: "Mercury orbits closest to the sun.",
		AnsweredAt:  &now,
	}
	redactUnanswered(answered)
	if answered.Explanation == "" {
		t.Error("answered question should keep its explanation")
	}
}
