package database

import "testing"

func TestRewritePlaceholdersToNumbered(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{
			name:     "no placeholders",
			query:    "SELECT 1",
			expected: "SELECT 1",
		},
		{
			name:     "single placeholder",
			query:    "SELECT * FROM rewards WHERE child_id = ?",
			expected: "SELECT * FROM rewards WHERE child_id = $1",
		},
		{
			name:     "multiple placeholders",
			query:    "UPDATE rewards SET level = ?, xp = ? WHERE child_id = ? AND level = ? AND xp = ?",
			expected: "UPDATE rewards SET level = $1, xp = $2 WHERE child_id = $3 AND level = $4 AND xp = $5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := rewritePlaceholdersToNumbered(tt.query)
			if result != tt.expected {
				t.Errorf("rewritePlaceholdersToNumbered() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestMySQLDSNParams(t *testing.T) {
	d := NewMySQLDialect()

	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "plain DSN",
			url:      "user:pass@tcp(localhost:3306)/buddy",
			expected: "user:pass@tcp(localhost:3306)/buddy?parseTime=true&multiStatements=true",
		},
		{
			name:     "existing params",
			url:      "user:pass@tcp(localhost:3306)/buddy?charset=utf8mb4",
			expected: "user:pass@tcp(localhost:3306)/buddy?charset=utf8mb4&parseTime=true&multiStatements=true",
		},
		{
			name:     "params already set",
			url:      "user:pass@tcp(localhost:3306)/buddy?parseTime=true&multiStatements=true",
			expected: "user:pass@tcp(localhost:3306)/buddy?parseTime=true&multiStatements=true",
		},
		{
			name:     "multiStatements alone is kept",
			url:      "user:pass@tcp(localhost:3306)/buddy?multiStatements=true",
			expected: "user:pass@tcp(localhost:3306)/buddy?multiStatements=true&parseTime=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := d.DSN(DialectConfig{URL: tt.url})
			if result != tt.expected {
				t.Errorf("DSN() = %q, want %q", result, tt.expected)
			}
		})
	}
}
