package httpmetrics

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"/health", "/health"},
		{"/api/posts", "/api/posts"},
		{"/api/posts/42", "/api/posts/{id}"},
		{"/api/data/123456", "/api/data/{id}"},
		{"/api/data/username/alice", "/api/data/username/{username}"},
		{"/api/posts/user/bob-42", "/api/posts/user/{username}"},
		{"/auth/login", "/auth/login"},
	}

	for _, tt := range tests {
		if got := NormalizePath(tt.in); got != tt.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
