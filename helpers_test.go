package core

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestHeaders(t *testing.T) {
	tests := []struct {
		name   string
		header string
		value  string
		check  func(*http.Request) bool
		expect bool
	}{
		{"HX-Request true", "HX-Request", "true", IsHTMX, true},
		{"HX-Request false", "HX-Request", "false", IsHTMX, false},
		{"HX-Request other value", "HX-Request", "yes", IsHTMX, false},
		{"HX-Request missing", "", "", IsHTMX, false},
		{"HX-Boosted true", "HX-Boosted", "true", IsBoosted, true},
		{"HX-Boosted missing", "", "", IsBoosted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			if got := tt.check(req); got != tt.expect {
				t.Errorf("got %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestTargetID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := TargetID(req); got != "" {
		t.Errorf("TargetID() = %q, want empty", got)
	}
	req.Header.Set("HX-Target", "todo-list")
	if got := TargetID(req); got != "todo-list" {
		t.Errorf("TargetID() = %q, want %q", got, "todo-list")
	}
}
