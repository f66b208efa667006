package ui

import "testing"

// Under `go test` stdout is not a terminal, so the TTY fallback is false and
// only the environment overrides can enable color.
func TestShouldUseColor(t *testing.T) {
	tests := []struct {
		name    string
		noColor string
		force   string
		clic    string
		want    bool
	}{
		{"default without tty", "", "", "", false},
		{"force enables", "", "1", "", true},
		{"force trims whitespace", "", " 1 ", "", true},
		{"force zero is not a force", "", "0", "", false},
		{"no_color wins over force", "1", "1", "", false},
		{"clicolor zero disables", "", "", "0", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tc.noColor)
			t.Setenv("CLICOLOR_FORCE", tc.force)
			t.Setenv("CLICOLOR", tc.clic)
			if got := ShouldUseColor(); got != tc.want {
				t.Errorf("ShouldUseColor() = %v, want %v", got, tc.want)
			}
		})
	}
}
