package pathutil

import "testing"

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		base    string
		home    string
		want    string
		wantErr bool
	}{
		{"relative", "wt-a", "/ws/repo", "/home/u", "/ws/repo/wt-a", false},
		{"parent relative", "../wt-a", "/ws/repo", "/home/u", "/ws/wt-a", false},
		{"dot relative", "./wt-a", "/ws/repo", "/home/u", "/ws/repo/wt-a", false},
		{"absolute", "/opt/wt", "/ws/repo", "/home/u", "/opt/wt", false},
		{"absolute uncleaned", "/opt//wt/../wt2", "/ws/repo", "/home/u", "/opt/wt2", false},
		{"home relative", "~/wt", "/ws/repo", "/home/u", "/home/u/wt", false},
		{"bare tilde", "~", "/ws/repo", "/home/u", "/home/u", false},
		{"tilde user", "~other/wt", "/ws/repo", "/home/u", "", true},
		{"empty", "", "/ws/repo", "/home/u", "", true},
		{"no home", "~/wt", "/ws/repo", "", "", true},
		{"relative base", "wt", "repo", "/home/u", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.raw, tt.base, tt.home)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Resolve(%q, %q, %q) error = %v, wantErr %v", tt.raw, tt.base, tt.home, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q, %q, %q) = %q, want %q", tt.raw, tt.base, tt.home, got, tt.want)
			}
		})
	}
}
