package vpm_test

import (
	"testing"

	"boothvpm/internal/vpm"
)

func TestIncludeInRuntime(t *testing.T) {
	cases := []struct {
		rel   string
		isDir bool
		want  bool
	}{
		{"model.fbx", false, true},
		{"Textures/body.png", false, true},
		{"Textures", true, true},
		{"images", true, false},
		{"images/preview.png", false, false},
		{"Textures/images", true, false},
		{"Textures/images/thumb.png", false, false},
		{"metadata.json", false, false},
		{"Docs/metadata.json", false, false},
		{"metadata.json", true, true},
		{"images.txt", false, true},
		{"Images/preview.png", false, true},
	}
	for _, tc := range cases {
		if got := vpm.IncludeInRuntime(tc.rel, tc.isDir); got != tc.want {
			t.Errorf("IncludeInRuntime(%q, %v) = %v, want %v", tc.rel, tc.isDir, got, tc.want)
		}
	}
}
