package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatStatus(t *testing.T) {
	tests := []struct {
		name   string
		ok     bool
		status string
		icon   string
	}{
		{
			name:   "success status",
			ok:     true,
			status: "Rendered 640x480",
			icon:   IconSuccess,
		},
		{
			name:   "failure status",
			ok:     false,
			status: "No renderer",
			icon:   IconError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatStatus(tt.ok, tt.status)

			if !strings.Contains(got, tt.status) {
				t.Errorf("FormatStatus() missing status text %q", tt.status)
			}
			if !strings.Contains(got, tt.icon) {
				t.Errorf("FormatStatus() ok=%v should contain %q", tt.ok, tt.icon)
			}
		})
	}
}

func TestFormatEvent(t *testing.T) {
	got := FormatEvent(7, "motion", "dx=1 dy=2")
	assert.Contains(t, got, "7")
	assert.Contains(t, got, "motion")
	assert.Contains(t, got, "dx=1 dy=2")

	bare := FormatEvent(1, "frame", "")
	assert.Contains(t, bare, "frame")
	assert.False(t, strings.HasSuffix(bare, " "), "no trailing space without detail")
}

func TestFormatAppHeader(t *testing.T) {
	got := FormatAppHeader("FORMATS", "headless")
	assert.Contains(t, got, "FORMATS")
	assert.Contains(t, got, "headless")
	assert.Contains(t, got, "─")
}

func TestTable(t *testing.T) {
	out := Table([]string{"FORMAT", "CODE"}, [][]string{
		{"AR24", "0x34325241"},
		{"XR24", "0x34325258"},
	}).String()

	for _, want := range []string{"FORMAT", "CODE", "AR24", "0x34325241", "XR24"} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, out, "╭", "rounded border")
}

func TestCenter(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		content string
	}{
		{name: "short content", width: 20, content: "Test"},
		{name: "exact width", width: 4, content: "Test"},
		{name: "content longer than width", width: 2, content: "Test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Center(tt.width, tt.content)
			if !strings.Contains(got, tt.content) {
				t.Errorf("Center() missing content %q", tt.content)
			}
		})
	}
}

func TestCreateSeparator(t *testing.T) {
	assert.Contains(t, CreateSeparator(3, "="), "===")
	assert.Contains(t, CreateSeparator(0, ""), strings.Repeat("─", 50))
}
