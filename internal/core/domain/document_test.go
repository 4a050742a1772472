package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestDocument_Fields tests Document structure fields
func TestDocument_Fields(t *testing.T) {
	now := time.Now()

	doc := Document{
		Path:      "/reports/q3.txt",
		Content:   "revenue grew",
		IndexedAt: now,
	}

	assert.Equal(t, "/reports/q3.txt", doc.Path)
	assert.Equal(t, "revenue grew", doc.Content)
	assert.Equal(t, now, doc.IndexedAt)
}

func TestDocument_Validate(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		wantErr error
	}{
		{"valid", Document{Path: "/a.txt", Content: "x"}, nil},
		{"missing path", Document{Content: "x"}, ErrInvalidInput},
		{"empty content", Document{Path: "/a.txt"}, ErrEmptyContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNormaliseWhitespace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"only whitespace", " \t\n\r\n  ", ""},
		{"collapses runs", "a  \t b\n\n\nc", "a b c"},
		{"trims ends", "\n  hello world  \n", "hello world"},
		{"unicode spaces", "a\u00a0\u3000b", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormaliseWhitespace(tt.in))
		})
	}
}
