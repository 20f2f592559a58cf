package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectPhotoURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "open link with id param",
			in:   "https://drive.google.com/open?id=1AbC&usp=sharing",
			want: "https://lh3.googleusercontent.com/d/1AbC",
		},
		{
			name: "file view link",
			in:   "https://drive.google.com/file/d/1XyZ/view?usp=sharing",
			want: "https://lh3.googleusercontent.com/d/1XyZ",
		},
		{
			name: "plain url untouched",
			in:   "https://example.com/photo.jpg",
			want: "https://example.com/photo.jpg",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DirectPhotoURL(tt.in))
		})
	}
}
