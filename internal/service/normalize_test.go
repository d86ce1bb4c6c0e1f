package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeValue(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"true", "1"},
		{"false", "0"},
		{"1", "1"},
		{"0", "0"},
		{"23.5", "23.5"},
		{"-4", "-4"},
		{"True", "True"},
		{"FALSE", "FALSE"},
		{"", ""},
		{"on", "on"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeValue(tc.in), "normalize %q", tc.in)
	}
}

func TestNormalizeValueIdempotent(t *testing.T) {
	for _, in := range []string{"true", "false", "1", "0", "17.2", "text"} {
		once := NormalizeValue(in)
		assert.Equal(t, once, NormalizeValue(once), "normalize(normalize(%q))", in)
	}
}
