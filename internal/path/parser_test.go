// internal/path/parser_test.go
package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name         string
		raw          string
		expectErr    bool
		expectedPath *Path
	}{
		{
			name: "root",
			raw:  "/",
			expectedPath: &Path{
				Absolute: true,
			},
		},
		{
			name: "absolute with names",
			raw:  "/Models/counter/count",
			expectedPath: &Path{
				Absolute: true,
				Segments: []Segment{NewNameSegment("Models"), NewNameSegment("counter"), NewNameSegment("count")},
			},
		},
		{
			name: "absolute with index",
			raw:  "/Models/[0]/values/[15]",
			expectedPath: &Path{
				Absolute: true,
				Segments: []Segment{NewNameSegment("Models"), NewIndexSegment(0), NewNameSegment("values"), NewIndexSegment(15)},
			},
		},
		{
			name: "relative navigation",
			raw:  "./../sibling",
			expectedPath: &Path{
				Segments: []Segment{{Kind: Self, Index: -1}, {Kind: Parent, Index: -1}, NewNameSegment("sibling")},
			},
		},
		{name: "error - empty string", raw: "", expectErr: true},
		{name: "error - repeated separator", raw: "a//b", expectErr: true},
		{name: "error - trailing separator", raw: "/Models/a/", expectErr: true},
		{name: "error - double root", raw: "//", expectErr: true},
		{name: "error - leading digit", raw: "/0abc", expectErr: true},
		{name: "error - malformed index", raw: "/a/[x]", expectErr: true},
		{name: "error - trailing text after index", raw: "/a/[0]b", expectErr: true},
		{name: "error - triple dot", raw: "...", expectErr: true},
		{name: "error - index overflow", raw: "/a/[99999999999999999999]", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Parse(tc.raw)

			if tc.expectErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidPath)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, p)
			assert.True(t, tc.expectedPath.Equal(p), "parsed path %#v does not match expected %#v", p, tc.expectedPath)
		})
	}
}
