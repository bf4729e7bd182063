package table

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"make10/internal/digits"
)

func TestDefault(t *testing.T) {
	tbl := Default()
	require.NotNil(t, tbl)
	assert.Same(t, tbl, Default(), "embedded table must be parsed once")

	// 540 of the 715 digit multisets can make 10.
	assert.Equal(t, 540, tbl.Len())

	assert.Empty(t, tbl.Lookup(0), "0000 has no solution")
	assert.Equal(t, []string{"((9*9)+9)/9"}, tbl.Lookup(9999))
	assert.Contains(t, tbl.Lookup(1234), "((1+2)+3)+4")
	assert.Contains(t, tbl.Lookup(5555), "((5*5)/5)+5")

	for _, idx := range tbl.Indices() {
		assert.True(t, digits.IsCanonical(idx), "entry %04d is not a sorted index", idx)
	}
}

func TestLookup_OutOfRange(t *testing.T) {
	tbl := Default()
	assert.Nil(t, tbl.Lookup(-1))
	assert.Nil(t, tbl.Lookup(digits.Slots))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    map[int][]string
		wantErr bool
	}{
		{
			name:    "two entries",
			content: "0019\t(0*0)+(1+9)\n1234\t((1+2)+3)+4\t(1+2)+(3+4)\n",
			want: map[int][]string{
				19:   {"(0*0)+(1+9)"},
				1234: {"((1+2)+3)+4", "(1+2)+(3+4)"},
			},
		},
		{
			name:    "blank lines ignored",
			content: "\n5555\t((5*5)/5)+5\n\n",
			want:    map[int][]string{5555: {"((5*5)/5)+5"}},
		},
		{
			name:    "index without solutions",
			content: "0000\n",
			want:    map[int][]string{},
		},
		{
			name:    "short index",
			content: "123\t1+2+3\n",
			wantErr: true,
		},
		{
			name:    "non numeric index",
			content: "abcd\t1\n",
			wantErr: true,
		},
		{
			name:    "negative index",
			content: "-001\t1\n",
			wantErr: true,
		},
		{
			name:    "duplicate index",
			content: "1234\ta\n1234\tb\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := Parse(strings.NewReader(tt.content))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), tbl.Len())
			for idx, sols := range tt.want {
				assert.Equal(t, sols, tbl.Lookup(idx))
			}
		})
	}
}

func TestNew(t *testing.T) {
	src := []string{"a", "b"}
	tbl, err := New(map[int][]string{12: src, 13: nil})
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())

	src[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, tbl.Lookup(12), "New must copy its input")

	_, err = New(map[int][]string{digits.Slots: {"x"}})
	assert.Error(t, err)
}

func TestWriteTo_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	_, err := Default().WriteTo(&buf)
	require.NoError(t, err)

	assert.Equal(t, embedded, buf.String(), "writer must reproduce the embedded asset byte for byte")

	back, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, Default().Indices(), back.Indices())
}
