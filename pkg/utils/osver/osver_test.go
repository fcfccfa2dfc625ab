package osver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr bool
	}{
		{in: "6.8.0-45-generic", want: Version{6, 8, 0}},
		{in: "5.15.153.1-microsoft-standard-WSL2", want: Version{5, 15, 153}},
		{in: "4.19-rc1", want: Version{4, 19, 0}},
		{in: "14", want: Version{14, 0, 0}},
		{in: "14.5", want: Version{14, 5, 0}},
		{in: "11.0.1", want: Version{11, 0, 1}},
		{in: " 17.0\n", want: Version{17, 0, 0}},
		{in: "", wantErr: true},
		{in: "unknown", wantErr: true},
		{in: "a.b", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompare(t *testing.T) {
	assert.Equal(t, 0, Version{11, 0, 0}.Compare(Version{11, 0, 0}))
	assert.Equal(t, -1, Version{10, 15, 7}.Compare(Version{11, 0, 0}))
	assert.Equal(t, 1, Version{11, 0, 1}.Compare(Version{11, 0, 0}))
	assert.True(t, Version{14, 5, 0}.AtLeast(Version{11, 0, 0}))
	assert.False(t, Version{10, 15, 7}.AtLeast(Version{11, 0, 0}))
}
