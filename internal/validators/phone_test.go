package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{name: "plain digits", in: "11988880001", want: "11988880001", ok: true},
		{name: "e164", in: "+5511988880001", want: "+5511988880001", ok: true},
		{name: "formatted", in: "+55 (11) 98888-0001", want: "+5511988880001", ok: true},
		{name: "too short", in: "1234567", ok: false},
		{name: "too long", in: "+1234567890123456", ok: false},
		{name: "letters", in: "11abc880001", ok: false},
		{name: "plus in the middle", in: "55+11988880001", ok: false},
		{name: "empty", in: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizePhone(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
