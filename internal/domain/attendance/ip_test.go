package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIP(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain ipv4", "127.0.0.1", "127.0.0.1"},
		{"ipv4 mapped", "::ffff:127.0.0.1", "127.0.0.1"},
		{"ipv6 loopback", "::1", "127.0.0.1"},
		{"surrounding whitespace", "  192.168.1.10 \n", "192.168.1.10"},
		{"inner whitespace", "10.0. 0.1", "10.0.0.1"},
		{"mapped with whitespace", " ::ffff:10.1.2.3", "10.1.2.3"},
		{"ipv6 untouched", "fe80::1", "fe80::1"},
		{"upper case mapped prefix", "::FFFF:10.0.0.1", "10.0.0.1"},
		{"hex mapped form", "::ffff:0a00:0001", "10.0.0.1"},
		{"ipv6 canonical form", "FE80:0:0:0:0:0:0:1", "fe80::1"},
		{"expanded loopback", "0:0:0:0:0:0:0:1", "127.0.0.1"},
		{"not an address", "wifi-gateway", "wifi-gateway"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeIP(tt.in))
		})
	}
}

func TestNormalizeIP_LoopbackFormsAgree(t *testing.T) {
	assert.Equal(t, NormalizeIP("::ffff:127.0.0.1"), NormalizeIP("::1"))
	assert.Equal(t, NormalizeIP("::1"), NormalizeIP("127.0.0.1"))
}
