package validators

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCPF(t *testing.T) {
	for _, raw := range []string{"529.982.247-25", "52998224725", " 111 444 777 35 "} {
		cpf, err := NormalizeCPF(raw)
		require.NoError(t, err, raw)

		again, err := NormalizeCPF(cpf)
		require.NoError(t, err)
		assert.Equal(t, cpf, again)
	}

	for _, raw := range []string{"529.982.247-26", "52998224715", "111.111.111-11", "1234", "abcdefghijk", ""} {
		_, err := NormalizeCPF(raw)
		assert.ErrorIs(t, err, ErrInvalidCPF, raw)
	}
}

func TestNormalizeCNPJ(t *testing.T) {
	cnpj, err := NormalizeCNPJ("11.222.333/0001-81")
	require.NoError(t, err)
	assert.Equal(t, "11222333000181", cnpj)

	for _, raw := range []string{"11.222.333/0001-82", "00000000000000", "112223330001"} {
		_, err := NormalizeCNPJ(raw)
		assert.ErrorIs(t, err, ErrInvalidCNPJ, raw)
	}
}

func TestNormalizePhone(t *testing.T) {
	phone, err := NormalizePhone("+55 (11) 91234-5678")
	require.NoError(t, err)
	assert.Equal(t, "+5511912345678", phone)

	for _, raw := range []string{"11 91234-5678", "+", "+55 11 9abc", "+1234567890123456789012"} {
		_, err := NormalizePhone(raw)
		assert.ErrorIs(t, err, ErrInvalidPhone, raw)
	}
}

type fakeResolver struct {
	mx  map[string]bool
	ips map[string]bool
}

func (f fakeResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	if f.mx[name] {
		return []*net.MX{{Host: "mx." + name}}, nil
	}
	return nil, errors.New("no mx")
}

func (f fakeResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	if f.ips[host] {
		return []net.IPAddr{{IP: net.IPv4(127, 0, 0, 1)}}, nil
	}
	return nil, errors.New("no host")
}

func TestIsEmailDomainValid(t *testing.T) {
	r := fakeResolver{
		mx:  map[string]bool{"mail.example": true},
		ips: map[string]bool{"a.example": true},
	}
	ctx := context.Background()

	assert.True(t, IsEmailDomainValid(ctx, r, "ana@mail.example"))
	assert.True(t, IsEmailDomainValid(ctx, r, "ana@a.example"))
	assert.False(t, IsEmailDomainValid(ctx, r, "ana@nothing.example"))
	assert.False(t, IsEmailDomainValid(ctx, r, "ana@"))
	assert.False(t, IsEmailDomainValid(ctx, r, "@mail.example"))
	assert.False(t, IsEmailDomainValid(ctx, r, "no-at-sign"))
}
