package validators

import (
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

var (
	ErrInvalidCPF   = httperr.ErrBusiness("invalid_cpf")
	ErrInvalidCNPJ  = httperr.ErrBusiness("invalid_cnpj")
	ErrInvalidPhone = httperr.ErrBusiness("invalid_phone")
)

var separators = strings.NewReplacer(" ", "", ".", "", "-", "", "/", "", "(", "", ")", "")

// StripSeparators removes spaces, dots, hyphens, slashes and parentheses.
func StripSeparators(s string) string {
	return separators.Replace(strings.TrimSpace(s))
}

func digits(s string, n int) ([]int, bool) {
	if len(s) != n {
		return nil, false
	}
	out := make([]int, n)
	for i, r := range s {
		if r < '0' || r > '9' {
			return nil, false
		}
		out[i] = int(r - '0')
	}
	return out, true
}

func allSame(d []int) bool {
	for _, v := range d[1:] {
		if v != d[0] {
			return false
		}
	}
	return true
}

// NormalizeCPF strips separators and validates both check digits.
func NormalizeCPF(raw string) (string, error) {
	cpf := StripSeparators(raw)
	d, ok := digits(cpf, 11)
	if !ok || allSame(d) {
		return "", ErrInvalidCPF
	}

	for pos := 9; pos <= 10; pos++ {
		sum := 0
		for i := 0; i < pos; i++ {
			sum += d[i] * (pos + 1 - i)
		}
		check := sum * 10 % 11 % 10
		if check != d[pos] {
			return "", ErrInvalidCPF
		}
	}
	return cpf, nil
}

var (
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// NormalizeCNPJ strips separators and validates both check digits.
func NormalizeCNPJ(raw string) (string, error) {
	cnpj := StripSeparators(raw)
	d, ok := digits(cnpj, 14)
	if !ok || allSame(d) {
		return "", ErrInvalidCNPJ
	}

	for pos, weights := range map[int][]int{12: cnpjWeights1, 13: cnpjWeights2} {
		sum := 0
		for i, w := range weights {
			sum += d[i] * w
		}
		check := 11 - sum%11
		if check >= 10 {
			check = 0
		}
		if check != d[pos] {
			return "", ErrInvalidCNPJ
		}
	}
	return cnpj, nil
}

// NormalizePhone strips separators and requires a leading "+" followed by
// digits only.
func NormalizePhone(raw string) (string, error) {
	phone := StripSeparators(raw)
	if len(phone) < 2 || phone[0] != '+' {
		return "", ErrInvalidPhone
	}
	if _, ok := digits(phone[1:], len(phone)-1); !ok {
		return "", ErrInvalidPhone
	}
	if len(phone) > 21 {
		return "", ErrInvalidPhone
	}
	return phone, nil
}
