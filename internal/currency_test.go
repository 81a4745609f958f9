package internal

import (
	"testing"
)

// withLocaleEnv isolates the test from the host locale
func withLocaleEnv(t *testing.T, lcMonetary, lcAll, lang string) {
	t.Helper()
	skipSystemLocale = true
	t.Cleanup(func() { skipSystemLocale = false })
	t.Setenv("LC_MONETARY", lcMonetary)
	t.Setenv("LC_ALL", lcAll)
	t.Setenv("LANG", lang)
}

func TestGetCurrency_KnownCurrencies(t *testing.T) {
	codes := []string{"SEK", "USD", "EUR", "GBP", "NOK", "DKK", "CHF", "JPY", "CAD", "AUD", "BRL"}

	for _, code := range codes {
		t.Run(code, func(t *testing.T) {
			c := GetCurrency(code)
			if c.Code != code {
				t.Errorf("Code = %q, want %q", c.Code, code)
			}
			if !c.known {
				t.Errorf("%s should be a known currency", code)
			}
			_ = c.Format(1234.5)
		})
	}
}

func TestGetCurrency_CaseInsensitive(t *testing.T) {
	for _, code := range []string{"eur", "Eur", "EUR", "euR"} {
		c := GetCurrency(code)
		if c.Code != "EUR" {
			t.Errorf("GetCurrency(%q).Code = %q, want EUR", code, c.Code)
		}
	}
}

func TestCurrency_Format(t *testing.T) {
	// x/text uses non-breaking space (U+00A0) as Swedish thousand separator
	// and fullwidth yen (￥) for Japanese
	nbsp := "\u00a0"

	tests := []struct {
		name   string
		code   string
		amount float64
		want   string
	}{
		{"USD cents", "USD", 3.5, "$3.50"},
		{"USD thousands", "USD", 1234.5, "$1,234.50"},
		{"GBP thousands", "GBP", 1234.5, "£1,234.50"},
		{"EUR small", "EUR", 3.5, "3,50 €"},
		{"EUR thousands", "EUR", 1234.5, "1.234,50 €"},
		{"SEK thousands", "SEK", 1234, "1" + nbsp + "234,00 kr"},
		{"CHF thousands", "CHF", 1234, "1.234,00 CHF"},
		{"JPY has no minor unit", "JPY", 1000, "￥1,000"},
		{"JPY drops fractions", "JPY", 1000.25, "￥1,000"},
		{"BRL thousands", "BRL", 1234, "1.234,00 R$"},
		{"Unknown uses code", "XYZ", 100, "100.00 XYZ"},
		{"Unknown thousands", "XYZ", 1234, "1,234.00 XYZ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetCurrency(tt.code).Format(tt.amount)
			if got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestParseCurrencyFromLocale(t *testing.T) {
	tests := []struct {
		locale       string
		wantCurrency string
		wantTag      string
	}{
		{"sv_SE.UTF-8", "SEK", "sv-SE"},
		{"en_US.UTF-8", "USD", "en-US"},
		{"pt_BR.UTF-8", "BRL", "pt-BR"},
		{"de_DE", "EUR", "de-DE"},
		{"de_DE@euro", "EUR", "de-DE"},
		{"ja_JP.UTF-8", "JPY", "ja-JP"},
		{"en-GB", "GBP", "en-GB"},
		{"C", "", ""},
		{"en", "", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			gotCurrency, gotTag := parseCurrencyFromLocale(tt.locale)
			if gotCurrency != tt.wantCurrency {
				t.Errorf("parseCurrencyFromLocale(%q) currency = %q, want %q", tt.locale, gotCurrency, tt.wantCurrency)
			}
			if tt.wantTag != "" && gotTag.String() != tt.wantTag {
				t.Errorf("parseCurrencyFromLocale(%q) tag = %q, want %q", tt.locale, gotTag.String(), tt.wantTag)
			}
		})
	}
}

func TestDetectSystemCurrency(t *testing.T) {
	tests := []struct {
		name         string
		lcMonetary   string
		lcAll        string
		lang         string
		wantCurrency string
	}{
		{"LC_MONETARY takes priority", "sv_SE.UTF-8", "en_US.UTF-8", "de_DE.UTF-8", "SEK"},
		{"LC_ALL when LC_MONETARY empty", "", "en_US.UTF-8", "de_DE.UTF-8", "USD"},
		{"LANG as fallback", "", "", "de_DE.UTF-8", "EUR"},
		{"Norwegian krone", "nb_NO.UTF-8", "", "", "NOK"},
		{"No detection when all empty", "", "", "", ""},
		{"Skip C and POSIX", "C", "POSIX", "sv_SE.UTF-8", "SEK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withLocaleEnv(t, tt.lcMonetary, tt.lcAll, tt.lang)

			got, _ := DetectSystemCurrency()
			if got != tt.wantCurrency {
				t.Errorf("DetectSystemCurrency() = %q, want %q", got, tt.wantCurrency)
			}
		})
	}
}

func TestResolveCurrency(t *testing.T) {
	t.Run("detected locale decides currency and formatting", func(t *testing.T) {
		withLocaleEnv(t, "pt_BR.UTF-8", "", "")

		c := ResolveCurrency("")
		if c.Code != "BRL" {
			t.Fatalf("Code = %q, want BRL", c.Code)
		}
		if got := c.Format(1234); got != "1.234,00 R$" {
			t.Errorf("Format(1234) = %q, want %q", got, "1.234,00 R$")
		}
	})

	t.Run("explicit code wins over locale", func(t *testing.T) {
		withLocaleEnv(t, "sv_SE.UTF-8", "", "")

		if c := ResolveCurrency("eur"); c.Code != "EUR" {
			t.Errorf("Code = %q, want EUR", c.Code)
		}
	})

	t.Run("fallback without locale", func(t *testing.T) {
		withLocaleEnv(t, "", "", "")

		c := ResolveCurrency("")
		if c.Code != FallbackCurrency {
			t.Errorf("Code = %q, want %q", c.Code, FallbackCurrency)
		}
		if got := c.Format(3.5); got != "$3.50" {
			t.Errorf("Format(3.5) = %q, want %q", got, "$3.50")
		}
	})
}
