package internal

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FallbackCurrency is used when no currency is configured or detectable
const FallbackCurrency = "USD"

// Currency formats amounts for one ISO 4217 code in one locale
type Currency struct {
	Code    string // "SEK", "USD", "EUR"
	unit    currency.Unit
	known   bool
	digits  int
	printer *message.Printer
}

// narrowSymbols replaces x/text narrow symbols that read badly in a terminal
var narrowSymbols = map[string]string{
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
	"ISK": "kr",
}

// prefixSymbols lists currencies whose symbol goes before the amount.
// x/text does not expose the CLDR symbol position, so this is kept by hand.
var prefixSymbols = map[string]bool{
	"USD": true, "GBP": true, "JPY": true, "CAD": true, "AUD": true,
	"MXN": true, "HKD": true, "SGD": true, "NZD": true, "ZAR": true,
}

// homeLocales is the locale used for number formatting of a currency when the
// system locale is unknown
var homeLocales = map[string]language.Tag{
	"SEK": language.Swedish,
	"USD": language.AmericanEnglish,
	"EUR": language.German,
	"GBP": language.BritishEnglish,
	"NOK": language.Norwegian,
	"DKK": language.Danish,
	"CHF": language.German,
	"JPY": language.Japanese,
	"CAD": language.CanadianFrench,
	"AUD": language.MustParse("en-AU"),
	"BRL": language.BrazilianPortuguese,
	"MXN": language.LatinAmericanSpanish,
	"INR": language.MustParse("en-IN"),
	"PLN": language.Polish,
	"CZK": language.Czech,
	"NZD": language.MustParse("en-NZ"),
}

// NewCurrency returns the Currency for code formatted in locale tag. An
// undetermined tag selects the currency's home locale, or English.
func NewCurrency(code string, tag language.Tag) Currency {
	code = strings.ToUpper(code)

	unit, err := currency.ParseISO(code)
	known := err == nil
	if !known {
		// only used for number formatting, the code is printed as symbol
		unit = currency.USD
	}

	if tag == language.Und {
		if home, ok := homeLocales[code]; ok {
			tag = home
		} else {
			tag = language.English
		}
	}

	digits, _ := currency.Standard.Rounding(unit)

	return Currency{
		Code:    code,
		unit:    unit,
		known:   known,
		digits:  digits,
		printer: message.NewPrinter(tag),
	}
}

// GetCurrency returns the Currency for code in its home locale
func GetCurrency(code string) Currency {
	return NewCurrency(code, language.Und)
}

// ResolveCurrency picks the currency to print amounts in. An explicit code
// wins; otherwise the system locale decides, falling back to FallbackCurrency.
// A detected system locale is also used for number formatting.
func ResolveCurrency(code string) Currency {
	detected, tag := DetectSystemCurrency()
	if code == "" {
		code = detected
	}
	if code == "" {
		return GetCurrency(FallbackCurrency)
	}
	return NewCurrency(code, tag)
}

// DetectSystemCurrency derives a currency code and language tag from the OS
// locale. Both are empty (language.Und) when detection fails.
func DetectSystemCurrency() (string, language.Tag) {
	locale := detectSystemLocale()
	if locale == "" {
		return "", language.Und
	}
	return parseCurrencyFromLocale(locale)
}

// parseCurrencyFromLocale maps a POSIX locale to its region's currency.
// Examples: "sv_SE.UTF-8" -> ("SEK", sv-SE), "de_DE@euro" -> ("EUR", de-DE)
func parseCurrencyFromLocale(locale string) (string, language.Tag) {
	base, _, _ := strings.Cut(locale, ".")
	base, _, _ = strings.Cut(base, "@")

	tag, err := language.Parse(strings.Replace(base, "_", "-", 1))
	if err != nil {
		return "", language.Und
	}

	_, _, region := tag.Raw()
	if r := region.String(); r == "" || r == "ZZ" {
		return "", language.Und
	}

	unit, ok := currency.FromRegion(region)
	if !ok {
		return "", language.Und
	}
	return unit.String(), tag
}

func (c Currency) symbol() string {
	if !c.known {
		return c.Code
	}
	if sym, ok := narrowSymbols[c.Code]; ok {
		return sym
	}
	return c.printer.Sprint(currency.NarrowSymbol(c.unit))
}

// Format formats amount with the currency's ISO 4217 minor unit digits:
// two for most currencies, none for JPY
func (c Currency) Format(amount float64) string {
	formatted := c.printer.Sprint(number.Decimal(amount,
		number.MinFractionDigits(c.digits),
		number.MaxFractionDigits(c.digits)))

	if prefixSymbols[c.Code] {
		return c.symbol() + formatted
	}
	return formatted + " " + c.symbol()
}
