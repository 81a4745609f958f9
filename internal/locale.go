package internal

import "os"

// skipSystemLocale disables OS level locale lookups (macOS defaults,
// Windows API) so tests only see environment variables
var skipSystemLocale = false

// monetaryLocaleVars are checked in order, most specific first
var monetaryLocaleVars = []string{"LC_MONETARY", "LC_ALL", "LANG"}

// localeFromEnv returns the first set locale variable that names a real
// locale ("C" and "POSIX" carry no region)
func localeFromEnv() string {
	for _, name := range monetaryLocaleVars {
		locale := os.Getenv(name)
		if locale != "" && locale != "C" && locale != "POSIX" {
			return locale
		}
	}
	return ""
}
