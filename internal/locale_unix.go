//go:build !windows && !darwin

package internal

func detectSystemLocale() string {
	return localeFromEnv()
}
