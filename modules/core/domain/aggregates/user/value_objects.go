package user

import "errors"

var ErrInvalidUILanguage = errors.New("invalid language")

type UILanguage string

const (
	UILanguageEN UILanguage = "en"
	UILanguageZH UILanguage = "zh"
)

func NewUILanguage(l string) (UILanguage, error) {
	language := UILanguage(l)
	if !language.IsValid() {
		return "", ErrInvalidUILanguage
	}
	return language, nil
}

func (l UILanguage) IsValid() bool {
	switch l {
	case UILanguageEN, UILanguageZH:
		return true
	}
	return false
}

func (l UILanguage) String() string { return string(l) }
