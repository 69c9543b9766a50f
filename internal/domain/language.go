package domain

// LanguageCode is a two-letter ISO 639-1 language code.
type LanguageCode string

// Languages the mobile client offers for study. The gateway only checks
// shape (exactly two characters), so the list is advisory, not enforced
// server-side.
const (
	LangEnglish    LanguageCode = "en"
	LangSpanish    LanguageCode = "es"
	LangFrench     LanguageCode = "fr"
	LangGerman     LanguageCode = "de"
	LangItalian    LanguageCode = "it"
	LangPortuguese LanguageCode = "pt"
	LangDutch      LanguageCode = "nl"
	LangRussian    LanguageCode = "ru"
	LangChinese    LanguageCode = "zh"
	LangJapanese   LanguageCode = "ja"
	LangKorean     LanguageCode = "ko"
	LangArabic     LanguageCode = "ar"
	LangHindi      LanguageCode = "hi"
	LangTurkish    LanguageCode = "tr"
	LangPolish     LanguageCode = "pl"
	LangVietnamese LanguageCode = "vi"
)

// IsValidShape reports whether the code has the expected two-letter form.
func (c LanguageCode) IsValidShape() bool {
	if len(c) != 2 {
		return false
	}
	for _, r := range c {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func (c LanguageCode) String() string { return string(c) }
