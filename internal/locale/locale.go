// Package locale provides the two display languages supported by salat-clock.
package locale

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Locale is a fixed set of UI strings for one language.
type Locale struct {
	Code        string
	Tag         language.Tag
	RTL         bool
	Title       string
	Remaining   string // format with the prayer name
	Loading     string
	AlertTitle  string
	AlertFooter string
	NoData      string
	PrayerCol   string
	TimeCol     string
	NextIn      string // format with the remaining duration

	prayers       map[string]string
	months        [12]string
	nativeDigits  bool
	longDateOrder func(day, month, year string) string
}

var (
	// English is the default locale.
	English = &Locale{
		Code:        "en",
		Tag:         language.English,
		Title:       "Prayer Times",
		Remaining:   "Time left until %s prayer",
		Loading:     "loading",
		AlertTitle:  "Something went wrong",
		AlertFooter: "press enter to dismiss",
		NoData:      "no prayer times loaded",
		PrayerCol:   "Prayer",
		TimeCol:     "Time",
		NextIn:      "<- next in %s",
		prayers: map[string]string{
			"Fajr": "Fajr", "Dhuhr": "Dhuhr", "Asr": "Asr", "Maghrib": "Maghrib", "Isha": "Isha",
		},
		months: [12]string{
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December",
		},
		longDateOrder: func(day, month, year string) string {
			return month + " " + day + ", " + year
		},
	}

	// Arabic renders names, month names and digits in Arabic.
	Arabic = &Locale{
		Code:        "ar",
		Tag:         language.Arabic,
		RTL:         true,
		Title:       "مواقيت الصلاة",
		Remaining:   "متبقي حتى صلاة %s",
		Loading:     "جارٍ التحميل",
		AlertTitle:  "حدث خطأ",
		AlertFooter: "اضغط enter للإغلاق",
		NoData:      "لا توجد مواقيت",
		PrayerCol:   "الصلاة",
		TimeCol:     "الوقت",
		NextIn:      "<- التالية بعد %s",
		prayers: map[string]string{
			"Fajr": "الفجر", "Dhuhr": "الظهر", "Asr": "العصر", "Maghrib": "المغرب", "Isha": "العشاء",
		},
		months: [12]string{
			"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
			"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
		},
		nativeDigits: true,
		longDateOrder: func(day, month, year string) string {
			return day + " " + month + " " + year
		},
	}
)

var (
	supported = []*Locale{English, Arabic}
	matcher   = language.NewMatcher([]language.Tag{English.Tag, Arabic.Tag})
)

// Match returns the supported locale closest to s, which may be a BCP 47 tag
// ("ar-SA") or a POSIX locale ("ar_SA.UTF-8"). Unknown input yields English.
func Match(s string) *Locale {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, "_", "-")
	if s == "" {
		return English
	}

	tag, err := language.Parse(s)
	if err != nil {
		return English
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return English
	}
	return supported[idx]
}

// PrayerName returns the localized name for one of the five prayers.
func (l *Locale) PrayerName(name string) string {
	if n, ok := l.prayers[name]; ok {
		return n
	}
	return name
}

// RemainingLabel returns the countdown caption for the named prayer.
func (l *Locale) RemainingLabel(name string) string {
	return fmt.Sprintf(l.Remaining, l.PrayerName(name))
}

// LongDate formats t as a long-form calendar date. Day and year are written
// in the locale's numbering system.
func (l *Locale) LongDate(t time.Time) string {
	return l.longDateOrder(l.number(t.Day()), l.months[t.Month()-1], l.number(t.Year()))
}

// number formats n without grouping separators in the locale's digits.
func (l *Locale) number(n int) string {
	return message.NewPrinter(l.Tag).Sprintf("%v", number.Decimal(n, number.NoSeparator()))
}

// Digits converts ASCII digits in an already formatted string, such as a
// clock or an API-supplied date, to the locale's native digits.
func (l *Locale) Digits(s string) string {
	if !l.nativeDigits {
		return s
	}
	return arabicIndic.Replace(s)
}

var arabicIndic = strings.NewReplacer(
	"0", "٠", "1", "١", "2", "٢", "3", "٣", "4", "٤",
	"5", "٥", "6", "٦", "7", "٧", "8", "٨", "9", "٩",
)
