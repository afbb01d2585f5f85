package web

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Japan has no DST, a fixed zone avoids depending on tzdata.
var jst = time.FixedZone("JST", 9*60*60)

var printer = message.NewPrinter(language.Japanese)

// FormatCount renders n with digit grouping, e.g. 1,234.
func FormatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatDate renders unix seconds as a Japanese calendar date, e.g. 2024/1/5.
func FormatDate(unix int64) string {
	return time.Unix(unix, 0).In(jst).Format("2006/1/2")
}
