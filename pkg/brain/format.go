package brain

import "time"

const (
	dateLayout        = "2006-01-02" // %Y-%m-%d
	timeLayout        = "15:04"      // %H:%M
	timeSecondsLayout = "15:04:05"   // %H:%M:%S
)

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func FormatTime(t time.Time) string {
	return t.Format(timeLayout)
}

func FormatTimeWithSeconds(t time.Time) string {
	return t.Format(timeSecondsLayout)
}
