package utils

import "time"

const timestampLayout = "15:04:05-02/01/2006"

// FormatTimestamp renders milliseconds since epoch as HH:MM:SS-DD/MM/YYYY in
// the given location (local time when loc is nil).
func FormatTimestamp(msSinceEpoch int64, loc *time.Location) string {
	t := time.UnixMilli(msSinceEpoch)
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(timestampLayout)
}
