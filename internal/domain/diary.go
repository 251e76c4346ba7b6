package domain

import "time"

// DiaryEntry records a farm activity. Entries are append/delete only;
// there is no edit path. CreatedAt is assigned by the server.
type DiaryEntry struct {
	ID        string
	OwnerID   string
	Date      string
	Time      string
	CropName  string
	Activity  string
	CreatedAt time.Time
}
