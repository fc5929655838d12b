package holiday

import "time"

type Holiday struct {
	ID          string
	Name        string
	Date        time.Time
	Description *string
	CreatedAt   time.Time
}
