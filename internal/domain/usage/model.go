package usage

import "time"

// Sample is one observed usage measurement. AppName is empty for
// device-aggregate samples.
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	BytesUsed int64     `json:"bytesUsed"`
	AppName   string    `json:"appName,omitempty"`
}

// Record is a stored usage measurement as reported by a device.
type Record struct {
	ID        int64     `json:"id"`
	DeviceID  string    `json:"deviceId"`
	Timestamp time.Time `json:"timestamp"`
	RxBytes   int64     `json:"rxBytes"`
	TxBytes   int64     `json:"txBytes"`
	AppName   string    `json:"appName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Bytes returns the total bytes of a record.
func (r *Record) Bytes() int64 {
	return r.RxBytes + r.TxBytes
}

// Sample converts a stored record into an analysis sample.
func (r *Record) Sample() Sample {
	return Sample{
		Timestamp: r.Timestamp,
		BytesUsed: r.Bytes(),
		AppName:   r.AppName,
	}
}

// Summary aggregates usage for a device set over a day.
type Summary struct {
	DailyTotal       int64          `json:"dailyTotal"`
	CurrentHourTotal int64          `json:"currentHourTotal"`
	RecordCount      int            `json:"recordCount"`
	ByApp            map[string]int64 `json:"byApp,omitempty"`
}
