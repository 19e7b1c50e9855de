package dto

import "time"

// UsageRecordDTO is one usage record in an ingest request
type UsageRecordDTO struct {
	Timestamp time.Time `json:"timestamp" validate:"required"`
	RxBytes   int64     `json:"rxBytes" validate:"gte=0"`
	TxBytes   int64     `json:"txBytes" validate:"gte=0"`
	AppName   string    `json:"appName,omitempty"`
}

// IngestUsageRequest represents a batch usage ingest request
type IngestUsageRequest struct {
	DeviceID string           `json:"deviceId" validate:"required"`
	Records  []UsageRecordDTO `json:"records" validate:"required,min=1,dive"`
}

// IngestUsageResponse reports how many records were stored
type IngestUsageResponse struct {
	Ingested int `json:"ingested"`
}
