package models

// Requests for astrology HTTP endpoints. Defined in domain for consistency and reuse.

// BirthDataRequest carries a civil birth moment and birthplace. The time is a
// local clock reading; utc_offset_minutes fixes it to UT. Offsets span the
// full -14:00..+14:00 civil range.
type BirthDataRequest struct {
	BirthDate        string  `json:"birth_date" validate:"required,datetime=2006-01-02"`
	BirthTime        string  `json:"birth_time" default:"12:00" validate:"datetime=15:04"`
	Latitude         float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude        float64 `json:"longitude" validate:"gte=-180,lte=180"`
	UTCOffsetMinutes int     `json:"utc_offset_minutes" validate:"gte=-840,lte=840"`
}

type ProfileCreateRequest struct {
	Name      string           `json:"name" validate:"required,min=1,max=100"`
	BirthData BirthDataRequest `json:"birth_data"`
}

// TransitQuery selects the scan instant; empty means now.
type TransitQuery struct {
	At string `query:"at" json:"at"`
}
