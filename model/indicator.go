package model

// IndicatorPoint is a single year's observation. Value is a pointer so an
// upstream null survives as JSON null instead of collapsing to 0.
type IndicatorPoint struct {
	Date  int      `json:"date" example:"2020"`
	Value *float64 `json:"value"`
}

// IndicatorSeries is one indicator's full set of points for a country,
// sorted ascending by date.
type IndicatorSeries struct {
	Code   string           `json:"code" example:"NY.GDP.MKTP.CD"`
	Name   string           `json:"name" example:"GDP (current US$)"`
	Points []IndicatorPoint `json:"points"`
}

// IndicatorResponse is the combined payload returned to the chart front-end.
// Series order follows the request's code order.
type IndicatorResponse struct {
	Country string            `json:"country" example:"IN"`
	Start   int               `json:"start" example:"2000"`
	End     int               `json:"end" example:"2023"`
	Series  []IndicatorSeries `json:"series"`
}

// WorldBankRef is the {id, value} pair the World Bank API uses for indicator
// and country labels.
type WorldBankRef struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// WorldBankPoint mirrors one element of the data half of the World Bank
// [metadata, dataPoints] envelope.
type WorldBankPoint struct {
	Indicator       WorldBankRef `json:"indicator"`
	Country         WorldBankRef `json:"country"`
	CountryISO3Code string       `json:"countryiso3code"`
	Date            string       `json:"date"`
	Value           *float64     `json:"value"`
}
