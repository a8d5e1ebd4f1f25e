package dto

// ExchangeRateParams are the query parameters of the rate lookup.
type ExchangeRateParams struct {
	From string `form:"from" binding:"required,len=3,alpha"`
	To   string `form:"to" binding:"required,len=3,alpha"`
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	Type string `form:"type" binding:"omitempty,oneof=SPOT AVERAGE CLOSING"`
}

// ExchangeRateResponse is the rate converting one unit of From into To on Date.
type ExchangeRateResponse struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Date     string `json:"date"`
	RateType string `json:"rateType"`
	Rate     string `json:"rate"`
}
