package models

type Service struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	Duration      string `json:"duration"`
	PriceEstimate string `json:"priceEstimate"`
	Icon          string `json:"icon,omitempty"`
}

type Testimonial struct {
	ID           string `json:"id"`
	CustomerName string `json:"customerName"`
	Vehicle      string `json:"vehicle"`
	Quote        string `json:"quote"`
	Rating       int    `json:"rating"`
	ServiceType  string `json:"serviceType"`
	Date         string `json:"date,omitempty"`
}

// TimeSlot is a bookable slot label such as "9:00 AM".
type TimeSlot string
