package app

import "github.com/klabast/wb-services/shopping-sunday/internal/calendar"

// ShoppingStatus answers the service's question for a single day
type ShoppingStatus struct {
	Today                 calendar.Date
	IsTodayShoppingSunday bool
	IsNextSundayShopping  bool
	NextSunday            calendar.Date
	NextShoppingSunday    calendar.Date
}

// StatusPayload is the JSON form of ShoppingStatus served on /api
type StatusPayload struct {
	IsTodayShoppingSunday bool   `json:"is_today_shopping_sunday"`
	IsNextSundayShopping  bool   `json:"is_next_sunday_shopping"`
	NextShoppingSunday    string `json:"next_shopping_sunday"`
}

// ErrorPayload is the JSON body of failed API responses
type ErrorPayload struct {
	Error string `json:"error"`
}

// DownloadPayload is the JSON export of the table
type DownloadPayload struct {
	Year            int      `json:"year,omitempty"`
	ShoppingSundays []string `json:"shopping_sundays"`
}
