package models

import "time"

// ProductLine is one product of a merch request
type ProductLine struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// CustomColor is a customer-defined color attached to a request
type CustomColor struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// UploadedFile is the metadata of a file attached to a request.
// The bytes never travel through the API; Preview optionally carries a data URI thumbnail.
type UploadedFile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Size    int64  `json:"size"`
	Preview string `json:"preview,omitempty"`
}

// MerchRequest represents a bulk-order inquiry as stored in merch_requests.
// Optional fields are nil when absent and encode as JSON null.
type MerchRequest struct {
	ID             string         `json:"id"`
	ZipCode        string         `json:"zipCode"`
	Deadline       *string        `json:"deadline"`
	Budget         *string        `json:"budget"`
	Products       []ProductLine  `json:"products"`
	Colorways      []string       `json:"colorways"`
	CustomColors   []CustomColor  `json:"customColors"`
	PrintMethod    *string        `json:"printMethod"`
	PrintLocations []string       `json:"printLocations"`
	Files          []UploadedFile `json:"files"`
	ContactName    string         `json:"contactName"`
	ContactEmail   string         `json:"contactEmail"`
	ContactPhone   *string        `json:"contactPhone"`
	Company        *string        `json:"company"`
	Message        *string        `json:"message"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// CreateMerchRequestRequest represents the request body for creating a merch request
// Example:
//
//	{
//	  "zipCode": "94110",
//	  "deadline": "2026-11-02",
//	  "budget": "1000-2500",
//	  "products": [{"id": "hoodie", "name": "Hoodie", "quantity": 120}],
//	  "colorways": ["Black"],
//	  "customColors": [{"name": "Burgundy", "hex": "#800020"}],
//	  "printMethod": "Screen Print",
//	  "printLocations": ["Front", "Back"],
//	  "contactName": "Sam Rivera",
//	  "contactEmail": "sam@example.com"
//	}
type CreateMerchRequestRequest struct {
	ZipCode        string         `json:"zipCode"`
	Deadline       *string        `json:"deadline"`
	Budget         *string        `json:"budget"`
	Products       []ProductLine  `json:"products"`
	Colorways      []string       `json:"colorways"`
	CustomColors   []CustomColor  `json:"customColors"`
	PrintMethod    *string        `json:"printMethod"`
	PrintLocations []string       `json:"printLocations"`
	Files          []UploadedFile `json:"files"`
	ContactName    string         `json:"contactName"`
	ContactEmail   string         `json:"contactEmail"`
	ContactPhone   *string        `json:"contactPhone"`
	Company        *string        `json:"company"`
	Message        *string        `json:"message"`
}

// ErrorResponse is the JSON body of every API error
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

// StringPtr returns nil for an empty string, otherwise a pointer to s.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences p, returning "" for nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
