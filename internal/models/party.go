package models

// StructuredAddress is the normalized address shape shared by customers and
// vendors. It lives alongside the legacy free-text address column that
// predates it.
type StructuredAddress struct {
	Street   string `json:"street" gorm:"column:address_street"`
	City     string `json:"city" gorm:"column:address_city"`
	State    string `json:"state" gorm:"column:address_state"`
	Pincode  string `json:"pincode" gorm:"column:address_pincode"`
	MapsLink string `json:"mapsLink" gorm:"column:address_maps_link"`
}

// Customer is a party material is sold to
type Customer struct {
	Model
	Name      string  `json:"name" gorm:"column:name;not null" binding:"required"`
	GSTNumber *string `json:"gstNumber" gorm:"column:gst_number;uniqueIndex:uq_customers_gst"`
	Contact   string  `json:"contact" gorm:"column:contact"`
	// Legacy free-text address, kept for rows that predate the structured
	// columns.
	Address           string            `json:"address" gorm:"column:address"`
	StructuredAddress StructuredAddress `json:"structuredAddress" gorm:"embedded"`
}

// TableName overrides the table name
func (Customer) TableName() string {
	return "customers"
}

// Vendor is a party material or services are purchased from
type Vendor struct {
	Model
	Name              string            `json:"name" gorm:"column:name;not null" binding:"required"`
	GSTNumber         *string           `json:"gstNumber" gorm:"column:gst_number;uniqueIndex:uq_vendors_gst"`
	Contact           string            `json:"contact" gorm:"column:contact"`
	Address           string            `json:"address" gorm:"column:address"`
	StructuredAddress StructuredAddress `json:"structuredAddress" gorm:"embedded"`
}

// TableName overrides the table name
func (Vendor) TableName() string {
	return "vendors"
}
