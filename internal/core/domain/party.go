package domain

// Customer is a buying party. Sales look customers up by exact (name, phone)
// match and create them on the fly when absent.
type Customer struct {
	CustomerID string `json:"customerID"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	AuditFields
}

// Supplier is a selling party for purchases, looked up by exact name.
type Supplier struct {
	SupplierID string `json:"supplierID"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	AuditFields
}
