package models

import "time"

// ProjectDetails is the transient extraction result for a create-project
// request. Extraction leaves missing fields at their zero value; the
// create-project action owns required-field validation.
type ProjectDetails struct {
	Title       string     `json:"title"                validate:"required"`
	Description string     `json:"description"          validate:"required"`
	Email       string     `json:"email"                validate:"required,email"`
	Budget      float64    `json:"budget"               validate:"gt=0"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// ProjectMilestone is a titled deliverable with a target delivery date.
// Lists of milestones are deduplicated by case-insensitive title.
type ProjectMilestone struct {
	Title        string    `json:"title"         validate:"required"`
	DeliveryDate time.Time `json:"delivery_date" validate:"required"`
}

// SelectedSupplier references a supplier from a previous search result by
// its 1-based display index (OrderID).
type SelectedSupplier struct {
	OrderID      int    `json:"order_id"      validate:"gt=0"`
	VendorNumber string `json:"vendor_number"`
	CompanyCode  string `json:"company_code"`
	VendorName   string `json:"vendor_name"`
}
