package models

// Employee represents a roster entry
type Employee struct {
	ID            int    `json:"id" db:"id"`
	NationalID    string `json:"rut" db:"rut"` // opaque, formats vary in source data
	Surnames      string `json:"apellidos" db:"apellidos"`
	GivenNames    string `json:"nombres" db:"nombres"`
	BirthDate     string `json:"fecha_nacimiento" db:"fecha_nacimiento"` // YYYY-MM-DD, kept as text
	Category      string `json:"categoria" db:"categoria"`
	AdmissionDate string `json:"fecha_ingreso" db:"fecha_ingreso"`
}

// FullName returns given names followed by surnames
func (e Employee) FullName() string {
	return e.GivenNames + " " + e.Surnames
}

// EmployeeResult is the single value delivered by an asynchronous roster fetch
type EmployeeResult struct {
	Employees []Employee
	Err       error
}

// EmployeeListResponse is the API response for the roster
type EmployeeListResponse struct {
	Employees []Employee `json:"employees"`
	Total     int        `json:"total"`
}

// EmployeeStats aggregates the roster by category
type EmployeeStats struct {
	Total      int            `json:"total"`
	ByCategory map[string]int `json:"by_category"`
	Categories []string       `json:"categories"` // sorted, distinct
}
