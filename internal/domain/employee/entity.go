package employee

// Employee is a roster entry. The attendance engine only enumerates it to know
// who should have a status on a given day.
type Employee struct {
	Username    string
	DisplayName string
	Designation string
}
