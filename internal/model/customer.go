package model

// Customer is customer record returned by the remote listing
type Customer struct {
	ID   string `json:"id" msgpack:"id"`
	Name string `json:"name" msgpack:"name"`
	Role string `json:"role" msgpack:"role"`
}
