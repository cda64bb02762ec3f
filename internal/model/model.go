package model

// Contact is the data structure for a person that we know.
// Name and phone are required when a contact is entered; all other fields may be empty. The Id is
// assigned by the storage on creation and ignored in create payloads.
type Contact struct {
	Id      int64  `json:"id"      db:"id"`
	Name    string `json:"name"    db:"name"    binding:"required"`
	Phone   string `json:"phone"   db:"phone"   binding:"required"`
	Company string `json:"company" db:"company"`
	Email   string `json:"email"   db:"email"`
	Avatar  string `json:"avatar"  db:"avatar"`
}
