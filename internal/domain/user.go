package domain

// User is a registered guest or owner.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

// NewUser holds the attributes of a user to insert. Password is stored as given.
type NewUser struct {
	Name     string
	Email    string
	Password string
}
