package schema

// UsersAccountTable represents the 'users.account' table
type UsersAccountTable struct {
	Table            string
	ID               string
	Username         string
	Email            string
	FirstName        string
	LastName         string
	Bio              string
	Role             string
	ConfirmationCode string
	CreatedAt        string
	UpdatedAt        string
}

// UsersAccount is the schema definition for users.account
var UsersAccount = UsersAccountTable{
	Table:            "users.account",
	ID:               "id",
	Username:         "username",
	Email:            "email",
	FirstName:        "first_name",
	LastName:         "last_name",
	Bio:              "bio",
	Role:             "role",
	ConfirmationCode: "confirmation_code",
	CreatedAt:        "created_at",
	UpdatedAt:        "updated_at",
}
