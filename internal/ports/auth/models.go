package auth

// RoleAdmin es el único rol que puede modificar datos.
const RoleAdmin = "admin"

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	Role   string
}
