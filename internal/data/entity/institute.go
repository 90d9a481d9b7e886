package entity

type Institute struct {
	Base
	Name          string  `db:"name"`
	Email         string  `db:"email"`
	PasswordHash  string  `db:"password"`
	Phone         *string `db:"phone"`
	EmailVerified bool    `db:"email_verified"`
	IsActive      bool    `db:"is_active"`
}
