package jwt

import "github.com/golang-jwt/jwt"

// Payload is the claim set of the identity token issued on signup and login.
type Payload struct {
	jwt.StandardClaims `json:"standard_claims"`

	// Username is the account name the token was issued for.
	Username string `json:"username"`
}
