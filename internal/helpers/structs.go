package helpers

import "github.com/golang-jwt/jwt"

type InputSubmitWaitlist struct {
	Email      string `json:"email" valid:"email~Invalid Email format,required~email is required"`
	Occupation string `json:"occupation" valid:"required~occupation is required"`
	Platform   string `json:"platform" valid:"required~platform is required"`
}

type InputSubscribe struct {
	Email string `json:"email" valid:"email~Invalid Email format,required~email is required"`
}

type InputAdminLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type IError struct {
	Field string
	Tag   string
	Value string
}

type AuthTokenJwtClaim struct {
	Email string
	Name  string
	jwt.StandardClaims
}
