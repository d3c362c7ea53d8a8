package helpers

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"time"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// 500 - internal server error
func Dispatch500Error(c *fiber.Ctx, err error) error {
	c.Status(http.StatusInternalServerError)
	return c.JSON(fiber.Map{
		"success": false,
		"message": fmt.Sprintf("%v", err),
		"data":    nil,
	})
}

// 400 - bad request
func Dispatch400Error(c *fiber.Ctx, msg string, err any) error {
	c.Status(http.StatusBadRequest)
	return c.JSON(fiber.Map{
		"success": false,
		"message": msg,
		"data":    err,
	})
}

// 401 - unauthorized
func Dispatch401Error(c *fiber.Ctx, msg string) error {
	c.Status(http.StatusUnauthorized)
	return c.JSON(fiber.Map{
		"success": false,
		"message": msg,
		"data":    nil,
	})
}

// 404 - not found
func Dispatch404Error(c *fiber.Ctx, msg string, err any) error {
	c.Status(http.StatusNotFound)
	return c.JSON(fiber.Map{
		"success": false,
		"message": msg,
		"data":    err,
	})
}

func SchemaError(c *fiber.Ctx, err error) error {
	var errors []*IError
	for _, err := range err.(validator.ValidationErrors) {
		var el IError
		el.Field = err.Field()
		el.Tag = err.Tag()
		el.Value = err.Param()
		errors = append(errors, &el)
	}
	return Dispatch400Error(c, "invalid body schema", errors)
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func ComparePassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateToken generates a jwt token
func GenerateToken(JWTSecretKey, email, name string) (signedToken string, err error) {
	claims := &AuthTokenJwtClaim{
		Email: email,
		Name:  name,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Local().Add(time.Hour * time.Duration(24)).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err = token.SignedString([]byte(JWTSecretKey))
	if err != nil {
		return
	}
	return
}

// VerifyToken parses and validates a token minted by GenerateToken.
func VerifyToken(JWTSecretKey, signedToken string) (*AuthTokenJwtClaim, error) {
	token, err := jwt.ParseWithClaims(signedToken, &AuthTokenJwtClaim{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(JWTSecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*AuthTokenJwtClaim)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func ParseTemplateFile(filename string) (*template.Template, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return template.New("emailTemplate").Parse(string(content))
}

func GenerateUUID() string {
	uuid := uuid.New()
	return uuid.String()
}
