package helper

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"time"

	"github.com/akshad110/campus-eats-sub000/database"
	"github.com/akshad110/campus-eats-sub000/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var JwtSecret = []byte(os.Getenv("JWT_SECRET"))

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func GetAccountByUsername(u string) (*model.Account, error) {
	db := database.DB
	var account model.Account
	if err := db.Where(&model.Account{Username: u}).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func GetCustomerByEmail(e string) (*model.Customer, error) {
	db := database.DB
	var customer model.Customer
	if err := db.Where(&model.Customer{Email: e}).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func ValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func GenerateAccessToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["customerId"] = tokenClaim.CustomerId
	claims["accountId"] = tokenClaim.AccountId
	if tokenClaim.ShopId != nil {
		claims["shopId"] = *tokenClaim.ShopId
	}
	claims["exp"] = time.Now().Add(time.Minute * 60).Unix()

	return token.SignedString(JwtSecret)
}

func GenerateRefreshToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["customerId"] = tokenClaim.CustomerId
	claims["accountId"] = tokenClaim.AccountId
	if tokenClaim.ShopId != nil {
		claims["shopId"] = *tokenClaim.ShopId
	}
	claims["exp"] = time.Now().Add(time.Hour * 24 * 7).Unix()

	return token.SignedString(JwtSecret)
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return JwtSecret, nil
	})
	return token, err
}

// GetInfoAccountFromToken pulls the shop-account claim stored by Protected().
// Second return reports whether the caller is a shop owner.
func GetInfoAccountFromToken(c *fiber.Ctx) (model.TokenClaim, bool) {
	var claim model.TokenClaim

	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return claim, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return claim, false
	}

	if v, ok := claims["accountId"].(float64); ok {
		claim.AccountId = uint(v)
	}
	if v, ok := claims["username"].(string); ok {
		claim.Username = v
	}
	if v, ok := claims["shopId"].(float64); ok {
		shopId := uint(v)
		claim.ShopId = &shopId
	}

	return claim, claim.AccountId > 0
}

// GetInfoCustomerFromToken resolves the customer behind an optional JWT.
// Returns a zero claim for guests.
func GetInfoCustomerFromToken(c *fiber.Ctx) (model.TokenClaim, model.Customer) {
	var claim model.TokenClaim
	var customer model.Customer

	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return claim, customer
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return claim, customer
	}

	if v, ok := claims["customerId"].(float64); ok {
		claim.CustomerId = uint(v)
	}
	if v, ok := claims["username"].(string); ok {
		claim.Username = v
	}

	if claim.CustomerId > 0 {
		database.DB.First(&customer, claim.CustomerId)
	}

	return claim, customer
}
