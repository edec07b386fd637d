package handler

import (
	"errors"

	"github.com/akshad110/campus-eats-sub000/constants"
	"github.com/akshad110/campus-eats-sub000/database"
	"github.com/akshad110/campus-eats-sub000/helper"
	"github.com/akshad110/campus-eats-sub000/model"
	"github.com/akshad110/campus-eats-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func setAuthCookies(c *fiber.Ctx, token, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		SameSite: "None",
		Secure:   false,
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		SameSite: "None",
		Secure:   false,
		Path:     "/",
	})
}

// POST /api/v1/auth/login — shop/admin accounts.
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		UserName string `json:"username"`
		Password string `json:"password"`
	}

	loginInput := new(LoginInput)
	if err := c.BodyParser(loginInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, err)
	}
	if loginInput.UserName == "" || loginInput.Password == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, errors.New("username and password are required"))
	}

	account, err := helper.GetAccountByUsername(loginInput.UserName)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if account == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.INVALID_USERNAME, errors.New("username not exists"))
	}
	if !helper.CheckPasswordHash(loginInput.Password, account.Password) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.INVALID_PASSWORD, errors.New("password does not match username"))
	}
	if !account.Active {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_ACTIVE, errors.New("active false"))
	}

	tokenClaim := model.TokenClaim{
		AccountId: account.ID,
		Username:  account.Username,
		ShopId:    account.ShopId,
	}
	token, err := helper.GenerateAccessToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	refreshToken, err := helper.GenerateRefreshToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	setAuthCookies(c, token, refreshToken)

	return c.JSON(fiber.Map{
		"message": "login success",
		"account": fiber.Map{
			"id":       account.ID,
			"username": account.Username,
			"role":     account.Role,
			"shopId":   account.ShopId,
		},
	})
}

// POST /api/v1/students/register
func RegisterCustomer(c *fiber.Ctx) error {
	input := c.Locals("input").(model.RegisterCustomerInput)

	existing, err := helper.GetCustomerByEmail(input.Email)
	if err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}
	if existing != nil {
		return utils.ErrorResponse(c, 409, constants.EMAIL_EXISTS, errors.New("email already registered"))
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, 500, constants.CAN_NOT_HASH_PASSWORD, err)
	}

	customer := model.Customer{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: hash,
		IsActive: true,
	}
	if err := database.DB.Create(&customer).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, 201, fiber.Map{
		"id":    customer.ID,
		"name":  customer.Name,
		"email": customer.Email,
	})
}

// POST /api/v1/students/login
func CustomerLogin(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CustomerLoginInput)

	customer, err := helper.GetCustomerByEmail(input.Email)
	if err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}
	if customer == nil || !helper.CheckPasswordHash(input.Password, customer.Password) {
		return utils.ErrorResponse(c, 401, constants.INVALID_PASSWORD, errors.New("invalid credentials"))
	}
	if !customer.IsActive {
		return utils.ErrorResponse(c, 403, constants.ACCOUNT_NOT_ACTIVE, errors.New("account disabled"))
	}

	tokenClaim := model.TokenClaim{
		CustomerId: customer.ID,
		Username:   customer.Email,
	}
	token, err := helper.GenerateAccessToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}
	refreshToken, err := helper.GenerateRefreshToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	setAuthCookies(c, token, refreshToken)

	return c.JSON(fiber.Map{
		"message": "login success",
		"customer": fiber.Map{
			"id":    customer.ID,
			"name":  customer.Name,
			"email": customer.Email,
		},
		"tokens": model.TokenData{AccessToken: token, RefreshToken: refreshToken},
	})
}

// GET /api/v1/students/me
func GetCurrentCustomer(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, 401, "Please log in", nil)
	}
	return utils.SuccessResponse(c, 200, customer)
}

// POST /api/v1/auth/refresh-token
func RefreshToken(c *fiber.Ctx) error {
	refresh := c.Cookies("refresh_token")
	if refresh == "" {
		type body struct {
			RefreshToken string `json:"refreshToken"`
		}
		var b body
		if err := c.BodyParser(&b); err == nil {
			refresh = b.RefreshToken
		}
	}
	if refresh == "" {
		return utils.ErrorResponse(c, 401, "Missing refresh token", nil)
	}

	token, err := helper.ParseToken(refresh)
	if err != nil || !token.Valid {
		return utils.ErrorResponse(c, 401, "Invalid refresh token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return utils.ErrorResponse(c, 401, "Invalid refresh token", errors.New("bad claims"))
	}

	var claim model.TokenClaim
	if v, ok := claims["accountId"].(float64); ok {
		claim.AccountId = uint(v)
	}
	if v, ok := claims["customerId"].(float64); ok {
		claim.CustomerId = uint(v)
	}
	if v, ok := claims["username"].(string); ok {
		claim.Username = v
	}
	if v, ok := claims["shopId"].(float64); ok {
		shopId := uint(v)
		claim.ShopId = &shopId
	}

	newToken, err := helper.GenerateAccessToken(claim)
	if err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    newToken,
		HTTPOnly: true,
		SameSite: "None",
		Secure:   false,
		Path:     "/",
	})

	return utils.SuccessResponse(c, 200, model.TokenData{AccessToken: newToken, RefreshToken: refresh})
}

// POST /api/v1/students/change-password
func ChangePasswordCustomer(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, 401, "Please log in", nil)
	}

	input := c.Locals("input").(model.ChangePasswordInput)
	if !helper.CheckPasswordHash(input.CurrentPassword, customer.Password) {
		return utils.ErrorResponse(c, 400, constants.INVALID_PASSWORD, errors.New("current password does not match"))
	}

	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, 500, constants.CAN_NOT_HASH_PASSWORD, err)
	}

	if err := database.DB.Model(customer).Update("password", hash).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_UPDATE, err)
	}

	return utils.SuccessResponse(c, 200, "password changed")
}
