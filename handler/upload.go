package handler

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/akshad110/campus-eats-sub000/helper"
	"github.com/akshad110/campus-eats-sub000/model"
	"github.com/akshad110/campus-eats-sub000/utils"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
)

// POST /api/v1/cloudinary-signature
// Signed-upload params for direct client uploads (menu photos, payment
// screenshots). Cloudinary signs the sorted raw params with the API secret.
func GenerateSignature(c *fiber.Ctx) error {
	customer, hasCustomer := c.Locals("customer").(*model.Customer)
	_, isAccount := helper.GetInfoAccountFromToken(c)
	if (!hasCustomer || customer == nil) && !isAccount {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Login required", nil)
	}

	type SigParams struct {
		Folder   string `json:"folder"`
		PublicID string `json:"public_id"`
	}

	var params SigParams
	if err := c.BodyParser(&params); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid params", err)
	}

	timestamp := time.Now().Unix()

	paramMap := map[string]string{
		"timestamp": fmt.Sprintf("%d", timestamp),
	}
	if params.Folder != "" {
		paramMap["folder"] = params.Folder
	}
	if params.PublicID != "" {
		paramMap["public_id"] = params.PublicID
	}

	keys := make([]string, 0, len(paramMap))
	for k := range paramMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var stringToSign strings.Builder
	for i, k := range keys {
		if i > 0 {
			stringToSign.WriteString("&")
		}
		stringToSign.WriteString(k)
		stringToSign.WriteString("=")
		stringToSign.WriteString(paramMap[k])
	}
	stringToSign.WriteString(os.Getenv("CLOUDINARY_API_SECRET"))

	h := sha1.New()
	h.Write([]byte(stringToSign.String()))
	signature := hex.EncodeToString(h.Sum(nil))

	return c.JSON(fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"apiKey":    os.Getenv("CLOUDINARY_API_KEY"),
		"cloudName": os.Getenv("CLOUDINARY_CLOUD_NAME"),
	})
}

// POST /api/v1/upload
// Server-side fallback for clients that can't do a signed direct upload.
func UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, 400, "Missing file", err)
	}

	url, err := uploadToCloudinary(file, c.FormValue("folder", "campus-eats"))
	if err != nil {
		return utils.ErrorResponse(c, 502, "Upload failed", err)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{"url": url})
}

func uploadToCloudinary(file *multipart.FileHeader, folder string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	cld := helper.InitCloudinary()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder:   folder,
		PublicID: fmt.Sprintf("%d", time.Now().UnixNano()),
	})
	if err != nil {
		return "", err
	}
	if result.SecureURL == "" {
		return "", errors.New("empty upload response")
	}
	return result.SecureURL, nil
}
