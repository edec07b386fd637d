package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// OrderEmailData feeds the order status templates.
type OrderEmailData struct {
	OrderCode       string
	ShopName        string
	TokenNumber     int
	Items           string
	TotalAmount     float64
	PickupTime      string
	RejectionReason string
	PayLink         string
}

func dialer() *gomail.Dialer {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	return gomail.NewDialer(os.Getenv("SMTP_HOST"), port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
}

func renderTemplate(name string, data OrderEmailData) (string, error) {
	tmpl, err := template.ParseFiles("templates/" + name)
	if err != nil {
		return "", err
	}
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}

// SendOrderStatusEmail renders and sends one of the order templates. Async,
// failures are logged only.
func SendOrderStatusEmail(to, subject, tmplName string, data OrderEmailData, qrContent string) {
	go func() {
		if to == "" {
			return
		}
		body, err := renderTemplate(tmplName, data)
		if err != nil {
			log.Printf("email: template %s: %v", tmplName, err)
			return
		}

		m := gomail.NewMessage()
		m.SetHeader("From", os.Getenv("SMTP_FROM"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", subject)
		m.SetBody("text/html", body)

		if qrContent != "" {
			qrBytes, err := GenerateQRCode(qrContent, 400)
			if err == nil {
				m.Embed("token_qr.png", gomail.SetCopyFunc(func(w io.Writer) error {
					_, err := w.Write(qrBytes)
					return err
				}), gomail.SetHeader(map[string][]string{
					"Content-Type":        {"image/png"},
					"Content-ID":          {"<token_qr>"},
					"Content-Disposition": {"inline"},
				}))
			}
		}

		if err := dialer().DialAndSend(m); err != nil {
			log.Printf("email: send to %s: %v", to, err)
		}
	}()
}

func OrderSubject(kind, orderCode string) string {
	return fmt.Sprintf("%s - Order %s", kind, orderCode)
}
