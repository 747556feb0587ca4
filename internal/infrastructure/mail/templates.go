package mail

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"time"
)

const otpSubject = "Verify your email - Raatap"

var otpHTML = htmltemplate.Must(htmltemplate.New("otp").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"></head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; background-color: #f5f5f5; margin: 0; padding: 20px;">
  <div style="max-width: 500px; margin: 0 auto; background: white; border-radius: 16px; overflow: hidden;">
    <div style="background: linear-gradient(135deg, #6675FF 0%, #8B5CF6 100%); padding: 32px; text-align: center;">
      <h1 style="color: white; margin: 0; font-size: 28px;">Raatap</h1>
      <p style="color: rgba(255,255,255,0.9); margin: 8px 0 0 0; font-size: 14px;">Let's Go Together</p>
    </div>
    <div style="padding: 32px;">
      <h2 style="color: #171717; margin: 0 0 16px 0; font-size: 20px;">Verify your email</h2>
      <p style="color: #666; margin: 0 0 24px 0; line-height: 1.6;">Use the code below to verify your email address. This code will expire in {{.Minutes}} minutes.</p>
      <div style="background: #f8f9ff; border: 2px dashed #6675FF; border-radius: 12px; padding: 24px; text-align: center; margin-bottom: 24px;">
        <span style="font-size: 36px; font-weight: 700; letter-spacing: 8px; color: #6675FF;">{{.Code}}</span>
      </div>
      <p style="color: #999; font-size: 13px; margin: 0;">If you didn't request this verification, you can safely ignore this email.</p>
    </div>
    <div style="background: #f9fafb; padding: 20px 32px; border-top: 1px solid #eee;">
      <p style="color: #999; font-size: 12px; margin: 0; text-align: center;">&copy; {{.Year}} Raatap. Coordinating trusted commutes.</p>
    </div>
  </div>
</body>
</html>`))

// OTPMessage renders the verification email carrying code.
func OTPMessage(to, code string, ttl time.Duration, now time.Time) (Message, error) {
	data := struct {
		Code    string
		Minutes int
		Year    int
	}{Code: code, Minutes: int(ttl.Minutes()), Year: now.Year()}

	var buf bytes.Buffer
	if err := otpHTML.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("render otp email: %w", err)
	}
	return Message{
		To:      to,
		Subject: otpSubject,
		Text: fmt.Sprintf("Your Raatap verification code is %s. It expires in %d minutes.\n\n"+
			"If you didn't request this verification, you can safely ignore this email.", code, data.Minutes),
		HTML: buf.String(),
	}, nil
}
