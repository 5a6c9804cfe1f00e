package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const msg91OTPURL = "https://control.msg91.com/api/v5/otp"

// msg91Client sends OTPs through the MSG91 OTP API.
type msg91Client struct {
	authKey    string
	templateID string
	httpClient *http.Client
}

// NewMSG91Client creates an MSG91 gateway. The client reports
// unconfigured when the auth key or template id is missing.
func NewMSG91Client(authKey, templateID string) Gateway {
	return &msg91Client{
		authKey:    authKey,
		templateID: templateID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *msg91Client) IsConfigured() bool {
	return c.authKey != "" && c.templateID != ""
}

func (c *msg91Client) SendOTP(ctx context.Context, phoneNumber, code string) error {
	q := url.Values{}
	q.Set("template_id", c.templateID)
	q.Set("mobile", phoneNumber)
	q.Set("otp", code)

	req, err := http.NewRequestWithContext(ctx, "POST", msg91OTPURL+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create MSG91 request: %w", err)
	}

	req.Header.Add("authkey", c.authKey)
	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send MSG91 request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		buf := new(strings.Builder)
		_, _ = io.Copy(buf, resp.Body)
		return fmt.Errorf("MSG91 API returned non-success status: %d - %s", resp.StatusCode, buf.String())
	}

	return nil
}
