// Package auth is the client for the credential endpoint of the spreadsheet
// backend. Passwords cross this boundary and are compared server-side as
// plaintext; the backend does no hashing and porting one in would change the
// observable protocol, so none is added here.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SuperScalpStudio/SuperSalonSystem/internal/models"
	"github.com/guonaihong/gout"
)

var ErrRejected = errors.New("auth gateway rejected the request")

type Client struct {
	rpcURL string
}

func NewClient(baseURL string) *Client {
	return &Client{rpcURL: baseURL + "/rpc"}
}

type rpcResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Exists  *bool        `json:"exists,omitempty"`
	User    *models.User `json:"user,omitempty"`
}

const textMarker = "'"

// The backing sheet stores phone numbers as marker-prefixed text; queries
// carry the same prefix so lookups match the stored form.
func forceText(v string) string {
	return textMarker + strings.TrimPrefix(v, textMarker)
}

func cleanUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	u.Phone = strings.TrimPrefix(strings.TrimSpace(u.Phone), textMarker)
	u.Name = strings.TrimPrefix(u.Name, textMarker)
	u.SheetID = strings.TrimPrefix(strings.TrimSpace(u.SheetID), textMarker)
	return u
}

func (c *Client) call(ctx context.Context, payload any) (*rpcResponse, error) {
	var rsp rpcResponse
	code := 0
	err := gout.POST(c.rpcURL).
		WithContext(ctx).
		SetJSON(payload).
		BindJSON(&rsp).
		Code(&code).
		Do()
	if err != nil {
		return nil, fmt.Errorf("auth rpc: %w", err)
	}
	if code != http.StatusOK {
		return nil, fmt.Errorf("auth rpc: http %d", code)
	}
	return &rsp, nil
}

// CheckAvailability reports whether the phone number is free to register.
func (c *Client) CheckAvailability(ctx context.Context, phone string) (bool, error) {
	rsp, err := c.call(ctx, gout.H{
		"action": "check_user",
		"phone":  forceText(phone),
	})
	if err != nil {
		return false, err
	}
	if !rsp.Success || rsp.Exists == nil {
		return false, fmt.Errorf("%w: %s", ErrRejected, rsp.Message)
	}
	return !*rsp.Exists, nil
}

func (c *Client) Register(ctx context.Context, phone, password, name string) (*models.User, error) {
	rsp, err := c.call(ctx, gout.H{
		"action":   "register",
		"phone":    forceText(phone),
		"password": forceText(password),
		"name":     forceText(name),
	})
	if err != nil {
		return nil, err
	}
	if !rsp.Success || rsp.User == nil {
		return nil, fmt.Errorf("%w: %s", ErrRejected, rsp.Message)
	}
	return cleanUser(rsp.User), nil
}

func (c *Client) Login(ctx context.Context, phone, password string) (*models.User, error) {
	rsp, err := c.call(ctx, gout.H{
		"action":   "login",
		"phone":    forceText(phone),
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	if !rsp.Success || rsp.User == nil {
		return nil, fmt.Errorf("%w: %s", ErrRejected, rsp.Message)
	}
	return cleanUser(rsp.User), nil
}

func (c *Client) ChangePassword(ctx context.Context, phone, oldPassword, newPassword string) error {
	rsp, err := c.call(ctx, gout.H{
		"action":      "change_password",
		"phone":       forceText(phone),
		"oldPassword": oldPassword,
		"newPassword": forceText(newPassword),
	})
	if err != nil {
		return err
	}
	if !rsp.Success {
		return fmt.Errorf("%w: %s", ErrRejected, rsp.Message)
	}
	return nil
}
