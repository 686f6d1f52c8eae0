package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"skinwatch/internal/models"
)

type UserDirectoryInterface interface {
	LookupEmail(ctx context.Context, token, userId string) (string, error)
}

func NewUserDirectory(c *Client) UserDirectoryInterface {
	return c
}

type emailResponse struct {
	Email string `json:"email"`
}

func (c *Client) LookupEmail(ctx context.Context, token, userId string) (string, error) {
	var resp emailResponse
	path := "/api/user/get-user-email/" + url.PathEscape(userId)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return "", fmt.Errorf("%w: %w", models.ErrLookupFailed, err)
	}
	if resp.Email == "" {
		return "", fmt.Errorf("%w: empty address for user %s", models.ErrLookupFailed, userId)
	}
	return resp.Email, nil
}
