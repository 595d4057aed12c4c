package helpdesk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Submit posts the confirmation form to target, the same way the browser
// submits the dialog form. Redirects after success are followed by the
// HTTP client and count as success.
func (c *Client) Submit(ctx context.Context, target string) error {
	if strings.TrimSpace(target) == "" {
		return ErrEmptyTarget
	}

	form := url.Values{}
	form.Set("confirm", "1")

	if err := c.do(ctx, http.MethodPost, target, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", nil); err != nil {
		return fmt.Errorf("failed to submit %s: %w", target, err)
	}
	return nil
}
