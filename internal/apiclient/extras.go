package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/Veraticus/ledgerdeck/internal/model"
)

// Download fetches the backend rendering of a whole resource collection
// (id empty) or of a single record.
func (c *Client) Download(ctx context.Context, resourcePath string, id model.ID) ([]byte, error) {
	path := resourcePath + "/download"
	if !id.IsZero() {
		path = resourcePath + "/" + url.PathEscape(id.String()) + "/download"
	}
	return c.Raw(ctx, http.MethodGet, path, "", nil)
}

// SyncIntegration triggers a sync and reports how many records moved.
func (c *Client) SyncIntegration(ctx context.Context, id model.ID) (model.SyncResult, error) {
	var result model.SyncResult
	err := c.Do(ctx, http.MethodPost, "/api/integrations/"+url.PathEscape(id.String())+"/sync", nil, &result)
	return result, err
}

// JoinChannel adds the signed-in user to a channel.
func (c *Client) JoinChannel(ctx context.Context, id model.ID) error {
	return c.Do(ctx, http.MethodPost, channelPath(id)+"/join", nil, nil)
}

// ChannelMessages lists the messages of a channel.
func (c *Client) ChannelMessages(ctx context.Context, id model.ID) ([]model.ChannelMessage, error) {
	var wrapped envelope[model.ChannelMessage]
	if err := c.Do(ctx, http.MethodGet, channelPath(id)+"/messages", nil, &wrapped); err != nil {
		return nil, err
	}
	return orEmpty(wrapped.Data), nil
}

// PostChannelMessage posts a message to a channel.
func (c *Client) PostChannelMessage(ctx context.Context, id model.ID, post model.ChannelPost) error {
	return c.Do(ctx, http.MethodPost, channelPath(id)+"/messages", post, nil)
}

// SendMessage sends a direct message.
func (c *Client) SendMessage(ctx context.Context, msg model.DirectMessage) error {
	return c.Do(ctx, http.MethodPost, "/api/communications/message", msg, nil)
}

// Communications lists the communications feed.
func (c *Client) Communications(ctx context.Context) ([]model.Communication, error) {
	var wrapped envelope[model.Communication]
	if err := c.Do(ctx, http.MethodGet, "/api/communications", nil, &wrapped); err != nil {
		return nil, err
	}
	return orEmpty(wrapped.Data), nil
}

// TeamMembers lists the users that can receive direct messages.
func (c *Client) TeamMembers(ctx context.Context) ([]model.TeamMember, error) {
	var wrapped envelope[model.TeamMember]
	if err := c.Do(ctx, http.MethodGet, "/api/communications/users", nil, &wrapped); err != nil {
		return nil, err
	}
	return orEmpty(wrapped.Data), nil
}

// ResendInvitation re-sends a pending invitation.
func (c *Client) ResendInvitation(ctx context.Context, inv model.Invitation) error {
	req := model.ResendRequest{Email: inv.Email, Role: inv.Role, Token: inv.Token}
	return c.Do(ctx, http.MethodPost, "/api/invite/resend", req, nil)
}

// AssignRole assigns a role to a user.
func (c *Client) AssignRole(ctx context.Context, assignment model.RoleAssignment) error {
	return c.Do(ctx, http.MethodPost, "/api/rbac/assign", assignment, nil)
}

// WhiteLabel fetches the branding settings.
func (c *Client) WhiteLabel(ctx context.Context) (model.WhiteLabelSettings, error) {
	var settings model.WhiteLabelSettings
	err := c.Do(ctx, http.MethodGet, "/api/whitelabel", nil, &settings)
	return settings, err
}

// SaveWhiteLabel replaces the branding settings.
func (c *Client) SaveWhiteLabel(ctx context.Context, settings model.WhiteLabelSettings) error {
	return c.Do(ctx, http.MethodPut, "/api/whitelabel", settings, nil)
}

// UploadLogo uploads a logo image as the multipart field "logo" and returns
// the URL the backend stored it under.
func (c *Client) UploadLogo(ctx context.Context, filename string, r io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("logo", filepath.Base(filename))
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("failed to read logo: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload: %w", err)
	}

	data, err := c.Raw(ctx, http.MethodPost, "/api/whitelabel/logo", writer.FormDataContentType(), &body)
	if err != nil {
		return "", err
	}
	var upload model.LogoUpload
	if err := decodeJSON(data, &upload); err != nil {
		return "", fmt.Errorf("failed to decode logo upload: %w", err)
	}
	return upload.LogoURL, nil
}

func channelPath(id model.ID) string {
	return "/api/communications/channels/" + url.PathEscape(id.String())
}
