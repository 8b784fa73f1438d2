package model

import "strconv"

// Channel is a team communication channel.
type Channel struct {
	ID          ID       `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CreatedAt   string   `json:"created_at,omitempty"`
	Members     []string `json:"members,omitempty"`
	IsPrivate   bool     `json:"is_private"`
}

// RecordID implements Record.
func (c Channel) RecordID() ID { return c.ID }

// Field implements Record.
func (c Channel) Field(name string) string {
	switch name {
	case "id":
		return c.ID.String()
	case "name":
		return c.Name
	case "description":
		return c.Description
	case "is_private":
		return formatBool(c.IsPrivate)
	case "members":
		return strconv.Itoa(len(c.Members))
	case "created_at":
		return c.CreatedAt
	}
	return ""
}

// Draft returns an edit draft pre-populated from the channel.
func (c Channel) Draft() ChannelDraft {
	return ChannelDraft{Name: c.Name, Description: c.Description, IsPrivate: c.IsPrivate}
}

// ChannelDraft is the create/edit form for a channel.
type ChannelDraft struct {
	Name        string `json:"name" label:"Channel Name" validate:"required"`
	Description string `json:"description" label:"Description"`
	IsPrivate   bool   `json:"is_private" label:"Private"`
}

// ChannelMessage is a message posted to a channel.
type ChannelMessage struct {
	ID        ID     `json:"id"`
	ChannelID ID     `json:"channel_id,omitempty"`
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ChannelPost is the body of a channel message.
type ChannelPost struct {
	Message string `json:"message" validate:"required"`
}

// Communication is an entry in the communications feed.
type Communication struct {
	ID        ID     `json:"id"`
	Type      string `json:"type"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Message   string `json:"message"`
	Status    string `json:"status,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// TeamMember is a user who can receive direct messages.
type TeamMember struct {
	ID    ID     `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// DirectMessage is the body of a direct message.
type DirectMessage struct {
	Recipient string `json:"recipient" validate:"required,email"`
	Subject   string `json:"subject"`
	Message   string `json:"message" validate:"required"`
}

// WhiteLabelSettings configure the branding of the dashboard.
type WhiteLabelSettings struct {
	Domain         string `json:"domain" label:"Domain"`
	Logo           string `json:"logo" label:"Logo URL"`
	Favicon        string `json:"favicon" label:"Favicon URL"`
	PrimaryColor   string `json:"primaryColor" label:"Primary Color" validate:"omitempty,hexcolor"`
	SecondaryColor string `json:"secondaryColor" label:"Secondary Color" validate:"omitempty,hexcolor"`
	FontFamily     string `json:"fontFamily" label:"Font Family"`
	CompanyName    string `json:"companyName" label:"Company Name"`
	SupportEmail   string `json:"supportEmail" label:"Support Email" validate:"omitempty,email"`
	CustomCSS      string `json:"customCSS" label:"Custom CSS"`
	CustomJS       string `json:"customJS" label:"Custom JS"`
	Enabled        bool   `json:"enabled" label:"Enabled"`
}

// DefaultWhiteLabelSettings returns the stock branding applied by a reset.
func DefaultWhiteLabelSettings() WhiteLabelSettings {
	return WhiteLabelSettings{
		Logo:           "/logos/default-logo.png",
		Favicon:        "/favicons/default-favicon.ico",
		PrimaryColor:   "#4f46e5",
		SecondaryColor: "#7c3aed",
		FontFamily:     "Inter, sans-serif",
		CompanyName:    "Finance Management System",
		SupportEmail:   "support@dicethelifecoach.com",
		Enabled:        true,
	}
}

// LogoUpload is the response of a logo upload.
type LogoUpload struct {
	LogoURL string `json:"logoUrl"`
}
