// Package share turns assembled content into per-channel dispatch plans.
//
// The application never posts to platform APIs: WhatsApp, Facebook,
// Messenger and Instagram shares are "copy to clipboard + open a share URL",
// and the user pastes manually. That keeps the product free of platform API
// credentials and is deliberate, not a gap to be fixed with direct calls.
package share

import (
	"errors"
	"fmt"
	"net/url"
)

type Channel string

const (
	ChannelWhatsApp  Channel = "whatsapp"
	ChannelEmail     Channel = "email"
	ChannelMessenger Channel = "messenger"
	ChannelFacebook  Channel = "facebook"
	ChannelInstagram Channel = "instagram"
	ChannelPrint     Channel = "print"
)

// Plan actions executed by the front end.
const (
	ActionCopyAndOpen = "copy_and_open"
	ActionCopyOnly    = "copy_only"
	ActionOpenPrint   = "open_print"
)

var (
	ErrUnknownChannel = errors.New("unknown share channel")
	ErrEmptyContent   = errors.New("share content is empty")
)

// Content is the assembled output handed to the dispatcher.
type Content struct {
	Subject  string // email subject / document title
	Text     string // resolved plain text
	HTML     string // resolved HTML body (email clipboard payload)
	Document string // full print document (print channel only)
	LinkURL  string // public property URL
}

// Plan tells the front end exactly what to do for one channel: what to put
// on the clipboard, which URL to open, or which document to print.
type Plan struct {
	Channel   Channel `json:"channel"`
	Action    string  `json:"action"`
	ShareURL  string  `json:"share_url,omitempty"`
	Clipboard string  `json:"clipboard,omitempty"`
	Document  string  `json:"document,omitempty"`
	Note      string  `json:"note,omitempty"`
}

// BuildPlan builds the dispatch plan for one channel.
func BuildPlan(channel Channel, content Content) (Plan, error) {
	switch channel {
	case ChannelWhatsApp:
		if content.Text == "" {
			return Plan{}, ErrEmptyContent
		}
		return Plan{
			Channel:   channel,
			Action:    ActionCopyAndOpen,
			ShareURL:  "https://wa.me/?text=" + url.QueryEscape(content.Text),
			Clipboard: content.Text,
		}, nil

	case ChannelFacebook:
		if content.LinkURL == "" && content.Text == "" {
			return Plan{}, ErrEmptyContent
		}
		shareURL := "https://www.facebook.com/sharer/sharer.php?u=" + url.QueryEscape(content.LinkURL)
		if content.Text != "" {
			shareURL += "&quote=" + url.QueryEscape(content.Text)
		}
		return Plan{
			Channel:   channel,
			Action:    ActionCopyAndOpen,
			ShareURL:  shareURL,
			Clipboard: content.Text,
		}, nil

	case ChannelMessenger:
		if content.LinkURL == "" {
			return Plan{}, ErrEmptyContent
		}
		return Plan{
			Channel:   channel,
			Action:    ActionCopyAndOpen,
			ShareURL:  "https://www.facebook.com/dialog/send?link=" + url.QueryEscape(content.LinkURL),
			Clipboard: content.Text,
		}, nil

	case ChannelEmail:
		if content.Text == "" && content.HTML == "" {
			return Plan{}, ErrEmptyContent
		}
		// mailto cannot carry the rich HTML body; the plain text goes into the
		// compose window and the HTML rides on the clipboard for pasting.
		// Known, accepted limitation.
		mailto := fmt.Sprintf("mailto:?subject=%s&body=%s",
			url.QueryEscape(content.Subject), url.QueryEscape(content.Text))
		return Plan{
			Channel:   channel,
			Action:    ActionCopyAndOpen,
			ShareURL:  mailto,
			Clipboard: content.HTML,
			Note:      "Cole o conteúdo copiado no corpo do e-mail para manter a formatação.",
		}, nil

	case ChannelInstagram:
		// No programmatic share target exists; copy and open the site.
		if content.Text == "" {
			return Plan{}, ErrEmptyContent
		}
		return Plan{
			Channel:   channel,
			Action:    ActionCopyAndOpen,
			ShareURL:  "https://www.instagram.com/",
			Clipboard: content.Text,
		}, nil

	case ChannelPrint:
		if content.Document == "" {
			return Plan{}, ErrEmptyContent
		}
		return Plan{
			Channel:  channel,
			Action:   ActionOpenPrint,
			Document: content.Document,
			Note:     "Habilite pop-ups caso a janela de impressão não abra.",
		}, nil
	}
	return Plan{}, fmt.Errorf("%w: %s", ErrUnknownChannel, channel)
}

// ValidChannel reports whether the channel is dispatchable.
func ValidChannel(c Channel) bool {
	switch c {
	case ChannelWhatsApp, ChannelEmail, ChannelMessenger,
		ChannelFacebook, ChannelInstagram, ChannelPrint:
		return true
	}
	return false
}
