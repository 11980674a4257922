package share

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContent() Content {
	return Content{
		Subject:  "Casa X",
		Text:     "Casa X - R$ 450.000,00\nhttps://imovelhub.com.br/horizonte/imovel/prop-1",
		HTML:     "<p>Casa X - R$ 450.000,00</p>",
		LinkURL:  "https://imovelhub.com.br/horizonte/imovel/prop-1",
		Document: "<!DOCTYPE html><html><body>doc</body></html>",
	}
}

func TestWhatsAppPlan(t *testing.T) {
	plan, err := BuildPlan(ChannelWhatsApp, testContent())
	require.NoError(t, err)

	assert.Equal(t, ActionCopyAndOpen, plan.Action)
	assert.True(t, strings.HasPrefix(plan.ShareURL, "https://wa.me/?text="))
	assert.Equal(t, testContent().Text, plan.Clipboard)

	// text must round-trip through the URL encoding
	u, err := url.Parse(plan.ShareURL)
	require.NoError(t, err)
	assert.Equal(t, testContent().Text, u.Query().Get("text"))
}

func TestFacebookPlanCarriesLinkAndQuote(t *testing.T) {
	plan, err := BuildPlan(ChannelFacebook, testContent())
	require.NoError(t, err)

	u, err := url.Parse(plan.ShareURL)
	require.NoError(t, err)
	assert.Equal(t, testContent().LinkURL, u.Query().Get("u"))
	assert.Equal(t, testContent().Text, u.Query().Get("quote"))
}

func TestMessengerPlan(t *testing.T) {
	plan, err := BuildPlan(ChannelMessenger, testContent())
	require.NoError(t, err)

	u, err := url.Parse(plan.ShareURL)
	require.NoError(t, err)
	assert.Equal(t, testContent().LinkURL, u.Query().Get("link"))
}

func TestEmailPlanMailtoFallbackAndHTMLClipboard(t *testing.T) {
	plan, err := BuildPlan(ChannelEmail, testContent())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(plan.ShareURL, "mailto:?subject="))
	assert.Contains(t, plan.ShareURL, url.QueryEscape("Casa X"))
	// clipboard carries the rich HTML, mailto carries plain text only
	assert.Equal(t, testContent().HTML, plan.Clipboard)
	assert.NotEmpty(t, plan.Note)
}

func TestInstagramPlanCopyAndOpenSite(t *testing.T) {
	plan, err := BuildPlan(ChannelInstagram, testContent())
	require.NoError(t, err)

	assert.Equal(t, ActionCopyAndOpen, plan.Action)
	assert.Equal(t, "https://www.instagram.com/", plan.ShareURL)
	assert.Equal(t, testContent().Text, plan.Clipboard)
}

func TestPrintPlanRequiresDocument(t *testing.T) {
	plan, err := BuildPlan(ChannelPrint, testContent())
	require.NoError(t, err)
	assert.Equal(t, ActionOpenPrint, plan.Action)
	assert.Equal(t, testContent().Document, plan.Document)

	content := testContent()
	content.Document = ""
	_, err = BuildPlan(ChannelPrint, content)
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestEmptyContentRejected(t *testing.T) {
	_, err := BuildPlan(ChannelWhatsApp, Content{})
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestUnknownChannel(t *testing.T) {
	_, err := BuildPlan(Channel("telegram"), testContent())
	assert.ErrorIs(t, err, ErrUnknownChannel)
	assert.False(t, ValidChannel(Channel("telegram")))
	assert.True(t, ValidChannel(ChannelWhatsApp))
}
