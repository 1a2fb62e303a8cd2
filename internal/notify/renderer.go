package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/shanehull/auctionwatch/internal/types"

	"github.com/shopspring/decimal"
	"golang.org/x/net/html"
)

// RenderedMessage carries one notification in every format the channels need.
// Markup is Telegram HTML, Text and HTML are the email bodies.
type RenderedMessage struct {
	Subject string
	Markup  string
	Text    string
	HTML    string
}

// emailRow is one label/value line of the email body.
type emailRow struct {
	Label string
	Value string
}

type emailData struct {
	Title    string
	Headline string
	Badge    string
	Rows     []emailRow
	Link     string
}

type Renderer struct {
	linkBase string
	tmpl     *template.Template
}

func NewRenderer(linkBase string) *Renderer {
	t := template.Must(template.New("email").Parse(emailHTMLTemplate))
	return &Renderer{linkBase: linkBase, tmpl: t}
}

func (r *Renderer) Link(id types.AuctionID) string {
	return r.linkBase + id.String()
}

func (r *Renderer) RenderStartup() *RenderedMessage {
	return &RenderedMessage{
		Subject: "Auction monitor started",
		Markup:  "<b>auction monitor started</b>",
		Text:    "Auction monitor started.\n",
	}
}

func (r *Renderer) RenderAuction(item types.AuctionItem, isNew bool, left string) (*RenderedMessage, error) {
	link := r.Link(item.ID)
	name := html.EscapeString(item.Name)

	var mb strings.Builder
	if isNew {
		mb.WriteString("<b>new:</b> ")
	}
	mb.WriteString(fmt.Sprintf("<b>%s</b>\n", name))
	mb.WriteString(fmt.Sprintf("bid: %s | min: %s\n", item.CurrentBid, item.MinimumBid))
	mb.WriteString(fmt.Sprintf("left: %s\n", left))
	mb.WriteString(link)

	subject := fmt.Sprintf("Auction: %s", item.Name)
	badge := ""
	if isNew {
		subject = fmt.Sprintf("New auction: %s", item.Name)
		badge = "new"
	}

	data := emailData{
		Title:    subject,
		Headline: item.Name,
		Badge:    badge,
		Rows: []emailRow{
			{Label: "Current bid", Value: item.CurrentBid.String()},
			{Label: "Minimum bid", Value: item.MinimumBid.String()},
			{Label: "Time left", Value: left},
		},
		Link: link,
	}

	return r.render(subject, mb.String(), data)
}

func (r *Renderer) RenderBidChange(item types.AuctionItem, newBid, oldBid decimal.Decimal, bidder, left string) (*RenderedMessage, error) {
	link := r.Link(item.ID)

	var mb strings.Builder
	mb.WriteString(fmt.Sprintf("<b>bid on %s</b>\n", html.EscapeString(item.Name)))
	mb.WriteString(fmt.Sprintf("by: %s\n", html.EscapeString(bidder)))
	mb.WriteString(fmt.Sprintf("bid: %s -> <b>%s</b>\n", oldBid, newBid))
	mb.WriteString(fmt.Sprintf("left: %s\n", left))
	mb.WriteString(link)

	subject := fmt.Sprintf("New bid on %s: %s", item.Name, newBid)
	data := emailData{
		Title:    subject,
		Headline: item.Name,
		Badge:    "bid",
		Rows: []emailRow{
			{Label: "Bidder", Value: bidder},
			{Label: "Bid", Value: fmt.Sprintf("%s -> %s", oldBid, newBid)},
			{Label: "Time left", Value: left},
		},
		Link: link,
	}

	return r.render(subject, mb.String(), data)
}

func (r *Renderer) render(subject, markup string, data emailData) (*RenderedMessage, error) {
	var htmlBuf bytes.Buffer
	if err := r.tmpl.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("failed to render HTML template: %w", err)
	}

	return &RenderedMessage{
		Subject: subject,
		Markup:  markup,
		Text:    renderPlainText(data),
		HTML:    htmlBuf.String(),
	}, nil
}

// renderPlainText produces the text/plain alternative of the email body.
func renderPlainText(data emailData) string {
	var sb strings.Builder

	sb.WriteString(data.Headline + "\n")
	sb.WriteString(strings.Repeat("=", 40) + "\n\n")

	for _, row := range data.Rows {
		sb.WriteString(fmt.Sprintf("%s: %s\n", row.Label, row.Value))
	}
	sb.WriteString("\n" + data.Link + "\n")

	return sb.String()
}
