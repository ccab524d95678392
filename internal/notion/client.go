package notion

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jomei/notionapi"
	"github.com/takak2166/docx2schedule/internal/logger"
)

// Notion rejects requests carrying more than 100 children
const maxChildren = 100

// ErrPageExists is returned when the parent already holds a page with the same title
var ErrPageExists = errors.New("page already exists")

// Client publishes schedule days as Notion pages
type Client struct {
	client     NotionClient
	parentID   notionapi.PageID
	parentType notionapi.ParentType
	attempts   int
	retryDelay time.Duration
}

// New creates a new Notion client
func New() (*Client, error) {
	apiKey := os.Getenv("NOTION_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("NOTION_API_KEY is not set")
	}

	parentID := os.Getenv("NOTION_PARENT_PAGE_ID")
	if parentID == "" {
		return nil, fmt.Errorf("NOTION_PARENT_PAGE_ID is not set")
	}

	return &Client{
		client:     &apiClient{client: notionapi.NewClient(notionapi.Token(apiKey))},
		parentID:   notionapi.PageID(parentID),
		parentType: "page_id",
		attempts:   3,
		retryDelay: time.Second,
	}, nil
}

// CreatePage creates a page under the parent page with the given title and
// markdown body. It returns ErrPageExists if a page with that title is
// already there.
func (c *Client) CreatePage(ctx context.Context, title string, content string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("page title is empty")
	}

	logger.Debug("Creating Notion page", map[string]interface{}{
		"title": title,
	})

	existing, err := c.findPage(ctx, title)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: %s", ErrPageExists, existing.ID)
	}

	blocks := c.convertMarkdownToBlocks(content)
	first, rest := blocks, []notionapi.Block(nil)
	if len(blocks) > maxChildren {
		first, rest = blocks[:maxChildren], blocks[maxChildren:]
	}

	pageParams := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:   c.parentType,
			PageID: c.parentID,
		},
		Properties: notionapi.Properties{
			"title": notionapi.TitleProperty{
				Title: []notionapi.RichText{
					{
						Text: &notionapi.Text{
							Content: title,
						},
					},
				},
			},
		},
		Children: first,
	}

	var page *notionapi.Page
	for i := 0; i < c.attempts; i++ {
		page, err = c.client.Page().Create(ctx, pageParams)
		if err == nil {
			break
		}
		logger.Warn("Page creation failed", map[string]interface{}{
			"title":   title,
			"attempt": i + 1,
			"error":   err.Error(),
		})
		if i == c.attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.retryDelay):
		}
	}
	if err != nil {
		return fmt.Errorf("failed to create page after %d attempts: %w", c.attempts, err)
	}

	for len(rest) > 0 {
		chunk := rest
		if len(chunk) > maxChildren {
			chunk = rest[:maxChildren]
		}
		rest = rest[len(chunk):]

		_, err := c.client.Block().AppendChildren(ctx, notionapi.BlockID(page.ID), &notionapi.AppendBlockChildrenRequest{
			Children: chunk,
		})
		if err != nil {
			return fmt.Errorf("failed to append blocks: %w", err)
		}
	}

	logger.Info("Successfully created Notion page", map[string]interface{}{
		"title":  title,
		"blocks": len(blocks),
	})

	return nil
}

// findPage looks for a page with exactly this title
func (c *Client) findPage(ctx context.Context, title string) (*notionapi.Page, error) {
	query := &notionapi.SearchRequest{
		Query: title,
		Filter: notionapi.SearchFilter{
			Property: "object",
			Value:    "page",
		},
	}

	results, err := c.client.Search().Do(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search for existing page: %w", err)
	}

	for _, result := range results.Results {
		page, ok := result.(*notionapi.Page)
		if !ok {
			continue
		}
		if pageTitle(page) == title {
			return page, nil
		}
	}
	return nil, nil
}

func pageTitle(page *notionapi.Page) string {
	var rich []notionapi.RichText
	switch p := page.Properties["title"].(type) {
	case *notionapi.TitleProperty:
		rich = p.Title
	case notionapi.TitleProperty:
		rich = p.Title
	}

	var b strings.Builder
	for _, r := range rich {
		if r.Text != nil {
			b.WriteString(r.Text.Content)
		} else {
			b.WriteString(r.PlainText)
		}
	}
	return b.String()
}

// convertMarkdownToBlocks converts markdown content to Notion blocks.
// The level-one heading is dropped since it repeats the page title.
func (c *Client) convertMarkdownToBlocks(content string) []notionapi.Block {
	var blocks []notionapi.Block

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "", strings.HasPrefix(line, "# "):
			continue
		case strings.HasPrefix(line, "## "):
			blocks = append(blocks, c.createHeadingBlock(line[3:], 2))
		case strings.HasPrefix(line, "### "):
			blocks = append(blocks, c.createHeadingBlock(line[4:], 3))
		case strings.HasPrefix(line, "- "):
			blocks = append(blocks, c.createBulletedListBlock(line[2:]))
		default:
			blocks = append(blocks, c.createParagraphBlock(line))
		}
	}

	return blocks
}

// parseLink splits "[title](url)" into its parts
func parseLink(text string) (title, url string, ok bool) {
	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, ")") {
		return "", "", false
	}
	idx := strings.LastIndex(text, "](")
	if idx < 0 {
		return "", "", false
	}
	return text[1:idx], text[idx+2 : len(text)-1], true
}

func richText(text string) []notionapi.RichText {
	if title, url, ok := parseLink(text); ok {
		return []notionapi.RichText{
			{
				Text: &notionapi.Text{
					Content: title,
					Link:    &notionapi.Link{Url: url},
				},
			},
		}
	}
	return []notionapi.RichText{
		{
			Text: &notionapi.Text{
				Content: text,
			},
		},
	}
}

func (c *Client) createHeadingBlock(text string, level int) notionapi.Block {
	if level == 2 {
		return &notionapi.Heading2Block{
			BasicBlock: notionapi.BasicBlock{
				Object: "block",
				Type:   notionapi.BlockTypeHeading2,
			},
			Heading2: notionapi.Heading{
				RichText: richText(text),
			},
		}
	}
	return &notionapi.Heading3Block{
		BasicBlock: notionapi.BasicBlock{
			Object: "block",
			Type:   notionapi.BlockTypeHeading3,
		},
		Heading3: notionapi.Heading{
			RichText: richText(text),
		},
	}
}

func (c *Client) createBulletedListBlock(text string) notionapi.Block {
	return &notionapi.BulletedListItemBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: "block",
			Type:   notionapi.BlockTypeBulletedListItem,
		},
		BulletedListItem: notionapi.ListItem{
			RichText: richText(text),
		},
	}
}

func (c *Client) createParagraphBlock(text string) notionapi.Block {
	return &notionapi.ParagraphBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: "block",
			Type:   notionapi.BlockTypeParagraph,
		},
		Paragraph: notionapi.Paragraph{
			RichText: richText(text),
		},
	}
}
