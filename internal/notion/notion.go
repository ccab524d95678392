package notion

import "github.com/jomei/notionapi"

//go:generate mockgen -source=notion.go -destination=mock_notion/mock_notion.go -package=mock_notion
//go:generate mockgen -destination=mock_notion/mock_notionapi.go -package=mock_notion github.com/jomei/notionapi PageService,SearchService,BlockService

// NotionClient is the subset of the Notion API the publisher talks to
type NotionClient interface {
	Page() notionapi.PageService
	Search() notionapi.SearchService
	Block() notionapi.BlockService
}

type apiClient struct {
	client *notionapi.Client
}

func (a *apiClient) Page() notionapi.PageService     { return a.client.Page }
func (a *apiClient) Search() notionapi.SearchService { return a.client.Search }
func (a *apiClient) Block() notionapi.BlockService   { return a.client.Block }
