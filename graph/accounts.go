package graph

import (
	"context"
	"net/http"
	"net/url"
)

// Page is one entry from /me/accounts, restricted to the fields the
// publishing flow asks for.
type Page struct {
	ID                       string   `json:"id"`
	Name                     string   `json:"name"`
	AccessToken              string   `json:"access_token"`
	Tasks                    []string `json:"tasks"`
	InstagramBusinessAccount *struct {
		ID string `json:"id"`
	} `json:"instagram_business_account"`
}

type accountsResponse struct {
	Data []Page `json:"data"`
}

const accountFields = "name,access_token,tasks,instagram_business_account"

// Accounts lists the pages the user manages, each with its page access
// token and linked Instagram business account, in the order the API
// returns them.
func (c *Client) Accounts(ctx context.Context, userToken string) ([]Page, error) {
	query := url.Values{}
	query.Set("fields", accountFields)
	query.Set("access_token", userToken)

	var resp accountsResponse
	if err := c.call(ctx, http.MethodGet, "/me/accounts", query, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, ErrNoPages
	}
	return resp.Data, nil
}

// FirstPublishablePage returns the first page, in list order, that
// carries both a linked Instagram business account and a page access
// token. Deployments managing several linkable pages need a selection
// rule of their own; this takes the first match.
func FirstPublishablePage(pages []Page) (*Page, error) {
	for i := range pages {
		p := &pages[i]
		if p.InstagramBusinessAccount != nil && p.InstagramBusinessAccount.ID != "" && p.AccessToken != "" {
			return p, nil
		}
	}
	return nil, ErrNoPublishablePage
}
