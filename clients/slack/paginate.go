package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"slackvault/core"
)

// collect drives get across all pages of a cursor-paginated endpoint and
// flattens the per-page arrays found under combineKey into one slice, in
// page order. There is no upper bound on page count: termination relies on
// the server eventually returning a blank cursor.
//
// Pagination is not resumable mid-sequence; callers that fail partway
// re-collect from page one.
func collect[T any](ctx context.Context, c *Client, method string, params url.Values, combineKey string) ([]T, error) {
	var result []T
	cursor := ""

	for {
		pageParams := url.Values{}
		for key, values := range params {
			pageParams[key] = values
		}
		if cursor != "" {
			pageParams.Set("cursor", cursor)
		}

		resp, err := c.get(ctx, method, pageParams)
		if err != nil {
			return nil, err
		}

		raw, ok := resp.Field(combineKey)
		if !ok {
			// A page without the expected field means the response shape
			// contract is broken; partial data is worse than a loud failure.
			return nil, &core.MalformedResponseError{Method: method, CombineKey: combineKey}
		}

		var page []T
		if err := json.Unmarshal(raw, &page); err != nil {
			return nil, fmt.Errorf("failed to decode %q field of %s response: %w", combineKey, method, err)
		}
		result = append(result, page...)

		if resp.NextCursor == "" {
			return result, nil
		}
		cursor = resp.NextCursor
	}
}
