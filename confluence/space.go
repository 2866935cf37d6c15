package confluence

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ResolveSpaceID maps a human space key to its numeric space id. A value
// that already parses as an integer is returned unchanged without a network
// call. A key lookup returning no results fails with ErrSpaceNotFound; a
// response carrying no results field at all fails with ErrInvalidResponse.
func ResolveSpaceID(ctx context.Context, client *Client, spaceKeyOrID string) (string, error) {
	if _, err := strconv.ParseInt(spaceKeyOrID, 10, 64); err == nil {
		return spaceKeyOrID, nil
	}

	query := url.Values{}
	query.Set("keys", spaceKeyOrID)
	query.Set("limit", "1")

	var out spaceList
	if err := client.Get(ctx, pathSpaces, query, &out); err != nil {
		return "", err
	}

	// A decoded envelope with no results field at all is malformed; an
	// empty results array is a legitimate miss.
	if out.Results == nil {
		return "", fmt.Errorf("%w: space lookup returned no results field", ErrInvalidResponse)
	}
	if len(out.Results) == 0 {
		return "", fmt.Errorf("%w: no space with key %q", ErrSpaceNotFound, spaceKeyOrID)
	}
	return out.Results[0].ID, nil
}
