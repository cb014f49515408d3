package dynamodb

import (
	"fmt"

	"movieportal/pkg/common"
	apperrors "movieportal/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// startKey decodes page's token into an ExclusiveStartKey. pinned lists
// attribute values the key must carry, so a token cannot move a listing
// onto another partition.
func startKey(page common.PageRequest, kind string, allowed []string, pinned map[string]string) (map[string]types.AttributeValue, error) {
	if !page.HasNextToken() {
		return nil, nil
	}

	raw, err := common.DecodeCursor(page.NextToken, kind, allowed...)
	if err != nil {
		return nil, err
	}
	for attr, want := range pinned {
		if got, ok := raw[attr].(string); !ok || got != want {
			return nil, apperrors.NewValidationError("nextToken does not belong to this listing")
		}
	}

	key, err := attributevalue.MarshalMap(raw)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid nextToken")
	}
	return key, nil
}

// nextToken encodes LastEvaluatedKey. An empty key yields "".
func nextToken(kind string, lastKey map[string]types.AttributeValue) (string, error) {
	if len(lastKey) == 0 {
		return "", nil
	}

	var raw map[string]interface{}
	if err := attributevalue.UnmarshalMap(lastKey, &raw); err != nil {
		return "", fmt.Errorf("failed to decode resume point: %w", err)
	}
	return common.EncodeCursor(kind, raw)
}
